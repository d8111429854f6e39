package repository

// ForecastRecipe names the query/aggregation shape used to build a variable's
// reference day from the internal forecast store.
type ForecastRecipe int

const (
	// RecipeNone marks a variable without forecast support.
	RecipeNone ForecastRecipe = iota
	// RecipePriceComponents sums the energy, congestion, and losses
	// components per hour.
	RecipePriceComponents
	// RecipeZoneLoad sums zone MW rows per hour.
	RecipeZoneLoad
	// RecipeNetLoad subtracts wind and solar generation from demand per hour.
	RecipeNetLoad
)

// VariableSpec binds a supported market variable to its external item key,
// the value-column unit tag used during ingestion, and its forecast recipe.
type VariableSpec struct {
	Key     string
	ItemKey string
	UnitTag string
	Recipe  ForecastRecipe
}

// SupportsForecast reports whether the variable has a forecast recipe.
func (s VariableSpec) SupportsForecast() bool { return s.Recipe != RecipeNone }

var registry = []VariableSpec{
	{Key: "rt_load", ItemKey: "RTLOAD_ERCOT", UnitTag: "(MW)", Recipe: RecipeZoneLoad},
	{Key: "da_lmp", ItemKey: "DALMP_HB_NORTH", UnitTag: "($/MWh)", Recipe: RecipePriceComponents},
	{Key: "rt_lmp", ItemKey: "RTLMP_HB_NORTH", UnitTag: "($/MWh)", Recipe: RecipePriceComponents},
	{Key: "net_load", ItemKey: "NETLOAD_ERCOT", UnitTag: "(MW)", Recipe: RecipeNetLoad},
	{Key: "wind", ItemKey: "WIND_RTI_ERCOT", UnitTag: "(MW)", Recipe: RecipeNone},
	{Key: "solar", ItemKey: "SOLAR_RTI_ERCOT", UnitTag: "(MW)", Recipe: RecipeNone},
}

// LookupVariable resolves a variable key to its spec.
func LookupVariable(key string) (VariableSpec, bool) {
	for _, s := range registry {
		if s.Key == key {
			return s, true
		}
	}
	return VariableSpec{}, false
}

// Variables returns the full registry in declaration order.
func Variables() []VariableSpec {
	out := make([]VariableSpec, len(registry))
	copy(out, registry)
	return out
}
