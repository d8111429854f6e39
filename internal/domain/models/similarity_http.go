package models

// Reference modes.
const (
	ModeHistorical = "historical"
	ModeForecast   = "forecast"
)

// Request for the similar-days endpoint. Defined in domain for consistency
// and reuse.
//
// EuclideanWeight is a pointer so an explicit 0 (pure cosine ranking)
// survives the defaults pass.
type SimilarDaysRequest struct {
	ReferenceDate   string   `query:"referenceDate" json:"referenceDate" validate:"required,datetime=2006-01-02"`
	ReferenceMode   string   `query:"referenceMode" json:"referenceMode" default:"historical" validate:"oneof=historical forecast"`
	MatchVariable   string   `query:"matchVariable" json:"matchVariable" validate:"required"`
	StartDate       string   `query:"startDate" json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         string   `query:"endDate" json:"endDate" validate:"required,datetime=2006-01-02"`
	TopN            int      `query:"topN" json:"topN" default:"10" validate:"gte=1,lte=20"`
	EuclideanWeight *float64 `query:"euclideanWeight" json:"euclideanWeight" default:"0.5" validate:"required,gte=0,lte=1"`
	ScenarioID      string   `query:"scenarioId" json:"scenarioId,omitempty"`
}

// Weight returns the euclidean weight value.
func (r *SimilarDaysRequest) Weight() float64 {
	if r.EuclideanWeight == nil {
		return 0.5
	}
	return *r.EuclideanWeight
}
