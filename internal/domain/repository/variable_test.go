package repository

import "testing"

func TestLookupVariableKnown(t *testing.T) {
	spec, ok := LookupVariable("da_lmp")
	if !ok {
		t.Fatalf("expected da_lmp in registry")
	}
	if spec.ItemKey == "" || spec.UnitTag == "" {
		t.Fatalf("incomplete spec: %+v", spec)
	}
	if !spec.SupportsForecast() {
		t.Fatalf("da_lmp should support forecast mode")
	}
}

func TestLookupVariableUnknown(t *testing.T) {
	if _, ok := LookupVariable("congestion_rent"); ok {
		t.Fatalf("expected lookup miss")
	}
}

func TestHistoricalOnlyVariables(t *testing.T) {
	for _, key := range []string{"wind", "solar"} {
		spec, ok := LookupVariable(key)
		if !ok {
			t.Fatalf("expected %s in registry", key)
		}
		if spec.SupportsForecast() {
			t.Fatalf("%s must not support forecast mode", key)
		}
	}
}

func TestVariablesCopy(t *testing.T) {
	vars := Variables()
	if len(vars) == 0 {
		t.Fatalf("registry empty")
	}
	vars[0].ItemKey = "mutated"
	again := Variables()
	if again[0].ItemKey == "mutated" {
		t.Fatalf("Variables must return a copy")
	}
}
