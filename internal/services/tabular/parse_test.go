package tabular

import (
	"testing"

	"ShapeMatch/internal/domain/models"
)

func TestClassifyKinds(t *testing.T) {
	if c := Classify("2024-07-15"); c.Kind != KindDate {
		t.Fatalf("expected date, got %v", c.Kind)
	}
	if c := Classify("ONPEAK"); c.Kind != KindToken {
		t.Fatalf("expected token, got %v", c.Kind)
	}
	if c := Classify("1,234.5"); c.Kind != KindNumber || c.Number != 1234.5 {
		t.Fatalf("expected number 1234.5, got %+v", c)
	}
	if c := Classify("HB_NORTH"); c.Kind != KindText {
		t.Fatalf("expected text, got %v", c.Kind)
	}
	if c := Classify("  "); c.Kind != KindEmpty {
		t.Fatalf("expected empty, got %v", c.Kind)
	}
}

func table(rows [][]string) *models.Table {
	return &models.Table{
		Header: []string{"DATETIME", "HOURENDING", "PERIOD", "RTLOAD (MW)"},
		Rows:   rows,
	}
}

func TestRecordsBasic(t *testing.T) {
	recs := Records(table([][]string{
		{"2024-07-15", "1", "OFFPEAK", "41000.5"},
		{"2024-07-15", "2", "OFFPEAK", "40250"},
	}), "rt_load", "(MW)")

	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	r := recs[0]
	if r.HourEnding != 1 || !r.Valid || r.Value != 41000.5 || r.Variable != "rt_load" {
		t.Fatalf("unexpected record %+v", r)
	}
	if r.Day.Year() != 2024 || int(r.Day.Month()) != 7 || r.Day.Day() != 15 {
		t.Fatalf("unexpected day %v", r.Day)
	}
}

func TestRecordsSkipsUnusableHourEnding(t *testing.T) {
	recs := Records(table([][]string{
		{"2024-07-15", "TOTAL", "", "982000"},
		{"2024-07-15", "25", "", "41000"},
		{"2024-07-15", "3", "", "40100"},
	}), "rt_load", "(MW)")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].HourEnding != 3 {
		t.Fatalf("unexpected record %+v", recs[0])
	}
}

func TestRecordsKeepsRowWithBadValueAsInvalid(t *testing.T) {
	recs := Records(table([][]string{
		{"2024-07-15", "4", "", "N/A"},
	}), "rt_load", "(MW)")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Valid {
		t.Fatalf("expected invalid value, got %+v", recs[0])
	}
}

func TestRecordsEmptyTable(t *testing.T) {
	if recs := Records(&models.Table{}, "rt_load", "(MW)"); len(recs) != 0 {
		t.Fatalf("expected empty, got %d", len(recs))
	}
	if recs := Records(nil, "rt_load", "(MW)"); len(recs) != 0 {
		t.Fatalf("expected empty for nil table, got %d", len(recs))
	}
}

func TestRecordsPreservesRowOrder(t *testing.T) {
	recs := Records(table([][]string{
		{"2024-07-15", "5", "", "1"},
		{"2024-07-15", "2", "", "2"},
		{"2024-07-15", "9", "", "3"},
	}), "rt_load", "(MW)")

	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].HourEnding != 5 || recs[1].HourEnding != 2 || recs[2].HourEnding != 9 {
		t.Fatalf("rows reordered: %+v", recs)
	}
}
