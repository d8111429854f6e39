package shape

import (
	"testing"
	"time"

	"ShapeMatch/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fullDay(d time.Time, value float64) []models.HourlyRecord {
	recs := make([]models.HourlyRecord, 0, 24)
	for he := 1; he <= 24; he++ {
		recs = append(recs, models.HourlyRecord{Day: d, HourEnding: he, Value: value, Valid: true})
	}
	return recs
}

func TestPivotCompleteDay(t *testing.T) {
	d := day(2024, 7, 15)
	pool := Pivot(fullDay(d, 42))
	if len(pool) != 1 {
		t.Fatalf("expected 1 day, got %d", len(pool))
	}
	v, ok := pool["2024-07-15"]
	if !ok {
		t.Fatalf("day key missing")
	}
	for i, x := range v.Values {
		if x != 42 {
			t.Fatalf("slot %d = %v, want 42", i, x)
		}
	}
}

func TestPivotDropsIncompleteDay(t *testing.T) {
	d := day(2024, 7, 15)
	recs := fullDay(d, 42)[:23] // hours 1..23 only
	if pool := Pivot(recs); len(pool) != 0 {
		t.Fatalf("day with 23 hours must be dropped, got %d days", len(pool))
	}
}

func TestPivotDropsDayWithNullHour(t *testing.T) {
	d := day(2024, 7, 15)
	recs := fullDay(d, 42)
	// hour 24 present in the source but with no parseable value
	recs[23].Valid = false
	if pool := Pivot(recs); len(pool) != 0 {
		t.Fatalf("day with a null hour must be dropped, got %d days", len(pool))
	}
}

func TestPivotLastWriteWins(t *testing.T) {
	d := day(2024, 7, 15)
	recs := fullDay(d, 10)
	recs = append(recs, models.HourlyRecord{Day: d, HourEnding: 5, Value: 99, Valid: true})
	pool := Pivot(recs)
	v, ok := pool["2024-07-15"]
	if !ok {
		t.Fatalf("expected complete day")
	}
	if v.Values[4] != 99 {
		t.Fatalf("duplicate hour must take last value, got %v", v.Values[4])
	}
}

func TestPivotMultipleDays(t *testing.T) {
	recs := append(fullDay(day(2024, 7, 15), 1), fullDay(day(2024, 7, 16), 2)...)
	recs = append(recs, fullDay(day(2024, 7, 17), 3)[:20]...) // incomplete
	pool := Pivot(recs)
	if len(pool) != 2 {
		t.Fatalf("expected 2 complete days, got %d", len(pool))
	}
	if _, ok := pool["2024-07-17"]; ok {
		t.Fatalf("incomplete day leaked into pool")
	}
}

func TestPivotDay(t *testing.T) {
	d := day(2024, 7, 15)
	v, ok := PivotDay(fullDay(d, 7), d)
	if !ok {
		t.Fatalf("expected reference day pivot")
	}
	if v.Values[0] != 7 {
		t.Fatalf("unexpected value %v", v.Values[0])
	}
	if _, ok := PivotDay(fullDay(d, 7), day(2024, 7, 16)); ok {
		t.Fatalf("wrong day must not resolve")
	}
}
