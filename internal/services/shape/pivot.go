// Package shape holds the day-shape math: pivoting hourly records into
// fixed 24-slot day vectors and ranking candidate days against a reference.
package shape

import (
	"time"

	"ShapeMatch/internal/domain/models"
	"ShapeMatch/pkg/util"
)

// Pivot groups hourly records by calendar day into complete day vectors.
// Duplicate (day, hour) rows resolve last-write-wins. Days with any unfilled
// slot are dropped; a partial vector would distort the distance math, so the
// completeness gate is absolute.
func Pivot(records []models.HourlyRecord) models.CandidatePool {
	type bucket struct {
		day    time.Time
		values [24]float64
		filled [24]bool
	}

	buckets := make(map[string]*bucket)
	for _, r := range records {
		if !r.Valid || r.HourEnding < 1 || r.HourEnding > 24 {
			continue
		}
		key := util.DayKey(r.Day)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: r.Day}
			buckets[key] = b
		}
		b.values[r.HourEnding-1] = r.Value
		b.filled[r.HourEnding-1] = true
	}

	pool := make(models.CandidatePool, len(buckets))
	for key, b := range buckets {
		if !complete(b.filled) {
			continue
		}
		pool[key] = models.DayVector{Day: b.day, Values: b.values}
	}
	return pool
}

// PivotDay pivots records for one specific day. The second return is false
// when the day is absent or incomplete.
func PivotDay(records []models.HourlyRecord, day time.Time) (models.DayVector, bool) {
	pool := Pivot(records)
	v, ok := pool[util.DayKey(day)]
	return v, ok
}

func complete(filled [24]bool) bool {
	for _, f := range filled {
		if !f {
			return false
		}
	}
	return true
}
