// Package tabular turns raw tabular source payloads into typed hourly
// records. Cell text is classified into an explicit tagged value (date,
// enumerated token, number, or opaque text) so nothing downstream operates on
// a string where a number was expected.
package tabular

import (
	"strconv"
	"strings"
	"time"

	"ShapeMatch/internal/domain/models"
	"ShapeMatch/pkg/util"
)

// CellKind tags the type decision for one cell.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindDate
	KindToken
	KindNumber
	KindText
)

// Cell is one classified cell value.
type Cell struct {
	Kind   CellKind
	Date   time.Time
	Number float64
	Text   string
}

// Fixed calendar and peak-period labels the source emits alongside numeric
// columns. These must not be coerced to numbers or dates.
var enumTokens = map[string]struct{}{
	"WKDAY": {}, "WKEND": {}, "ONPEAK": {}, "OFFPEAK": {},
	"1X16": {}, "2X16": {}, "5X16": {}, "7X8": {}, "7X24": {},
	"JAN": {}, "FEB": {}, "MAR": {}, "APR": {}, "MAY": {}, "JUN": {},
	"JUL": {}, "AUG": {}, "SEP": {}, "OCT": {}, "NOV": {}, "DEC": {},
}

// Classify makes the per-cell type decision.
func Classify(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{Kind: KindEmpty}
	}
	if _, ok := enumTokens[strings.ToUpper(s)]; ok {
		return Cell{Kind: KindToken, Text: strings.ToUpper(s)}
	}
	if d, ok := util.ParseDay(s); ok {
		return Cell{Kind: KindDate, Date: d, Text: s}
	}
	if n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return Cell{Kind: KindNumber, Number: n, Text: s}
	}
	return Cell{Kind: KindText, Text: s}
}

// Records converts a raw table into hourly records for one variable. Only
// rows with a date, a usable hour-ending in 1..24, and a value column match
// are emitted; rows whose value cell fails numeric parse are emitted with
// Valid=false so the pivot's completeness gate drops their day. An empty
// table yields an empty slice, not an error.
func Records(t *models.Table, variableKey, unitTag string) []models.HourlyRecord {
	out := []models.HourlyRecord{}
	if t == nil || len(t.Header) == 0 || len(t.Rows) == 0 {
		return out
	}

	dateIdx, heIdx, valIdx := columnIndexes(t.Header, unitTag)
	if dateIdx < 0 || heIdx < 0 {
		return out
	}

	for _, row := range t.Rows {
		if dateIdx >= len(row) || heIdx >= len(row) {
			continue
		}

		he, ok := hourEnding(row[heIdx])
		if !ok {
			continue
		}

		dc := Classify(row[dateIdx])
		if dc.Kind != KindDate {
			continue
		}

		rec := models.HourlyRecord{
			Day:        dc.Date,
			HourEnding: he,
			Variable:   variableKey,
		}
		if valIdx >= 0 && valIdx < len(row) {
			if vc := Classify(row[valIdx]); vc.Kind == KindNumber {
				rec.Value = vc.Number
				rec.Valid = true
			}
		}
		out = append(out, rec)
	}
	return out
}

// columnIndexes resolves the date, hour-ending, and value columns from the
// header row. The value column is the one whose label contains the
// variable's unit tag.
func columnIndexes(header []string, unitTag string) (dateIdx, heIdx, valIdx int) {
	dateIdx, heIdx, valIdx = -1, -1, -1
	for i, h := range header {
		label := strings.ToUpper(strings.TrimSpace(h))
		switch {
		case dateIdx < 0 && strings.Contains(label, "DATE"):
			dateIdx = i
		case heIdx < 0 && (label == "HE" || strings.Contains(label, "HOURENDING") || strings.Contains(label, "HOUR ENDING")):
			heIdx = i
		case valIdx < 0 && unitTag != "" && strings.Contains(label, strings.ToUpper(unitTag)):
			valIdx = i
		}
	}
	return dateIdx, heIdx, valIdx
}

func hourEnding(s string) (int, bool) {
	c := Classify(s)
	if c.Kind != KindNumber {
		return 0, false
	}
	he := int(c.Number)
	if float64(he) != c.Number || he < 1 || he > 24 {
		return 0, false
	}
	return he, true
}
