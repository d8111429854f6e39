package models

import "time"

// Table is a raw tabular payload from the external source: a header row plus
// data rows of untyped cell text.
type Table struct {
	Header []string
	Rows   [][]string
}

// HourlyRecord is one observed or forecast value for a single hour-ending
// bucket. Valid is false when the source row carried no parseable number for
// the value column.
type HourlyRecord struct {
	Day        time.Time
	HourEnding int
	Variable   string
	Value      float64
	Valid      bool
}

// DayVector is one calendar day's hourly shape, indexed by hour-ending 1..24
// at slot hourEnding-1. A DayVector only exists for complete days; the pivot
// drops days with any missing hour.
type DayVector struct {
	Day    time.Time
	Values [24]float64
}

// CandidatePool maps ISO day keys to complete day vectors.
type CandidatePool map[string]DayVector

// SimilarityScore carries both raw distances and their pool-standardized
// combination for one candidate day. Lower combined score means more similar.
type SimilarityScore struct {
	Day           string  `json:"day"`
	Euclidean     float64 `json:"euclidean"`
	Cosine        float64 `json:"cosine"`
	EuclideanZ    float64 `json:"euclideanZ"`
	CosineZ       float64 `json:"cosineZ"`
	CombinedScore float64 `json:"combinedScore"`
	Rank          int     `json:"rank"`
}

// SeriesPoint is one hour of a chart-ready, non-pivoted series.
type SeriesPoint struct {
	HourEnding int     `json:"he"`
	Value      float64 `json:"value"`
}

// HourlySeries is a full day's series as fetched for charting. Unlike a
// DayVector it may be incomplete.
type HourlySeries []SeriesPoint

// SimilarityResult is the caller-facing response for one analysis.
type SimilarityResult struct {
	ReferenceDate    string                             `json:"referenceDate"`
	ReferenceMode    string                             `json:"referenceMode"`
	MatchVariable    string                             `json:"matchVariable"`
	TopN             int                                `json:"topN"`
	EuclideanWeight  float64                            `json:"euclideanWeight"`
	SimilarityScores []SimilarityScore                  `json:"similarityScores"`
	ChartData        map[string]map[string]HourlySeries `json:"chartData"`
}

// AnalysisEvent is the summary published to Kafka after a completed analysis.
type AnalysisEvent struct {
	ReferenceDate string    `json:"referenceDate"`
	ReferenceMode string    `json:"referenceMode"`
	MatchVariable string    `json:"matchVariable"`
	GeneratedAt   time.Time `json:"generatedAt"`
	TopDays       []TopDay  `json:"topDays"`
}

// TopDay is one ranked winner inside an AnalysisEvent.
type TopDay struct {
	Day           string  `json:"day"`
	Rank          int     `json:"rank"`
	CombinedScore float64 `json:"combinedScore"`
}
