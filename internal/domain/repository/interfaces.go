package repository

import (
	"context"
	"time"

	"ShapeMatch/internal/domain/models"
)

// SeriesSource is the external tabular time-series source.
type SeriesSource interface {
	// Name identifies the source in error messages and metrics.
	Name() string
	// FetchRange returns the raw table for one item over [start, end],
	// inclusive. An empty table is a valid outcome.
	FetchRange(ctx context.Context, itemKey string, start, end time.Time) (*models.Table, error)
}

// ForecastStore is the internal scenario forecast store.
type ForecastStore interface {
	// FetchDay returns hourly records for one variable, scenario, and day,
	// built per the variable's forecast recipe.
	FetchDay(ctx context.Context, spec VariableSpec, scenarioID string, day time.Time) ([]models.HourlyRecord, error)
	// Health pings the store.
	Health(ctx context.Context) error
}

// Publisher announces completed analyses downstream.
type Publisher interface {
	PublishAnalysis(ctx context.Context, event *models.AnalysisEvent) error
	Close() error
}

// Metrics records pipeline observations.
type Metrics interface {
	RecordStageLatency(stage string, seconds float64)
	RecordExternalCall(source string)
	RecordError(kind string)
	RecordAnalysis(variable, mode string)
}
