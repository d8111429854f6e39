package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ShapeMatch/internal/domain/models"
	domrepo "ShapeMatch/internal/domain/repository"
	pkgch "ShapeMatch/pkg/clickhouse"
	applogger "ShapeMatch/pkg/logger"
)

// CHForecastStore implements ForecastStore backed by ClickHouse. Each
// forecast recipe maps to its own query shape: price variables sum LMP
// components, load aggregates zone rows, net load nets renewables against
// demand.
type CHForecastStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHForecastStore(ch *pkgch.Client) *CHForecastStore {
	return &CHForecastStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHForecastStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHForecastStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHForecastStore) FetchDay(ctx context.Context, spec domrepo.VariableSpec, scenarioID string, day time.Time) ([]models.HourlyRecord, error) {
	start := time.Now()

	q, err := queryForRecipe(spec.Recipe)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q, scenarioID, day)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse forecast query error",
				applogger.String("variable", spec.Key),
				applogger.String("scenario", scenarioID),
				applogger.String("day", day.Format("2006-01-02")),
				applogger.Error(err),
			)
		}
		return nil, &models.UpstreamError{Source: "clickhouse", Err: fmt.Errorf("fetch forecast day: %w", err)}
	}
	defer rows.Close()

	out := make([]models.HourlyRecord, 0, 24)
	for rows.Next() {
		var he uint8
		var value float64
		if err := rows.Scan(&he, &value); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse forecast scan error",
					applogger.String("variable", spec.Key),
					applogger.Error(err),
				)
			}
			return nil, &models.UpstreamError{Source: "clickhouse", Err: fmt.Errorf("scan forecast row: %w", err)}
		}
		out = append(out, models.HourlyRecord{
			Day:        day,
			HourEnding: int(he),
			Variable:   spec.Key,
			Value:      value,
			Valid:      true,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &models.UpstreamError{Source: "clickhouse", Err: fmt.Errorf("forecast rows: %w", err)}
	}

	if s.l != nil {
		s.l.Info("clickhouse forecast day ok",
			applogger.String("variable", spec.Key),
			applogger.String("scenario", scenarioID),
			applogger.String("day", day.Format("2006-01-02")),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func queryForRecipe(recipe domrepo.ForecastRecipe) (string, error) {
	switch recipe {
	case domrepo.RecipePriceComponents:
		return `
        SELECT he, sum(value) AS v
        FROM shapematch.fc_lmp_components
        WHERE scenario_id = ? AND day = ?
        GROUP BY he
        ORDER BY he ASC
    `, nil
	case domrepo.RecipeZoneLoad:
		return `
        SELECT he, sum(mw) AS v
        FROM shapematch.fc_zone_load
        WHERE scenario_id = ? AND day = ?
        GROUP BY he
        ORDER BY he ASC
    `, nil
	case domrepo.RecipeNetLoad:
		return `
        SELECT he, sum(demand_mw) - sum(wind_mw) - sum(solar_mw) AS v
        FROM shapematch.fc_net_load_inputs
        WHERE scenario_id = ? AND day = ?
        GROUP BY he
        ORDER BY he ASC
    `, nil
	default:
		return "", models.InvalidInputf("variable has no forecast recipe")
	}
}

// Schema returns the idempotent DDL for the forecast store tables.
func Schema() []string {
	return []string{
		"CREATE DATABASE IF NOT EXISTS shapematch",
		`CREATE TABLE IF NOT EXISTS shapematch.fc_lmp_components
        (scenario_id String, day Date, he UInt8, component String, value Float64)
        ENGINE=MergeTree ORDER BY (scenario_id, day, he, component)`,
		`CREATE TABLE IF NOT EXISTS shapematch.fc_zone_load
        (scenario_id String, day Date, he UInt8, zone String, mw Float64)
        ENGINE=MergeTree ORDER BY (scenario_id, day, he, zone)`,
		`CREATE TABLE IF NOT EXISTS shapematch.fc_net_load_inputs
        (scenario_id String, day Date, he UInt8, demand_mw Float64, wind_mw Float64, solar_mw Float64)
        ENGINE=MergeTree ORDER BY (scenario_id, day, he)`,
	}
}
