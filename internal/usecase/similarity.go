package usecase

import (
	"context"
	"errors"
	"time"

	"ShapeMatch/internal/domain/models"
	domrepo "ShapeMatch/internal/domain/repository"
	"ShapeMatch/internal/service/ratelimit"
	"ShapeMatch/internal/services/shape"
	"ShapeMatch/internal/services/tabular"
	applogger "ShapeMatch/pkg/logger"
	"ShapeMatch/pkg/util"
)

// SimilarityAnalyzer drives one similar-days request end to end: resolve the
// reference vector, fetch and reshape the candidate pool, score, then
// re-fetch chart series for the winners.
type SimilarityAnalyzer struct {
	source  domrepo.SeriesSource
	store   domrepo.ForecastStore
	pub     domrepo.Publisher
	metrics domrepo.Metrics
	pacer   *ratelimit.Pacer
	l       *applogger.Logger
}

func NewSimilarityAnalyzer(source domrepo.SeriesSource, store domrepo.ForecastStore, pub domrepo.Publisher, metrics domrepo.Metrics, pacer *ratelimit.Pacer) *SimilarityAnalyzer {
	return &SimilarityAnalyzer{source: source, store: store, pub: pub, metrics: metrics, pacer: pacer}
}

// SetLogger injects a structured logger.
func (a *SimilarityAnalyzer) SetLogger(l *applogger.Logger) { a.l = l }

type analysisInput struct {
	spec     domrepo.VariableSpec
	refDay   time.Time
	start    time.Time
	end      time.Time
	mode     string
	topN     int
	weight   float64
	scenario string
}

type fetchResult struct {
	records []models.HourlyRecord
	err     error
}

// Analyze runs the full pipeline. All failures are terminal for the request;
// there are no partial responses.
func (a *SimilarityAnalyzer) Analyze(ctx context.Context, req *models.SimilarDaysRequest) (*models.SimilarityResult, error) {
	in, err := a.validate(req)
	if err != nil {
		a.metrics.RecordError("invalid_input")
		return nil, err
	}

	refCh := make(chan fetchResult, 1)
	poolCh := make(chan fetchResult, 1)
	go func() {
		recs, err := a.resolveReference(ctx, in)
		refCh <- fetchResult{records: recs, err: err}
	}()
	go func() {
		recs, err := a.fetchCandidatePool(ctx, in)
		poolCh <- fetchResult{records: recs, err: err}
	}()

	ref := <-refCh
	pool := <-poolCh
	if ref.err != nil {
		a.metrics.RecordError("reference_fetch")
		return nil, ref.err
	}
	if pool.err != nil {
		a.metrics.RecordError("pool_fetch")
		return nil, pool.err
	}

	scoreStart := time.Now()
	refVec, ok := shape.PivotDay(ref.records, in.refDay)
	if !ok {
		a.metrics.RecordError("no_reference_data")
		return nil, models.ErrNoReferenceData
	}
	candidates := shape.Pivot(pool.records)
	delete(candidates, util.DayKey(in.refDay))
	if len(candidates) == 0 {
		a.metrics.RecordError("no_candidate_data")
		return nil, models.ErrNoCandidateData
	}
	scores := shape.Score(candidates, refVec, in.weight)
	if len(scores) > in.topN {
		scores = scores[:in.topN]
	}
	a.metrics.RecordStageLatency("score", time.Since(scoreStart).Seconds())

	chart, err := a.fetchSeriesForSelection(ctx, in, scores)
	if err != nil {
		a.metrics.RecordError("series_fetch")
		return nil, err
	}

	result := &models.SimilarityResult{
		ReferenceDate:    util.DayKey(in.refDay),
		ReferenceMode:    in.mode,
		MatchVariable:    in.spec.Key,
		TopN:             in.topN,
		EuclideanWeight:  in.weight,
		SimilarityScores: scores,
		ChartData:        chart,
	}

	a.publishEvent(ctx, result)
	a.metrics.RecordAnalysis(in.spec.Key, in.mode)
	return result, nil
}

func (a *SimilarityAnalyzer) validate(req *models.SimilarDaysRequest) (analysisInput, error) {
	var in analysisInput

	spec, ok := domrepo.LookupVariable(req.MatchVariable)
	if !ok {
		return in, models.InvalidInputf("unknown matchVariable %q", req.MatchVariable)
	}
	refDay, ok := util.ParseDay(req.ReferenceDate)
	if !ok {
		return in, models.InvalidInputf("invalid referenceDate %q", req.ReferenceDate)
	}
	start, ok := util.ParseDay(req.StartDate)
	if !ok {
		return in, models.InvalidInputf("invalid startDate %q", req.StartDate)
	}
	end, ok := util.ParseDay(req.EndDate)
	if !ok {
		return in, models.InvalidInputf("invalid endDate %q", req.EndDate)
	}
	if end.Before(start) {
		return in, models.InvalidInputf("endDate %s is before startDate %s", req.EndDate, req.StartDate)
	}
	if req.ReferenceMode == models.ModeForecast {
		if req.ScenarioID == "" {
			return in, models.InvalidInputf("forecast mode requires scenarioId")
		}
		if !spec.SupportsForecast() {
			return in, models.InvalidInputf("variable %q has no forecast recipe", spec.Key)
		}
	}

	in = analysisInput{
		spec:     spec,
		refDay:   refDay,
		start:    start,
		end:      end,
		mode:     req.ReferenceMode,
		topN:     req.TopN,
		weight:   req.Weight(),
		scenario: req.ScenarioID,
	}
	return in, nil
}

func (a *SimilarityAnalyzer) resolveReference(ctx context.Context, in analysisInput) ([]models.HourlyRecord, error) {
	if in.mode == models.ModeForecast {
		return a.store.FetchDay(ctx, in.spec, in.scenario, in.refDay)
	}
	t, err := a.source.FetchRange(ctx, in.spec.ItemKey, in.refDay, in.refDay)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordExternalCall(a.source.Name())
	return tabular.Records(t, in.spec.Key, in.spec.UnitTag), nil
}

func (a *SimilarityAnalyzer) fetchCandidatePool(ctx context.Context, in analysisInput) ([]models.HourlyRecord, error) {
	t, err := a.source.FetchRange(ctx, in.spec.ItemKey, in.start, in.end)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordExternalCall(a.source.Name())
	return tabular.Records(t, in.spec.Key, in.spec.UnitTag), nil
}

// fetchSeriesForSelection re-fetches the full, non-pivoted hourly series for
// the reference day and each winner. External calls go one at a time through
// the pacer; a forecast reference comes from the internal store, unpaced.
func (a *SimilarityAnalyzer) fetchSeriesForSelection(ctx context.Context, in analysisInput, winners []models.SimilarityScore) (map[string]map[string]models.HourlySeries, error) {
	stageStart := time.Now()
	byDay := make(map[string]models.HourlySeries, len(winners)+1)

	refKey := util.DayKey(in.refDay)
	if in.mode == models.ModeForecast {
		recs, err := a.store.FetchDay(ctx, in.spec, in.scenario, in.refDay)
		if err != nil {
			return nil, err
		}
		byDay[refKey] = recordsToSeries(recs)
	} else {
		series, err := a.fetchDaySeries(ctx, in, in.refDay)
		if err != nil {
			return nil, err
		}
		byDay[refKey] = series
	}

	for _, w := range winners {
		if _, dup := byDay[w.Day]; dup {
			continue
		}
		day, ok := util.ParseDay(w.Day)
		if !ok {
			return nil, models.InvalidInputf("invalid winner day %q", w.Day)
		}
		series, err := a.fetchDaySeries(ctx, in, day)
		if err != nil {
			return nil, err
		}
		byDay[w.Day] = series
	}

	a.metrics.RecordStageLatency("series_fetch", time.Since(stageStart).Seconds())
	return map[string]map[string]models.HourlySeries{in.spec.Key: byDay}, nil
}

func (a *SimilarityAnalyzer) fetchDaySeries(ctx context.Context, in analysisInput, day time.Time) (models.HourlySeries, error) {
	if err := a.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	t, err := a.source.FetchRange(ctx, in.spec.ItemKey, day, day)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordExternalCall(a.source.Name())
	recs := tabular.Records(t, in.spec.Key, in.spec.UnitTag)
	kept := recs[:0]
	for _, r := range recs {
		if util.SameDay(r.Day, day) {
			kept = append(kept, r)
		}
	}
	return recordsToSeries(kept), nil
}

// publishEvent emits the analysis summary. Delivery is best effort; a
// publish failure never fails the request.
func (a *SimilarityAnalyzer) publishEvent(ctx context.Context, result *models.SimilarityResult) {
	if a.pub == nil {
		return
	}
	event := &models.AnalysisEvent{
		ReferenceDate: result.ReferenceDate,
		ReferenceMode: result.ReferenceMode,
		MatchVariable: result.MatchVariable,
		GeneratedAt:   time.Now().UTC(),
		TopDays:       make([]models.TopDay, 0, len(result.SimilarityScores)),
	}
	for _, s := range result.SimilarityScores {
		event.TopDays = append(event.TopDays, models.TopDay{Day: s.Day, Rank: s.Rank, CombinedScore: s.CombinedScore})
	}
	if err := a.pub.PublishAnalysis(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		if a.l != nil {
			a.l.Warn("analysis event publish failed", applogger.Error(err))
		}
		a.metrics.RecordError("event_publish")
	}
}

func recordsToSeries(recs []models.HourlyRecord) models.HourlySeries {
	series := make(models.HourlySeries, 0, len(recs))
	for _, r := range recs {
		if !r.Valid {
			continue
		}
		series = append(series, models.SeriesPoint{HourEnding: r.HourEnding, Value: r.Value})
	}
	return series
}
