package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"ShapeMatch/internal/domain/models"
	domrepo "ShapeMatch/internal/domain/repository"
	svccache "ShapeMatch/internal/service/cache"
	"ShapeMatch/internal/service/ratelimit"
	"ShapeMatch/internal/usecase"
	xlogger "ShapeMatch/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubSource struct {
	table *models.Table
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchRange(ctx context.Context, itemKey string, start, end time.Time) (*models.Table, error) {
	s.calls++
	return s.table, nil
}

type stubStore struct{ healthErr error }

func (s *stubStore) FetchDay(ctx context.Context, spec domrepo.VariableSpec, scenarioID string, day time.Time) ([]models.HourlyRecord, error) {
	return nil, nil
}

func (s *stubStore) Health(ctx context.Context) error { return s.healthErr }

type stubMetrics struct{}

func (stubMetrics) RecordStageLatency(string, float64) {}
func (stubMetrics) RecordExternalCall(string)          {}
func (stubMetrics) RecordError(string)                 {}
func (stubMetrics) RecordAnalysis(string, string)      {}

func stubTable(days ...string) *models.Table {
	t := &models.Table{Header: []string{"DATE", "HE", "RTLOAD_ERCOT (MW)"}}
	for i, day := range days {
		for he := 1; he <= 24; he++ {
			t.Rows = append(t.Rows, []string{
				day,
				strconv.Itoa(he),
				strconv.FormatFloat(float64(1000*(i+1)+he), 'f', 1, 64),
			})
		}
	}
	return t
}

func newTestHandler(src *stubSource, store *stubStore) (*SimilarityHandler, *echo.Echo) {
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		panic(err)
	}
	analyzer := usecase.NewSimilarityAnalyzer(src, store, nil, stubMetrics{}, ratelimit.NewPacer(0))
	h := NewSimilarityHandler(l, analyzer, store, svccache.NewTTLCache(), time.Minute, "test")
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func doGET(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validQuery = "/api/similar-days?referenceDate=2026-06-15&matchVariable=rt_load&startDate=2026-06-01&endDate=2026-06-10&topN=2"

func envelopeStatus(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var envelope struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope.Status
}

func TestSimilarDaysOK(t *testing.T) {
	src := &stubSource{table: stubTable("2026-06-15", "2026-06-01", "2026-06-02", "2026-06-03")}
	_, e := newTestHandler(src, &stubStore{})

	rec := doGET(e, validQuery)
	var envelope struct {
		Status int                     `json:"status"`
		Data   models.SimilarityResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Status != http.StatusOK {
		t.Fatalf("envelope status = %d, body = %s", envelope.Status, rec.Body.String())
	}
	if len(envelope.Data.SimilarityScores) != 2 {
		t.Fatalf("got %d scores, want 2", len(envelope.Data.SimilarityScores))
	}
	if envelope.Data.ChartData["rt_load"] == nil {
		t.Fatalf("chart data missing")
	}
}

func TestSimilarDaysCached(t *testing.T) {
	src := &stubSource{table: stubTable("2026-06-15", "2026-06-01", "2026-06-02", "2026-06-03")}
	_, e := newTestHandler(src, &stubStore{})

	if got := envelopeStatus(t, doGET(e, validQuery)); got != http.StatusOK {
		t.Fatalf("first call status = %d", got)
	}
	callsAfterFirst := src.calls

	if got := envelopeStatus(t, doGET(e, validQuery)); got != http.StatusOK {
		t.Fatalf("second call status = %d", got)
	}
	if src.calls != callsAfterFirst {
		t.Fatalf("cached call hit the source: %d -> %d", callsAfterFirst, src.calls)
	}
}

func TestSimilarDaysValidation(t *testing.T) {
	_, e := newTestHandler(&stubSource{}, &stubStore{})

	cases := []string{
		"/api/similar-days",
		"/api/similar-days?referenceDate=June+1&matchVariable=rt_load&startDate=2026-06-01&endDate=2026-06-10",
		"/api/similar-days?referenceDate=2026-06-15&matchVariable=rt_load&startDate=2026-06-01&endDate=2026-06-10&topN=50",
		"/api/similar-days?referenceDate=2026-06-15&matchVariable=rt_load&startDate=2026-06-01&endDate=2026-06-10&euclideanWeight=1.5",
	}
	for _, target := range cases {
		if got := envelopeStatus(t, doGET(e, target)); got != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, got)
		}
	}
}

func TestSimilarDaysNoData(t *testing.T) {
	// source returns only the reference day, so the pool is empty
	src := &stubSource{table: stubTable("2026-06-15")}
	_, e := newTestHandler(src, &stubStore{})

	rec := doGET(e, validQuery)
	if got := envelopeStatus(t, rec); got != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body = %s", got, rec.Body.String())
	}
}

func TestVariables(t *testing.T) {
	_, e := newTestHandler(&stubSource{}, &stubStore{})

	rec := doGET(e, "/api/variables")
	if got := envelopeStatus(t, rec); got != http.StatusOK {
		t.Fatalf("status = %d", got)
	}
	var envelope struct {
		Data []VariableInfo `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, v := range envelope.Data {
		if v.Key == "rt_load" {
			found = true
			if !v.SupportsForecast {
				t.Fatalf("rt_load should support forecast mode")
			}
		}
	}
	if !found {
		t.Fatalf("rt_load missing from registry response")
	}
}

func TestHealthz(t *testing.T) {
	_, e := newTestHandler(&stubSource{}, &stubStore{})

	rec := doGET(e, "/healthz")
	if got := envelopeStatus(t, rec); got != http.StatusOK {
		t.Fatalf("status = %d", got)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["clickhouse"] != "ok" {
		t.Fatalf("clickhouse = %s, want ok", envelope.Data["clickhouse"])
	}
}
