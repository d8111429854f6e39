package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ShapeMatch/internal/domain/models"
	domrepo "ShapeMatch/internal/domain/repository"
	"ShapeMatch/internal/service/cache"
	svcmetrics "ShapeMatch/internal/service/metrics"
	"ShapeMatch/internal/service/ratelimit"
	"ShapeMatch/internal/usecase"
	xhttp "ShapeMatch/pkg/http"
	xlogger "ShapeMatch/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	limiterCapacity  = 5
	limiterRefillSec = 1
)

// SimilarityHandler exposes the analysis pipeline over Echo.
type SimilarityHandler struct {
	logger      *xlogger.Logger
	analyzer    *usecase.SimilarityAnalyzer
	store       domrepo.ForecastStore
	cache       cache.BytesCache
	limiter     *ratelimit.Limiter
	cacheTTL    time.Duration
	environment string
}

func NewSimilarityHandler(logger *xlogger.Logger, analyzer *usecase.SimilarityAnalyzer, store domrepo.ForecastStore, c cache.BytesCache, cacheTTL time.Duration, environment string) *SimilarityHandler {
	svcmetrics.Register()
	return &SimilarityHandler{
		logger:      logger,
		analyzer:    analyzer,
		store:       store,
		cache:       c,
		limiter:     ratelimit.New(),
		cacheTTL:    cacheTTL,
		environment: environment,
	}
}

func (h *SimilarityHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/similar-days", h.SimilarDays)
	g.GET("/variables", h.Variables)
	e.GET("/healthz", h.Healthz)
}

func (h *SimilarityHandler) SimilarDays(c echo.Context) error {
	start := time.Now()
	defer func() {
		svcmetrics.SimilarityLatency.WithLabelValues("similar-days").Observe(time.Since(start).Seconds())
	}()

	if !h.limiter.Allow(c.RealIP(), limiterCapacity, limiterRefillSec) {
		svcmetrics.SimilarityErrors.WithLabelValues("similar-days").Inc()
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.SimilarDaysRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		svcmetrics.SimilarityErrors.WithLabelValues("similar-days").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	key := cacheKey(req)
	if h.cache != nil {
		if raw, ok, err := h.cache.GetBytes(key); err == nil && ok {
			return xhttp.SuccessResponse(c, json.RawMessage(raw))
		}
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), req)
	if err != nil {
		svcmetrics.SimilarityErrors.WithLabelValues("similar-days").Inc()
		h.logger.Error("similar-days usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err))
	}

	if h.cache != nil {
		if raw, err := json.Marshal(res); err == nil {
			_ = h.cache.SetBytes(key, raw, h.cacheTTL)
		}
	}
	return xhttp.SuccessResponse(c, res)
}

// VariableInfo is one registry entry as exposed over the API.
type VariableInfo struct {
	Key              string `json:"key"`
	ItemKey          string `json:"itemKey"`
	UnitTag          string `json:"unitTag"`
	SupportsForecast bool   `json:"supportsForecast"`
}

func (h *SimilarityHandler) Variables(c echo.Context) error {
	specs := domrepo.Variables()
	out := make([]VariableInfo, 0, len(specs))
	for _, s := range specs {
		out = append(out, VariableInfo{
			Key:              s.Key,
			ItemKey:          s.ItemKey,
			UnitTag:          s.UnitTag,
			SupportsForecast: s.SupportsForecast(),
		})
	}
	return xhttp.SuccessResponse(c, out)
}

func (h *SimilarityHandler) Healthz(c echo.Context) error {
	chStatus := "ok"
	if err := h.store.Health(c.Request().Context()); err != nil {
		chStatus = "error"
	}
	return xhttp.SuccessResponse(c, map[string]string{
		"environment": h.environment,
		"clickhouse":  chStatus,
	})
}

// mapDomainError translates pipeline failures into transport errors.
func mapDomainError(err error) error {
	var ue *models.UpstreamError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return xhttp.BadRequestError(err.Error())
	case errors.Is(err, models.ErrNoReferenceData):
		return xhttp.NotFoundError("ERR_NO_REFERENCE_DATA", err.Error())
	case errors.Is(err, models.ErrNoCandidateData):
		return xhttp.NotFoundError("ERR_NO_CANDIDATE_DATA", err.Error())
	case errors.As(err, &ue):
		return xhttp.BadGatewayError(fmt.Sprintf("upstream %s failed", ue.Source))
	default:
		return err
	}
}

func cacheKey(req *models.SimilarDaysRequest) string {
	return fmt.Sprintf("similar:%s:%s:%s:%s:%s:%d:%.3f:%s",
		req.ReferenceDate, req.ReferenceMode, req.MatchVariable,
		req.StartDate, req.EndDate, req.TopN, req.Weight(), req.ScenarioID)
}
