package di

import (
	"context"
	"fmt"
	"time"

	"ShapeMatch/internal/domain/repository"
	"ShapeMatch/internal/handler/api"
	internalrepo "ShapeMatch/internal/repository"
	"ShapeMatch/internal/service/cache"
	"ShapeMatch/internal/service/ratelimit"
	"ShapeMatch/internal/service/yesenergy"
	"ShapeMatch/internal/usecase"
	pkgch "ShapeMatch/pkg/clickhouse"
	"ShapeMatch/pkg/config"
	pkgkafka "ShapeMatch/pkg/kafka"
	applogger "ShapeMatch/pkg/logger"
	pkgmetrics "ShapeMatch/pkg/metrics"
	"ShapeMatch/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// forecast schema exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.Schema()); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideForecastStore creates the ClickHouse-backed forecast store.
func ProvideForecastStore(chClient *pkgch.Client, l *applogger.Logger) repository.ForecastStore {
	store := internalrepo.NewCHForecastStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideSeriesSource creates the external tabular source client.
func ProvideSeriesSource(cfg *config.Config, l *applogger.Logger) repository.SeriesSource {
	src := yesenergy.New(
		cfg.YesEnergy.BaseURL,
		cfg.YesEnergy.Username,
		cfg.YesEnergy.Password,
		cfg.YesEnergy.Timeout,
	)
	if c, ok := src.(*yesenergy.Client); ok {
		c.SetLogger(l)
	}
	return src
}

// ProvideKafkaProducer creates a Kafka producer, or nil when events are
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithBatchTimeout(cfg.Kafka.BatchTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the analysis event publisher.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return internalrepo.NopPublisher{}
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return pkgmetrics.New()
}

// ProvidePacer creates the external-call pacer.
func ProvidePacer(cfg *config.Config) *ratelimit.Pacer {
	return ratelimit.NewPacer(cfg.YesEnergy.PaceInterval)
}

// ProvideCache selects the response cache backend.
func ProvideCache(cfg *config.Config) cache.BytesCache {
	if cfg.Analysis.Redis.Enabled {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Analysis.Redis.Addr,
			Password: cfg.Analysis.Redis.Password,
			DB:       cfg.Analysis.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideAnalyzer creates the similarity analyzer use case.
func ProvideAnalyzer(
	source repository.SeriesSource,
	store repository.ForecastStore,
	pub repository.Publisher,
	metrics repository.Metrics,
	pacer *ratelimit.Pacer,
	l *applogger.Logger,
) *usecase.SimilarityAnalyzer {
	a := usecase.NewSimilarityAnalyzer(source, store, pub, metrics, pacer)
	a.SetLogger(l)
	return a
}

// ProvideHandler creates the Echo API handler.
func ProvideHandler(
	l *applogger.Logger,
	analyzer *usecase.SimilarityAnalyzer,
	store repository.ForecastStore,
	c cache.BytesCache,
	cfg *config.Config,
) *api.SimilarityHandler {
	return api.NewSimilarityHandler(l, analyzer, store, c, cfg.Analysis.CacheTTL, cfg.Environment)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler *api.SimilarityHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, chClient, producer, l)
}
