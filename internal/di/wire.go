//go:build wireinject
// +build wireinject

package di

import (
	"ShapeMatch/pkg/config"
	"ShapeMatch/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideForecastStore,
		ProvideSeriesSource,
		ProvidePublisher,

		// Services
		ProvidePacer,
		ProvideCache,

		// Use cases
		ProvideAnalyzer,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
