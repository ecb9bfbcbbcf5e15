//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideSnapshotSink,

		// Repositories
		ProvideCompanyDirectory,

		// Provider clients
		ProvideYahooClient,
		ProvideMarketProvider,
		ProvideSuggestProvider,
		ProvideNewsProvider,
		ProvideLogoResolver,

		// Use cases
		ProvideForecastEngine,
		ProvideBundleUseCase,
		ProvideSuggestUseCase,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
