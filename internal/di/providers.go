package di

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/repository"
	domsvc "StockPulse/internal/domain/service"
	"StockPulse/internal/handler/api"
	internalrepo "StockPulse/internal/repository"
	svccache "StockPulse/internal/service/cache"
	"StockPulse/internal/service/logo"
	"StockPulse/internal/service/newsapi"
	"StockPulse/internal/service/yahoo"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the Redis cache backing the company directory.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	c, err := cache.NewRedisCache(
		cache.WithAddr(cfg.Directory.RedisAddr),
		cache.WithPassword(cfg.Directory.RedisPassword),
		cache.WithDB(cfg.Directory.RedisDB),
		cache.WithPrefix(cfg.Directory.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideCompanyDirectory creates the symbol directory over the cache.
func ProvideCompanyDirectory(c cache.Service, l *applogger.Logger) repository.CompanyDirectory {
	return internalrepo.NewCompanyDirectory(c, l)
}

// ProvideYahooClient creates the market data and autocomplete client.
func ProvideYahooClient(cfg *config.Config) *yahoo.Client {
	return yahoo.New(
		cfg.Market.ChartURL,
		cfg.Market.AutocompleteURL,
		cfg.Market.Range,
		cfg.Market.Interval,
		cfg.Market.UserAgent,
		cfg.Market.Timeout,
	)
}

// ProvideMarketProvider exposes the Yahoo client as a market provider.
func ProvideMarketProvider(c *yahoo.Client) domsvc.MarketProvider { return c }

// ProvideSuggestProvider exposes the Yahoo client as a suggest provider.
func ProvideSuggestProvider(c *yahoo.Client) domsvc.SuggestProvider { return c }

// ProvideNewsProvider creates the headline client.
func ProvideNewsProvider(cfg *config.Config) domsvc.NewsProvider {
	return newsapi.New(
		cfg.News.BaseURL,
		cfg.News.APIKey,
		cfg.News.PageSize,
		cfg.News.Language,
		cfg.News.Timeout,
	)
}

// ProvideLogoResolver creates the logo strategy chain.
func ProvideLogoResolver(cfg *config.Config, l *applogger.Logger, m repository.Metrics) domsvc.LogoResolver {
	return logo.NewResolver(
		l,
		logo.NewHeadProber(cfg.Logo.ProbeTimeout),
		m,
		cfg.Logo.DomainServiceURL,
		cfg.Logo.PlaceholderURL,
	)
}

// ProvideSnapshotSink selects the snapshot backend from config.
func ProvideSnapshotSink(cfg *config.Config, l *applogger.Logger) (repository.SnapshotSink, error) {
	switch cfg.Snapshots.Backend {
	case "clickhouse":
		return provideClickHouseSink(cfg, l)
	case "kafka":
		return provideKafkaSink(cfg, l)
	default:
		return internalrepo.NoopSnapshotSink{}, nil
	}
}

func provideClickHouseSink(cfg *config.Config, l *applogger.Logger) (repository.SnapshotSink, error) {
	ch := cfg.Snapshots.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	table := ch.Database + ".quote_snapshots"
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + ch.Database,
		"CREATE TABLE IF NOT EXISTS " + table + " (symbol String, ts DateTime, price Float64, price_change Float64, percent_change Float64) ENGINE=MergeTree ORDER BY (symbol, ts)",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return internalrepo.NewCHSnapshotSink(client, table, l), nil
}

func provideKafkaSink(cfg *config.Config, l *applogger.Logger) (repository.SnapshotSink, error) {
	k := cfg.Snapshots.Kafka
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(k.Brokers),
		pkgkafka.WithCompression(k.Compression),
		pkgkafka.WithRequiredAcks(k.RequiredAcks),
		pkgkafka.WithWriteTimeout(k.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaSnapshotSink(producer, k.Topic, l), nil
}

// ProvideForecastEngine creates the heuristic forecast engine.
func ProvideForecastEngine(cfg *config.Config) *usecase.ForecastEngine {
	drift := 0.5
	if cfg.Forecast.NeutralDrift != nil {
		drift = *cfg.Forecast.NeutralDrift
	}
	return usecase.NewForecastEngine(drift, cfg.Forecast.Timeframe)
}

// ProvideBundleUseCase wires the bundle orchestrator.
func ProvideBundleUseCase(
	cfg *config.Config,
	market domsvc.MarketProvider,
	news domsvc.NewsProvider,
	logos domsvc.LogoResolver,
	directory repository.CompanyDirectory,
	engine *usecase.ForecastEngine,
	sink repository.SnapshotSink,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.BundleUseCase {
	uc := usecase.NewBundleUseCase(market, news, logos, directory, engine, sink, m, l, cfg.Bundle.Timeout)
	if cfg.Bundle.CacheTTL > 0 {
		uc.SetCache(svccache.NewBundleCache(cfg.Bundle.CacheTTL))
	}
	return uc
}

// ProvideSuggestUseCase wires the typeahead use case.
func ProvideSuggestUseCase(
	cfg *config.Config,
	provider domsvc.SuggestProvider,
	directory repository.CompanyDirectory,
	l *applogger.Logger,
) *usecase.SuggestUseCase {
	return usecase.NewSuggestUseCase(provider, directory, l, cfg.Suggest.Limit)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(bundles *usecase.BundleUseCase, suggests *usecase.SuggestUseCase, l *applogger.Logger) xhttp.Handler {
	return api.NewMarketHandler(bundles, suggests, l)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler, sink repository.SnapshotSink) *server.App {
	return server.New(cfg, l, handler, sink)
}
