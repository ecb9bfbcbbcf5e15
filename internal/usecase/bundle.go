package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	domsvc "StockPulse/internal/domain/service"
	svccache "StockPulse/internal/service/cache"
	applogger "StockPulse/pkg/logger"
)

// BundleUseCase assembles the per-symbol market bundle: live quote, daily
// history, company metadata with a logo, recent headlines and a heuristic
// forecast. Quote and history are mandatory; everything else degrades.
type BundleUseCase struct {
	market    domsvc.MarketProvider
	news      domsvc.NewsProvider
	logos     domsvc.LogoResolver
	directory domrepo.CompanyDirectory
	forecast  *ForecastEngine
	sink      domrepo.SnapshotSink
	metrics   domrepo.Metrics
	logger    *applogger.Logger
	cache     *svccache.BundleCache
	timeout   time.Duration
}

func NewBundleUseCase(
	market domsvc.MarketProvider,
	news domsvc.NewsProvider,
	logos domsvc.LogoResolver,
	directory domrepo.CompanyDirectory,
	forecast *ForecastEngine,
	sink domrepo.SnapshotSink,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	timeout time.Duration,
) *BundleUseCase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BundleUseCase{
		market:    market,
		news:      news,
		logos:     logos,
		directory: directory,
		forecast:  forecast,
		sink:      sink,
		metrics:   metrics,
		logger:    l,
		timeout:   timeout,
	}
}

// SetCache enables short-TTL reuse of served bundles.
func (uc *BundleUseCase) SetCache(c *svccache.BundleCache) { uc.cache = c }

type marketResult struct {
	quote   models.Quote
	history []models.HistoricalPoint
}

type directoryResult struct {
	record models.CompanyRecord
	found  bool
}

// GetBundle fetches everything for one symbol. It fails only when the quote
// cannot be fetched; news, directory and forecast failures degrade the
// bundle instead.
func (uc *BundleUseCase) GetBundle(ctx context.Context, symbol string) (*models.MarketBundle, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	start := time.Now()

	if uc.cache != nil {
		if cached, ok := uc.cache.Get(symbol); ok {
			uc.metrics.RecordBundle("cached")
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		quote, history, err := uc.market.QuoteAndHistory(ctx, symbol)
		ch <- item{"market", marketResult{quote, history}, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		items, err := uc.news.News(ctx, symbol)
		ch <- item{"news", items, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		rec, found, err := uc.directory.Get(ctx, symbol)
		ch <- item{"directory", directoryResult{rec, found}, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	var market marketResult
	var marketErr error
	news := []models.NewsItem{}
	var dir directoryResult
	degraded := false

	for it := range ch {
		switch it.name {
		case "market":
			market, marketErr = it.val.(marketResult), it.err
		case "news":
			if it.err != nil {
				degraded = true
				uc.metrics.RecordUpstreamError("news", models.ErrorKind(it.err))
				uc.logger.Warn("news fetch failed",
					applogger.String("symbol", symbol),
					applogger.Error(it.err))
				continue
			}
			news = it.val.([]models.NewsItem)
		case "directory":
			if it.err != nil {
				degraded = true
				uc.metrics.RecordDirectoryLookup("error")
				uc.logger.Warn("directory lookup failed",
					applogger.String("symbol", symbol),
					applogger.Error(it.err))
				continue
			}
			dir = it.val.(directoryResult)
		}
	}

	if marketErr != nil {
		uc.metrics.RecordUpstreamError("market", models.ErrorKind(marketErr))
		uc.metrics.RecordBundle("error")
		return nil, marketErr
	}

	bundle := &models.MarketBundle{
		Quote:   market.quote,
		History: market.history,
		News:    news,
	}

	uc.fillCompany(ctx, bundle, symbol, dir)

	forecast, err := uc.forecast.Predict(market.quote.CurrentPrice, market.history, news)
	if err != nil {
		degraded = true
		uc.logger.Warn("forecast unavailable",
			applogger.String("symbol", symbol),
			applogger.Error(err))
	} else {
		bundle.Forecast = forecast
	}

	uc.recordSnapshot(ctx, symbol, market.quote)

	uc.metrics.RecordLastPrice(symbol, market.quote.CurrentPrice)
	uc.metrics.RecordLatency("bundle", time.Since(start).Seconds())
	if degraded {
		uc.metrics.RecordBundle("degraded")
	} else {
		uc.metrics.RecordBundle("ok")
	}
	if uc.cache != nil {
		uc.cache.Set(symbol, bundle)
	}
	return bundle, nil
}

// fillCompany attaches company name and logo. A directory hit is used as is;
// a miss takes the provider-reported name (symbol when the provider has
// none), resolves a logo and writes the record back, best-effort.
func (uc *BundleUseCase) fillCompany(ctx context.Context, bundle *models.MarketBundle, symbol string, dir directoryResult) {
	if dir.found {
		uc.metrics.RecordDirectoryLookup("hit")
		bundle.CompanyName = dir.record.CompanyName
		bundle.LogoURL = dir.record.LogoURL
		if bundle.LogoURL != "" {
			return
		}
	} else {
		uc.metrics.RecordDirectoryLookup("miss")
	}

	if bundle.CompanyName == "" {
		bundle.CompanyName = bundle.Quote.CompanyName
	}
	if bundle.CompanyName == "" {
		bundle.CompanyName = symbol
	}
	bundle.LogoURL = uc.logos.ResolveLogo(ctx, symbol, bundle.CompanyName, "")

	rec := models.CompanyRecord{
		Symbol:      symbol,
		CompanyName: bundle.CompanyName,
		LogoURL:     bundle.LogoURL,
	}
	if err := uc.directory.Upsert(ctx, rec); err != nil {
		uc.logger.Warn("directory upsert failed",
			applogger.String("symbol", symbol),
			applogger.Error(err))
	}
}

// recordSnapshot hands the quote to the configured sink. Sink failures are
// logged and swallowed; the bundle response never depends on them.
func (uc *BundleUseCase) recordSnapshot(ctx context.Context, symbol string, quote models.Quote) {
	snap := &models.QuoteSnapshot{
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
		Price:     quote.CurrentPrice,
	}
	if quote.PriceChange != nil {
		snap.PriceChange = *quote.PriceChange
	}
	if quote.PercentChange != nil {
		snap.PercentChange = *quote.PercentChange
	}
	if err := uc.sink.Record(ctx, snap); err != nil {
		uc.logger.Warn("snapshot sink write failed",
			applogger.String("symbol", symbol),
			applogger.Error(err))
	}
}
