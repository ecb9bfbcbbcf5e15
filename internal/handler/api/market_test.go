package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	applogger "StockPulse/pkg/logger"
)

type stubMarket struct {
	quote   models.Quote
	history []models.HistoricalPoint
	err     error
}

func (s *stubMarket) QuoteAndHistory(context.Context, string) (models.Quote, []models.HistoricalPoint, error) {
	return s.quote, s.history, s.err
}

type stubNews struct{}

func (stubNews) News(context.Context, string) ([]models.NewsItem, error) {
	return []models.NewsItem{}, nil
}

type stubSuggest struct {
	entries []models.SuggestionEntry
	err     error
}

func (s *stubSuggest) Autocomplete(context.Context, string) ([]models.SuggestionEntry, error) {
	return s.entries, s.err
}

type stubDirectory struct{}

func (stubDirectory) Get(context.Context, string) (models.CompanyRecord, bool, error) {
	return models.CompanyRecord{}, false, nil
}
func (stubDirectory) Upsert(context.Context, models.CompanyRecord) error { return nil }
func (stubDirectory) FindByPrefix(context.Context, string, int) ([]models.CompanyRecord, error) {
	return nil, nil
}

type stubLogos struct{}

func (stubLogos) ResolveLogo(context.Context, string, string, string) string {
	return "https://logo.clearbit.com/example.com"
}

type stubSink struct{}

func (stubSink) Record(context.Context, *models.QuoteSnapshot) error { return nil }
func (stubSink) Close() error                                        { return nil }

type stubMetrics struct{}

func (stubMetrics) RecordBundle(string)             {}
func (stubMetrics) RecordUpstreamError(string, string) {}
func (stubMetrics) RecordDirectoryLookup(string)    {}
func (stubMetrics) RecordLogoResolution(string)     {}
func (stubMetrics) RecordLastPrice(string, float64) {}
func (stubMetrics) RecordLatency(string, float64)   {}

func newTestHandler(market *stubMarket, suggest *stubSuggest) *MarketHandler {
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "json"})
	bundles := usecase.NewBundleUseCase(
		market, stubNews{}, stubLogos{}, stubDirectory{},
		usecase.NewForecastEngine(0.5, "24h"),
		stubSink{}, stubMetrics{}, l, 5*time.Second,
	)
	suggests := usecase.NewSuggestUseCase(suggest, stubDirectory{}, l, 5)
	return NewMarketHandler(bundles, suggests, l)
}

func doRequest(t *testing.T, h *MarketHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetBundleEndpoint(t *testing.T) {
	market := &stubMarket{
		quote: models.Quote{Symbol: "AAPL", CurrentPrice: 196},
		history: []models.HistoricalPoint{
			{Date: time.Now().AddDate(0, 0, -2), Price: 190},
			{Date: time.Now().AddDate(0, 0, -1), Price: 192},
		},
	}
	rec := doRequest(t, newTestHandler(market, &stubSuggest{}), "/api/bundle?symbol=AAPL&seq=3")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Status int `json:"status"`
		Data   struct {
			Seq   int64 `json:"seq"`
			Quote struct {
				Symbol string `json:"symbol"`
			} `json:"quote"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Seq != 3 {
		t.Fatalf("seq = %d, want 3", body.Data.Seq)
	}
	if body.Data.Quote.Symbol != "AAPL" {
		t.Fatalf("symbol = %q", body.Data.Quote.Symbol)
	}
}

func TestGetBundleMissingSymbol(t *testing.T) {
	rec := doRequest(t, newTestHandler(&stubMarket{}, &stubSuggest{}), "/api/bundle")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetBundleSymbolNotFound(t *testing.T) {
	market := &stubMarket{err: models.ErrSymbolNotFound}
	rec := doRequest(t, newTestHandler(market, &stubSuggest{}), "/api/bundle?symbol=NOPE")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetBundleUpstreamDown(t *testing.T) {
	market := &stubMarket{err: models.ErrUpstreamUnavailable}
	rec := doRequest(t, newTestHandler(market, &stubSuggest{}), "/api/bundle?symbol=AAPL")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	suggest := &stubSuggest{entries: []models.SuggestionEntry{
		{Symbol: "AAPL", CompanyName: "Apple Inc."},
	}}
	rec := doRequest(t, newTestHandler(&stubMarket{}, suggest), "/api/suggest?q=app&seq=7")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data struct {
			Seq         int64 `json:"seq"`
			Suggestions []struct {
				Symbol string `json:"symbol"`
			} `json:"suggestions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Seq != 7 {
		t.Fatalf("seq = %d, want 7", body.Data.Seq)
	}
	if len(body.Data.Suggestions) != 1 || body.Data.Suggestions[0].Symbol != "AAPL" {
		t.Fatalf("suggestions = %+v", body.Data.Suggestions)
	}
}

func TestGetBundleRateLimited(t *testing.T) {
	market := &stubMarket{
		quote:   models.Quote{Symbol: "AAPL", CurrentPrice: 196},
		history: []models.HistoricalPoint{{Price: 190}},
	}
	h := newTestHandler(market, &stubSuggest{})

	e := echo.New()
	h.RegisterRoutes(e)

	last := 0
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/bundle?symbol=AAPL", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after burst", last)
	}
}

func TestAnnotateNews(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	items := []models.NewsItem{
		{Title: "a", PublishedAt: now.Add(-2 * time.Hour)},
		{Title: "b"},
	}

	out := annotateNews(items, now)
	if out[0].PublishedRelative != "2h ago" {
		t.Fatalf("relative = %q, want 2h ago", out[0].PublishedRelative)
	}
	if out[1].PublishedRelative != "" {
		t.Fatalf("zero time annotated: %q", out[1].PublishedRelative)
	}
	if items[0].PublishedRelative != "" {
		t.Fatal("input slice mutated")
	}
}

func TestSuggestStaleSeqReturnsEmpty(t *testing.T) {
	suggest := &stubSuggest{entries: []models.SuggestionEntry{
		{Symbol: "AAPL", CompanyName: "Apple Inc."},
	}}
	h := newTestHandler(&stubMarket{}, suggest)

	e := echo.New()
	h.RegisterRoutes(e)

	send := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	fresh := send("/api/suggest?q=app&seq=5")
	if fresh.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", fresh.Code, fresh.Body.String())
	}

	// seq=3 arrives after seq=5 from the same client, so its entries are
	// dropped and the client discards the response by seq.
	stale := send("/api/suggest?q=app&seq=3")
	if stale.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", stale.Code, stale.Body.String())
	}
	var body struct {
		Data struct {
			Seq         int64                    `json:"seq"`
			Suggestions []models.SuggestionEntry `json:"suggestions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(stale.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Seq != 3 {
		t.Fatalf("seq = %d, want 3", body.Data.Seq)
	}
	if len(body.Data.Suggestions) != 0 {
		t.Fatalf("stale suggestions served: %+v", body.Data.Suggestions)
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	rec := doRequest(t, newTestHandler(&stubMarket{}, &stubSuggest{}), "/api/suggest?q=")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
