package service

import (
	"context"

	"StockPulse/internal/domain/models"
)

// MarketProvider fetches the mandatory quote and history for one symbol in a
// single upstream call.
type MarketProvider interface {
	QuoteAndHistory(ctx context.Context, symbol string) (models.Quote, []models.HistoricalPoint, error)
}

// NewsProvider fetches recent articles for a symbol. Sentiment classification
// is not supplied upstream; items default to neutral.
type NewsProvider interface {
	News(ctx context.Context, symbol string) ([]models.NewsItem, error)
}

// SuggestProvider is the upstream autocomplete endpoint.
type SuggestProvider interface {
	Autocomplete(ctx context.Context, query string) ([]models.SuggestionEntry, error)
}

// LogoResolver resolves a usable logo URL for a symbol. It never fails; the
// last strategy in the chain is a deterministic placeholder.
type LogoResolver interface {
	ResolveLogo(ctx context.Context, symbol, companyName, websiteURL string) string
}
