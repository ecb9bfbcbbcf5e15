package models

import "time"

// Quote is the normalized live quote for one symbol. Change figures come from
// the provider's own previous-close field; when that field is absent or zero
// the pair stays nil rather than collapsing to 0.
type Quote struct {
	Symbol        string   `json:"symbol"`
	CurrentPrice  float64  `json:"current_price"`
	PriceChange   *float64 `json:"price_change,omitempty"`
	PercentChange *float64 `json:"percent_change,omitempty"`

	// CompanyName as reported by the provider. Served through the bundle's
	// top-level field, so it stays out of the quote wire shape.
	CompanyName string `json:"-"`
}

// HistoricalPoint is one daily sample of the lookback window.
// Sequences are ascending by date with null-price samples dropped.
type HistoricalPoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Prices extracts the price column from a history sequence.
func Prices(history []HistoricalPoint) []float64 {
	out := make([]float64, len(history))
	for i, p := range history {
		out[i] = p.Price
	}
	return out
}

// MarketBundle is the aggregated response for one symbol request.
// Forecast and LogoURL may be absent on a degraded response.
type MarketBundle struct {
	Quote       Quote             `json:"quote"`
	History     []HistoricalPoint `json:"history"`
	CompanyName string            `json:"company_name"`
	LogoURL     string            `json:"logo_url,omitempty"`
	Forecast    *Forecast         `json:"forecast,omitempty"`
	News        []NewsItem        `json:"news"`
}

// QuoteSnapshot is the best-effort audit record emitted after a bundle is
// served. Never part of the response shape.
type QuoteSnapshot struct {
	Symbol        string    `json:"symbol"`
	Timestamp     time.Time `json:"ts"`
	Price         float64   `json:"price"`
	PriceChange   float64   `json:"price_change"`
	PercentChange float64   `json:"percent_change"`
}
