package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"StockPulse/internal/domain/models"
	domsvc "StockPulse/internal/domain/service"
	xhttp "StockPulse/pkg/http"
)

// Client fetches quotes, daily history and autocomplete suggestions from the
// Yahoo Finance public API.
type Client struct {
	http            *xhttp.Client
	chartURL        string
	autocompleteURL string
	rng             string
	interval        string
}

// New creates a Yahoo Finance client.
func New(chartURL, autocompleteURL, rng, interval, userAgent string, timeout time.Duration) *Client {
	return &Client{
		http: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithUserAgent(userAgent),
		),
		chartURL:        chartURL,
		autocompleteURL: autocompleteURL,
		rng:             rng,
		interval:        interval,
	}
}

var (
	_ domsvc.MarketProvider  = (*Client)(nil)
	_ domsvc.SuggestProvider = (*Client)(nil)
)

// chartResponse is the v8 chart API shape. Price columns use pointers so
// null samples survive decoding instead of collapsing to zero.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				PreviousClose      *float64 `json:"previousClose"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
				LongName           string   `json:"longName"`
				ShortName          string   `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// QuoteAndHistory fetches the live quote and the daily lookback window in one
// chart call. Change figures come from the provider's own previous-close
// field; they stay nil when that field is absent or zero.
func (c *Client) QuoteAndHistory(ctx context.Context, symbol string) (models.Quote, []models.HistoricalPoint, error) {
	var quote models.Quote

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.chartURL, url.PathEscape(symbol)),
		QueryParams: map[string][]string{
			"interval": {c.interval},
			"range":    {c.rng},
		},
	}, &resp)
	if err != nil {
		return quote, nil, classifyTransportError("chart", err)
	}

	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return quote, nil, fmt.Errorf("chart %s: %w", symbol, models.ErrSymbolNotFound)
		}
		return quote, nil, fmt.Errorf("chart %s: %s: %w", symbol, resp.Chart.Error.Description, models.ErrUpstreamUnavailable)
	}
	if len(resp.Chart.Result) == 0 {
		return quote, nil, fmt.Errorf("chart %s: no result: %w", symbol, models.ErrSymbolNotFound)
	}

	result := resp.Chart.Result[0]
	if result.Meta.RegularMarketPrice == nil {
		return quote, nil, fmt.Errorf("chart %s: missing market price: %w", symbol, models.ErrMalformedResponse)
	}
	if len(result.Indicators.Quote) == 0 {
		return quote, nil, fmt.Errorf("chart %s: missing quote indicators: %w", symbol, models.ErrMalformedResponse)
	}

	quote.Symbol = symbol
	quote.CurrentPrice = *result.Meta.RegularMarketPrice
	quote.CompanyName = result.Meta.LongName
	if quote.CompanyName == "" {
		quote.CompanyName = result.Meta.ShortName
	}

	prevClose := result.Meta.PreviousClose
	if prevClose == nil {
		prevClose = result.Meta.ChartPreviousClose
	}
	if prevClose != nil && *prevClose != 0 {
		change := quote.CurrentPrice - *prevClose
		percent := change / *prevClose * 100
		quote.PriceChange = &change
		quote.PercentChange = &percent
	}

	history := normalizeHistory(result.Timestamp, result.Indicators.Quote[0].Close, result.Indicators.Quote[0].Open)
	return quote, history, nil
}

// normalizeHistory pairs each timestamp with the close at the same index,
// falling back to the open when close is null and dropping the sample when
// both are null. Order follows the timestamp column, so dates stay ascending.
func normalizeHistory(timestamps []int64, closes, opens []*float64) []models.HistoricalPoint {
	points := make([]models.HistoricalPoint, 0, len(timestamps))
	for i, ts := range timestamps {
		var price *float64
		if i < len(closes) && closes[i] != nil {
			price = closes[i]
		} else if i < len(opens) && opens[i] != nil {
			price = opens[i]
		}
		if price == nil {
			continue
		}
		points = append(points, models.HistoricalPoint{
			Date:  time.Unix(ts, 0).UTC(),
			Price: *price,
		})
	}
	return points
}

type autocompleteResponse struct {
	ResultSet struct {
		Result []struct {
			Symbol string `json:"symbol"`
			Name   string `json:"name"`
		} `json:"Result"`
	} `json:"ResultSet"`
}

// Autocomplete returns upstream typeahead candidates in upstream order.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]models.SuggestionEntry, error) {
	var resp autocompleteResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.autocompleteURL,
		QueryParams: map[string][]string{
			"query": {query},
			"lang":  {"en"},
		},
	}, &resp)
	if err != nil {
		return nil, classifyTransportError("autocomplete", err)
	}

	entries := make([]models.SuggestionEntry, 0, len(resp.ResultSet.Result))
	for _, r := range resp.ResultSet.Result {
		entries = append(entries, models.SuggestionEntry{
			Symbol:      r.Symbol,
			CompanyName: r.Name,
		})
	}
	return entries, nil
}

// classifyTransportError maps transport failures to pipeline error kinds:
// 404 means the provider confirmed the symbol, other statuses and network
// errors mean the upstream is unavailable, and a 2xx body that failed to
// decode is malformed.
func classifyTransportError(op string, err error) error {
	var statusErr *xhttp.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("yahoo %s: %w", op, models.ErrSymbolNotFound)
		}
		return fmt.Errorf("yahoo %s: status %d: %w", op, statusErr.StatusCode, models.ErrUpstreamUnavailable)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("yahoo %s: timeout: %w", op, models.ErrUpstreamUnavailable)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("yahoo %s: %v: %w", op, urlErr, models.ErrUpstreamUnavailable)
	}
	return fmt.Errorf("yahoo %s: %v: %w", op, err, models.ErrMalformedResponse)
}
