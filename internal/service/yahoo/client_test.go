package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func newTestClient(chartHandler, acHandler http.HandlerFunc) (*Client, func()) {
	mux := http.NewServeMux()
	if chartHandler != nil {
		mux.HandleFunc("/v8/finance/chart/", chartHandler)
	}
	if acHandler != nil {
		mux.HandleFunc("/v6/finance/autocomplete", acHandler)
	}
	srv := httptest.NewServer(mux)
	c := New(
		srv.URL+"/v8/finance/chart",
		srv.URL+"/v6/finance/autocomplete",
		"1mo", "1d", "test-agent", 5*time.Second,
	)
	return c, srv.Close
}

func chartBody(price, prevClose string, timestamps, closes, opens string) string {
	return fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"regularMarketPrice":%s,"previousClose":%s},
		"timestamp":%s,
		"indicators":{"quote":[{"close":%s,"open":%s}]}
	}],"error":null}}`, price, prevClose, timestamps, closes, opens)
}

func TestQuoteAndHistory(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("range"); got != "1mo" {
			t.Errorf("range = %q, want 1mo", got)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %q, want 1d", got)
		}
		fmt.Fprint(w, chartBody("196", "191.5", "[1700000000,1700086400,1700172800]", "[190,191,192]", "[189,190,191]"))
	}, nil)
	defer done()

	quote, history, err := c.QuoteAndHistory(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Symbol != "AAPL" || quote.CurrentPrice != 196 {
		t.Fatalf("unexpected quote: %+v", quote)
	}
	if quote.PriceChange == nil || quote.PercentChange == nil {
		t.Fatalf("expected change fields, got %+v", quote)
	}
	if *quote.PriceChange != 4.5 {
		t.Fatalf("price change = %v, want 4.5", *quote.PriceChange)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	for i := 1; i < len(history); i++ {
		if !history[i].Date.After(history[i-1].Date) {
			t.Fatalf("history dates not ascending at %d", i)
		}
	}
}

func TestQuoteAndHistoryNullCloseFallsBackToOpen(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody("7", "5", "[1,2,3]", "[5,null,7]", "[5,6,7]"))
	}, nil)
	defer done()

	_, history, err := c.QuoteAndHistory(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{5, 6, 7}
	if len(history) != len(want) {
		t.Fatalf("history length = %d, want %d", len(history), len(want))
	}
	for i, p := range history {
		if p.Price != want[i] {
			t.Fatalf("history[%d].Price = %v, want %v", i, p.Price, want[i])
		}
	}
}

func TestQuoteAndHistoryDropsAllNullSamples(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody("7", "5", "[1,2]", "[null,null]", "[null,null]"))
	}, nil)
	defer done()

	_, history, err := c.QuoteAndHistory(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history length = %d, want 0", len(history))
	}
}

func TestQuoteAndHistoryMissingPreviousClose(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody("196", "null", "[1]", "[190]", "[189]"))
	}, nil)
	defer done()

	quote, _, err := c.QuoteAndHistory(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.PriceChange != nil || quote.PercentChange != nil {
		t.Fatalf("expected nil change fields, got %+v", quote)
	}
	if quote.CurrentPrice != 196 {
		t.Fatalf("current price = %v, want 196", quote.CurrentPrice)
	}
}

func TestQuoteAndHistoryCompanyName(t *testing.T) {
	cases := []struct {
		name string
		meta string
		want string
	}{
		{"long name preferred", `,"longName":"Apple Inc.","shortName":"Apple"`, "Apple Inc."},
		{"short name fallback", `,"shortName":"Apple"`, "Apple"},
		{"no name reported", ``, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"chart":{"result":[{
					"meta":{"regularMarketPrice":196%s},
					"timestamp":[1],
					"indicators":{"quote":[{"close":[190],"open":[189]}]}
				}],"error":null}}`, tc.meta)
			}, nil)
			defer done()

			quote, _, err := c.QuoteAndHistory(context.Background(), "AAPL")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.CompanyName != tc.want {
				t.Fatalf("company name = %q, want %q", quote.CompanyName, tc.want)
			}
		})
	}
}

func TestQuoteAndHistorySymbolNotFound(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`)
	}, nil)
	defer done()

	_, _, err := c.QuoteAndHistory(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrSymbolNotFound) {
		t.Fatalf("error = %v, want ErrSymbolNotFound", err)
	}
}

func TestQuoteAndHistoryEmptyResultIsNotFound(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}, nil)
	defer done()

	_, _, err := c.QuoteAndHistory(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrSymbolNotFound) {
		t.Fatalf("error = %v, want ErrSymbolNotFound", err)
	}
}

func TestQuoteAndHistoryServerError(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)
	defer done()

	_, _, err := c.QuoteAndHistory(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestQuoteAndHistoryMissingMeta(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{},"timestamp":[1],"indicators":{"quote":[{"close":[1],"open":[1]}]}}],"error":null}}`)
	}, nil)
	defer done()

	_, _, err := c.QuoteAndHistory(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestAutocomplete(t *testing.T) {
	c, done := newTestClient(nil, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "app" {
			t.Errorf("query = %q, want app", got)
		}
		fmt.Fprint(w, `{"ResultSet":{"Result":[
			{"symbol":"AAPL","name":"Apple Inc."},
			{"symbol":"APP","name":"AppLovin Corporation"}
		]}}`)
	})
	defer done()

	entries, err := c.Autocomplete(context.Background(), "app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Symbol != "AAPL" || entries[0].CompanyName != "Apple Inc." {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestAutocompleteUpstreamDown(t *testing.T) {
	c, done := newTestClient(nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer done()

	_, err := c.Autocomplete(context.Background(), "app")
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}
