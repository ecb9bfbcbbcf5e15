package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"StockPulse/internal/domain/models"
	domsvc "StockPulse/internal/domain/service"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

// Client fetches recent headlines from the NewsAPI "everything" endpoint.
type Client struct {
	http     *xhttp.Client
	baseURL  string
	apiKey   string
	pageSize int
	language string
}

// New creates a NewsAPI client.
func New(baseURL, apiKey string, pageSize int, language string, timeout time.Duration) *Client {
	return &Client{
		http:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: pageSize,
		language: language,
	}
}

var _ domsvc.NewsProvider = (*Client)(nil)

type everythingResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// News returns the most recent headlines mentioning the symbol, newest first.
// Headlines carry a neutral sentiment until a scorer reclassifies them.
func (c *Client) News(ctx context.Context, symbol string) ([]models.NewsItem, error) {
	var resp everythingResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/everything", c.baseURL),
		QueryParams: map[string][]string{
			"q":        {symbol},
			"apiKey":   {c.apiKey},
			"pageSize": {strconv.Itoa(c.pageSize)},
			"language": {c.language},
			"sortBy":   {"publishedAt"},
		},
	}, &resp)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.Status == "error" {
		return nil, fmt.Errorf("newsapi: %s (%s): %w", resp.Message, resp.Code, models.ErrUpstreamUnavailable)
	}

	items := make([]models.NewsItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:       a.Title,
			Source:      a.Source.Name,
			Sentiment:   models.SentimentNeutral,
			PublishedAt: util.ParseTimeDefault(a.PublishedAt, time.Time{}),
		})
	}
	return items, nil
}

func classifyTransportError(err error) error {
	var statusErr *xhttp.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("newsapi: status %d: %w", statusErr.StatusCode, models.ErrUpstreamUnavailable)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("newsapi: timeout: %w", models.ErrUpstreamUnavailable)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("newsapi: %v: %w", urlErr, models.ErrUpstreamUnavailable)
	}
	return fmt.Errorf("newsapi: %v: %w", err, models.ErrMalformedResponse)
}
