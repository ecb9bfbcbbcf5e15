package logo

import (
	"context"
	"net/http"
	"time"
)

// Prober answers whether a candidate logo URL serves anything.
type Prober interface {
	Reachable(ctx context.Context, url string) bool
}

// HeadProber probes with an HTTP HEAD request; any 2xx or 3xx status counts
// as reachable.
type HeadProber struct {
	client *http.Client
}

// NewHeadProber creates a HeadProber with the given per-probe timeout.
func NewHeadProber(timeout time.Duration) *HeadProber {
	return &HeadProber{
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HeadProber) Reachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
