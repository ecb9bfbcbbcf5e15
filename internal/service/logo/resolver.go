package logo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"StockPulse/internal/domain/repository"
	domsvc "StockPulse/internal/domain/service"
	"StockPulse/pkg/logger"
)

// Resolver picks a logo URL by walking a fixed strategy chain. Probed
// strategies are skipped when the candidate URL does not answer; the
// placeholder at the end always wins, so ResolveLogo never fails.
type Resolver struct {
	logger           *logger.Logger
	prober           Prober
	metrics          repository.Metrics
	domainServiceURL string
	placeholderURL   string
}

// NewResolver creates a Resolver. domainServiceURL is the base of a
// domain-to-logo service (e.g. Clearbit); placeholderURL is a format string
// receiving the symbol.
func NewResolver(log *logger.Logger, prober Prober, metrics repository.Metrics, domainServiceURL, placeholderURL string) *Resolver {
	return &Resolver{
		logger:           log,
		prober:           prober,
		metrics:          metrics,
		domainServiceURL: strings.TrimRight(domainServiceURL, "/"),
		placeholderURL:   placeholderURL,
	}
}

var _ domsvc.LogoResolver = (*Resolver)(nil)

// ResolveLogo walks the chain: known-symbol table, company website domain,
// slugged company name, placeholder.
func (r *Resolver) ResolveLogo(ctx context.Context, symbol, companyName, websiteURL string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if u, ok := wellKnownLogo(symbol); ok {
		r.record("well_known")
		return u
	}

	if host := hostFromURL(websiteURL); host != "" {
		candidate := fmt.Sprintf("%s/%s", r.domainServiceURL, host)
		if r.prober.Reachable(ctx, candidate) {
			r.record("website_domain")
			return candidate
		}
		r.logger.Debug("logo candidate unreachable",
			logger.String("symbol", symbol),
			logger.String("url", candidate))
	}

	if slug := companySlug(companyName); slug != "" {
		candidate := fmt.Sprintf("%s/%s.com", r.domainServiceURL, slug)
		if r.prober.Reachable(ctx, candidate) {
			r.record("name_slug")
			return candidate
		}
		r.logger.Debug("logo candidate unreachable",
			logger.String("symbol", symbol),
			logger.String("url", candidate))
	}

	r.record("placeholder")
	return fmt.Sprintf(r.placeholderURL, url.QueryEscape(symbol))
}

func (r *Resolver) record(step string) {
	if r.metrics != nil {
		r.metrics.RecordLogoResolution(step)
	}
}

// hostFromURL extracts the bare hostname from a website URL, dropping any
// leading "www.". Returns "" when the URL is empty or unparseable.
func hostFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

var corporateSuffixes = []string{
	"corporation", "incorporated", "limited", "inc", "corp", "ltd", "plc", "co",
}

// companySlug lowercases the company name, strips corporate suffixes and
// non-alphanumeric characters, and returns the result for use as a domain
// label. Returns "" when nothing usable remains.
func companySlug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.'
	})
	kept := words[:0]
	for _, w := range words {
		if isCorporateSuffix(w) {
			continue
		}
		kept = append(kept, w)
	}

	var b strings.Builder
	for _, w := range kept {
		for _, r := range w {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func isCorporateSuffix(word string) bool {
	for _, s := range corporateSuffixes {
		if word == s {
			return true
		}
	}
	return false
}
