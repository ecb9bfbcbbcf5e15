package logo

import (
	"context"
	"testing"

	"StockPulse/pkg/logger"
)

type fakeProber struct {
	reachable map[string]bool
	probed    []string
}

func (p *fakeProber) Reachable(_ context.Context, url string) bool {
	p.probed = append(p.probed, url)
	return p.reachable[url]
}

func newTestResolver(p Prober) *Resolver {
	log, _ := logger.New(&logger.Config{Level: "error", Format: "json"})
	return NewResolver(log, p, nil,
		"https://logo.clearbit.com",
		"https://ui-avatars.com/api/?name=%s&background=1a1a2e&color=fff",
	)
}

func TestResolveLogoWellKnownSkipsProbe(t *testing.T) {
	p := &fakeProber{}
	r := newTestResolver(p)

	got := r.ResolveLogo(context.Background(), "aapl", "Apple Inc.", "https://www.apple.com")
	if got != "https://logo.clearbit.com/apple.com" {
		t.Fatalf("url = %q", got)
	}
	if len(p.probed) != 0 {
		t.Fatalf("expected no probes, got %v", p.probed)
	}
}

func TestResolveLogoWebsiteDomain(t *testing.T) {
	p := &fakeProber{reachable: map[string]bool{
		"https://logo.clearbit.com/shopify.com": true,
	}}
	r := newTestResolver(p)

	got := r.ResolveLogo(context.Background(), "SHOP", "Shopify Inc.", "https://www.shopify.com/about")
	if got != "https://logo.clearbit.com/shopify.com" {
		t.Fatalf("url = %q", got)
	}
}

func TestResolveLogoNameSlugFallback(t *testing.T) {
	p := &fakeProber{reachable: map[string]bool{
		"https://logo.clearbit.com/palantirtechnologies.com": true,
	}}
	r := newTestResolver(p)

	got := r.ResolveLogo(context.Background(), "PLTR", "Palantir Technologies Inc.", "")
	if got != "https://logo.clearbit.com/palantirtechnologies.com" {
		t.Fatalf("url = %q", got)
	}
}

func TestResolveLogoPlaceholder(t *testing.T) {
	p := &fakeProber{}
	r := newTestResolver(p)

	got := r.ResolveLogo(context.Background(), "XYZ", "Xyz Holdings Corp", "https://xyz.example")
	want := "https://ui-avatars.com/api/?name=XYZ&background=1a1a2e&color=fff"
	if got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
	if len(p.probed) != 2 {
		t.Fatalf("expected 2 probes before placeholder, got %v", p.probed)
	}
}

func TestCompanySlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Apple Inc.", "apple"},
		{"Palantir Technologies Inc.", "palantirtechnologies"},
		{"Unity Software Inc", "unitysoftware"},
		{"Barclays PLC", "barclays"},
		{"The Coca-Cola Co", "thecocacola"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := companySlug(tc.name); got != tc.want {
			t.Errorf("companySlug(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestHostFromURL(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://www.apple.com", "apple.com"},
		{"http://investor.shopify.com/home", "investor.shopify.com"},
		{"apple.com", "apple.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := hostFromURL(tc.raw); got != tc.want {
			t.Errorf("hostFromURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
