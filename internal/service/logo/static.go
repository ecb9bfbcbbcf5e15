package logo

// wellKnownLogos maps widely traded symbols straight to a logo URL so the
// resolver skips network probes for them.
var wellKnownLogos = map[string]string{
	"AAPL":  "https://logo.clearbit.com/apple.com",
	"MSFT":  "https://logo.clearbit.com/microsoft.com",
	"GOOGL": "https://logo.clearbit.com/google.com",
	"AMZN":  "https://logo.clearbit.com/amazon.com",
	"META":  "https://logo.clearbit.com/meta.com",
	"TSLA":  "https://logo.clearbit.com/tesla.com",
	"NVDA":  "https://logo.clearbit.com/nvidia.com",
	"NFLX":  "https://logo.clearbit.com/netflix.com",
}

func wellKnownLogo(symbol string) (string, bool) {
	u, ok := wellKnownLogos[symbol]
	return u, ok
}
