package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	bundlesTotal     *prometheus.CounterVec
	upstreamErrors   *prometheus.CounterVec
	directoryLookups *prometheus.CounterVec
	logoResolutions  *prometheus.CounterVec
	lastPrice        *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		bundlesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_bundles_total",
				Help: "Total number of bundle requests by outcome",
			},
			[]string{"outcome"},
		),
		upstreamErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_upstream_errors_total",
				Help: "Total number of upstream provider errors",
			},
			[]string{"provider", "kind"},
		),
		directoryLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_directory_lookups_total",
				Help: "Symbol directory lookups by result",
			},
			[]string{"result"},
		),
		logoResolutions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_logo_resolutions_total",
				Help: "Logo resolutions by winning chain step",
			},
			[]string{"step"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpulse_last_price",
				Help: "Last served price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordBundle records one bundle request outcome (ok, degraded, error).
func (r *Recorder) RecordBundle(outcome string) {
	r.bundlesTotal.WithLabelValues(outcome).Inc()
}

// RecordUpstreamError records a provider failure by error kind.
func (r *Recorder) RecordUpstreamError(provider, kind string) {
	r.upstreamErrors.WithLabelValues(provider, kind).Inc()
}

// RecordDirectoryLookup records a directory lookup (hit, miss, error).
func (r *Recorder) RecordDirectoryLookup(result string) {
	r.directoryLookups.WithLabelValues(result).Inc()
}

// RecordLogoResolution records which chain step produced the logo.
func (r *Recorder) RecordLogoResolution(step string) {
	r.logoResolutions.WithLabelValues(step).Inc()
}

// RecordLastPrice records the last served price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
