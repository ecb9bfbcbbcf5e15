package repository

import (
	"context"

	"StockPulse/internal/domain/models"
)

// CompanyDirectory is the persistent symbol directory. Get is a pure read;
// Upsert is idempotent and merges rather than replaces, so a writer never
// clears fields it did not set.
type CompanyDirectory interface {
	Get(ctx context.Context, symbol string) (models.CompanyRecord, bool, error)
	Upsert(ctx context.Context, rec models.CompanyRecord) error
	FindByPrefix(ctx context.Context, prefix string, limit int) ([]models.CompanyRecord, error)
}

// SnapshotSink receives best-effort quote snapshots after a bundle is served.
type SnapshotSink interface {
	Record(ctx context.Context, s *models.QuoteSnapshot) error
	Close() error
}

type Metrics interface {
	RecordBundle(outcome string)
	RecordUpstreamError(provider, kind string)
	RecordDirectoryLookup(result string)
	RecordLogoResolution(step string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
