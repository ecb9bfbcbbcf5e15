package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/cache"
	applogger "StockPulse/pkg/logger"
)

const companyKeyPrefix = "company:"

// CompanyDirectory persists company metadata keyed by upper-cased symbol in
// the cache backend. Records never expire; the directory is the system of
// record for names and logos discovered from upstream lookups.
type CompanyDirectory struct {
	cache cache.Service
	l     *applogger.Logger
}

func NewCompanyDirectory(c cache.Service, l *applogger.Logger) *CompanyDirectory {
	return &CompanyDirectory{cache: c, l: l}
}

var _ domrepo.CompanyDirectory = (*CompanyDirectory)(nil)

func companyKey(symbol string) string {
	return companyKeyPrefix + strings.ToUpper(strings.TrimSpace(symbol))
}

// Get returns the record for a symbol. The boolean reports whether the
// record exists; a missing record is not an error.
func (d *CompanyDirectory) Get(ctx context.Context, symbol string) (models.CompanyRecord, bool, error) {
	rec, err := cache.GetTyped[models.CompanyRecord](ctx, d.cache, companyKey(symbol))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return models.CompanyRecord{}, false, nil
		}
		return models.CompanyRecord{}, false, fmt.Errorf("directory get %s: %v: %w", symbol, err, models.ErrCacheUnavailable)
	}
	return rec, true, nil
}

// Upsert merges the incoming record into any existing one. Existing non-empty
// fields win, except that an incoming name replaces a bare-symbol name and an
// incoming logo replaces an empty or placeholder logo. Identical merges skip
// the write.
func (d *CompanyDirectory) Upsert(ctx context.Context, rec models.CompanyRecord) error {
	rec.Symbol = strings.ToUpper(strings.TrimSpace(rec.Symbol))
	if rec.Symbol == "" {
		return errors.New("directory upsert: empty symbol")
	}

	existing, found, err := d.Get(ctx, rec.Symbol)
	if err != nil {
		return err
	}

	merged := rec
	if found {
		merged = mergeRecords(existing, rec)
		if merged == existing {
			return nil
		}
	}

	if err := d.cache.Set(ctx, companyKey(rec.Symbol), merged, 0); err != nil {
		return fmt.Errorf("directory upsert %s: %v: %w", rec.Symbol, err, models.ErrCacheUnavailable)
	}
	if d.l != nil {
		d.l.Debug("directory record written",
			applogger.String("symbol", merged.Symbol),
			applogger.String("company_name", merged.CompanyName))
	}
	return nil
}

// FindByPrefix returns up to limit records whose symbol starts with the
// upper-cased prefix, sorted by symbol ascending.
func (d *CompanyDirectory) FindByPrefix(ctx context.Context, prefix string, limit int) ([]models.CompanyRecord, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return nil, nil
	}

	keys, err := d.cache.Keys(ctx, companyKeyPrefix+prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("directory scan %s: %v: %w", prefix, err, models.ErrCacheUnavailable)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	byKey, err := cache.MGetTyped[models.CompanyRecord](ctx, d.cache, keys...)
	if err != nil {
		return nil, fmt.Errorf("directory fetch %s: %v: %w", prefix, err, models.ErrCacheUnavailable)
	}

	records := make([]models.CompanyRecord, 0, len(byKey))
	for _, rec := range byKey {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Symbol < records[j].Symbol })

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func mergeRecords(existing, incoming models.CompanyRecord) models.CompanyRecord {
	merged := existing
	// A record created before the provider reported a name carries the bare
	// symbol; treat that like an empty name so a real one can land later.
	if incoming.CompanyName != "" && (merged.CompanyName == "" || merged.CompanyName == merged.Symbol) {
		merged.CompanyName = incoming.CompanyName
	}
	if incoming.LogoURL != "" && (merged.LogoURL == "" || isPlaceholderLogo(merged.LogoURL)) {
		merged.LogoURL = incoming.LogoURL
	}
	return merged
}

func isPlaceholderLogo(u string) bool {
	return strings.Contains(u, "ui-avatars.com")
}
