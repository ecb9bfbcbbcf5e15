package usecase

import (
	"context"
	"strings"
	"sync/atomic"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	domsvc "StockPulse/internal/domain/service"
	applogger "StockPulse/pkg/logger"
)

// SuggestUseCase serves typeahead symbol suggestions from the autocomplete
// provider, falling back to the local directory when the provider is down.
type SuggestUseCase struct {
	provider  domsvc.SuggestProvider
	directory domrepo.CompanyDirectory
	logger    *applogger.Logger
	limit     int
}

func NewSuggestUseCase(provider domsvc.SuggestProvider, directory domrepo.CompanyDirectory, l *applogger.Logger, limit int) *SuggestUseCase {
	if limit <= 0 {
		limit = 5
	}
	return &SuggestUseCase{provider: provider, directory: directory, logger: l, limit: limit}
}

// Suggest returns up to the configured number of entries for the query. A
// blank query returns an empty list without touching the upstream.
func (uc *SuggestUseCase) Suggest(ctx context.Context, query string) ([]models.SuggestionEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SuggestionEntry{}, nil
	}

	entries, err := uc.provider.Autocomplete(ctx, query)
	if err != nil {
		uc.logger.Warn("autocomplete failed, falling back to directory",
			applogger.String("query", query),
			applogger.Error(err))
		return uc.fromDirectory(ctx, query)
	}

	if len(entries) > uc.limit {
		entries = entries[:uc.limit]
	}
	if entries == nil {
		entries = []models.SuggestionEntry{}
	}
	return entries, nil
}

func (uc *SuggestUseCase) fromDirectory(ctx context.Context, query string) ([]models.SuggestionEntry, error) {
	records, err := uc.directory.FindByPrefix(ctx, query, uc.limit)
	if err != nil {
		return nil, err
	}
	entries := make([]models.SuggestionEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, models.SuggestionEntry{Symbol: rec.Symbol, CompanyName: rec.CompanyName})
	}
	return entries, nil
}

// Session orders in-flight requests from one client so stale responses can
// be discarded. Next issues a sequence id; Observe records an id issued
// elsewhere (a client-supplied seq); Accept reports whether a response
// carrying that id is still the freshest one seen.
type Session struct {
	seq atomic.Int64
}

func (s *Session) Next() int64 {
	return s.seq.Add(1)
}

func (s *Session) Observe(id int64) {
	for {
		cur := s.seq.Load()
		if id <= cur || s.seq.CompareAndSwap(cur, id) {
			return
		}
	}
}

func (s *Session) Accept(id int64) bool {
	return id >= s.seq.Load()
}
