package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	pkgch "StockPulse/pkg/clickhouse"
	applogger "StockPulse/pkg/logger"
)

// CHSnapshotSink appends quote snapshots to a ClickHouse table for offline
// analysis. Writes are best-effort from the caller's point of view.
type CHSnapshotSink struct {
	db    *sql.DB
	ch    *pkgch.Client
	table string
	l     *applogger.Logger
}

func NewCHSnapshotSink(ch *pkgch.Client, table string, l *applogger.Logger) *CHSnapshotSink {
	return &CHSnapshotSink{db: ch.DB(), ch: ch, table: table, l: l}
}

var _ domrepo.SnapshotSink = (*CHSnapshotSink)(nil)

func (s *CHSnapshotSink) Record(ctx context.Context, snap *models.QuoteSnapshot) error {
	start := time.Now()
	q := fmt.Sprintf(
		"INSERT INTO %s (symbol, ts, price, price_change, percent_change) VALUES (?, ?, ?, ?, ?)",
		s.table,
	)

	if _, err := s.db.ExecContext(ctx, q, snap.Symbol, snap.Timestamp, snap.Price, snap.PriceChange, snap.PercentChange); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse snapshot insert error",
				applogger.String("symbol", snap.Symbol),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("snapshot insert: %w", err)
	}

	if s.l != nil {
		s.l.Debug("snapshot recorded",
			applogger.String("symbol", snap.Symbol),
			applogger.Duration("took", time.Since(start)),
		)
	}
	return nil
}

func (s *CHSnapshotSink) Close() error {
	return s.ch.Close()
}
