package repository

import (
	"context"
	"fmt"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
)

// KafkaSnapshotSink publishes quote snapshots to a Kafka topic, keyed by
// symbol so a partition sees each symbol's snapshots in order.
type KafkaSnapshotSink struct {
	producer *pkgkafka.Producer
	topic    string
	l        *applogger.Logger
}

func NewKafkaSnapshotSink(p *pkgkafka.Producer, topic string, l *applogger.Logger) *KafkaSnapshotSink {
	return &KafkaSnapshotSink{producer: p, topic: topic, l: l}
}

var _ domrepo.SnapshotSink = (*KafkaSnapshotSink)(nil)

func (s *KafkaSnapshotSink) Record(ctx context.Context, snap *models.QuoteSnapshot) error {
	if err := s.producer.Publish(ctx, s.topic, []byte(snap.Symbol), snap); err != nil {
		if s.l != nil {
			s.l.Error("kafka snapshot publish error",
				applogger.String("symbol", snap.Symbol),
				applogger.String("topic", s.topic),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("snapshot publish: %w", err)
	}
	return nil
}

func (s *KafkaSnapshotSink) Close() error {
	return s.producer.Close()
}

// NoopSnapshotSink discards snapshots. Used when no backend is configured.
type NoopSnapshotSink struct{}

var _ domrepo.SnapshotSink = (*NoopSnapshotSink)(nil)

func (NoopSnapshotSink) Record(context.Context, *models.QuoteSnapshot) error { return nil }
func (NoopSnapshotSink) Close() error                                        { return nil }
