package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
directory:
  redis_addr: localhost:6379
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Market.Range != "1mo" || cfg.Market.Interval != "1d" {
		t.Fatalf("market defaults: %+v", cfg.Market)
	}
	if cfg.News.PageSize != 3 || cfg.News.Language != "en" {
		t.Fatalf("news defaults: %+v", cfg.News)
	}
	if cfg.Forecast.NeutralDrift == nil || *cfg.Forecast.NeutralDrift != 0.5 {
		t.Fatalf("neutral drift default: %v", cfg.Forecast.NeutralDrift)
	}
	if cfg.Suggest.Limit != 5 {
		t.Fatalf("suggest limit = %d", cfg.Suggest.Limit)
	}
	if cfg.Bundle.Timeout != 15*time.Second {
		t.Fatalf("bundle timeout = %v", cfg.Bundle.Timeout)
	}
	if cfg.Snapshots.Backend != "none" {
		t.Fatalf("snapshots backend = %q", cfg.Snapshots.Backend)
	}
}

func TestLoadExplicitZeroDriftSurvives(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
forecast:
  neutral_drift: 0
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Forecast.NeutralDrift == nil || *cfg.Forecast.NeutralDrift != 0 {
		t.Fatalf("explicit zero drift lost: %v", cfg.Forecast.NeutralDrift)
	}
}

func TestLoadRejectsUnknownSnapshotBackend(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
snapshots:
  backend: postgres
`))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRejectsKafkaWithoutBrokers(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
snapshots:
  backend: kafka
`))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "env-key")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.News.APIKey != "env-key" {
		t.Fatalf("api key = %q", cfg.News.APIKey)
	}
	if cfg.Directory.RedisAddr != "redis:6380" {
		t.Fatalf("redis addr = %q", cfg.Directory.RedisAddr)
	}
	if len(cfg.Snapshots.Kafka.Brokers) != 2 {
		t.Fatalf("brokers = %v", cfg.Snapshots.Kafka.Brokers)
	}
}
