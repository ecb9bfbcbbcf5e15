package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Market struct {
		ChartURL        string        `yaml:"chart_url"`
		AutocompleteURL string        `yaml:"autocomplete_url"`
		Range           string        `yaml:"range"`
		Interval        string        `yaml:"interval"`
		UserAgent       string        `yaml:"user_agent"`
		Timeout         time.Duration `yaml:"timeout"`
	} `yaml:"market"`
	News struct {
		BaseURL  string        `yaml:"base_url"`
		APIKey   string        `yaml:"api_key"`
		PageSize int           `yaml:"page_size"`
		Language string        `yaml:"language"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"news"`
	Logo struct {
		DomainServiceURL string        `yaml:"domain_service_url"`
		PlaceholderURL   string        `yaml:"placeholder_url"`
		ProbeTimeout     time.Duration `yaml:"probe_timeout"`
	} `yaml:"logo"`
	Directory struct {
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		Prefix        string `yaml:"prefix"`
	} `yaml:"directory"`
	Forecast struct {
		// NeutralDrift is the target-price multiplier applied on a neutral
		// call. Pointer so an explicit 0 is distinguishable from unset.
		NeutralDrift *float64 `yaml:"neutral_drift"`
		Timeframe    string   `yaml:"timeframe"`
	} `yaml:"forecast"`
	Suggest struct {
		Limit int `yaml:"limit"`
	} `yaml:"suggest"`
	Bundle struct {
		Timeout time.Duration `yaml:"timeout"`
		// CacheTTL bounds reuse of a served bundle. Zero disables the cache.
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"bundle"`
	Snapshots struct {
		Backend    string `yaml:"backend"` // none, clickhouse or kafka
		ClickHouse struct {
			Host         string        `yaml:"host"`
			Port         int           `yaml:"port"`
			Database     string        `yaml:"database"`
			User         string        `yaml:"user"`
			Password     string        `yaml:"password"`
			DialTimeout  time.Duration `yaml:"dial_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"clickhouse"`
		Kafka struct {
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic"`
			RequiredAcks int           `yaml:"required_acks"`
			Compression  string        `yaml:"compression"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"kafka"`
	} `yaml:"snapshots"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.News.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Directory.RedisAddr = v
	}
	if v := os.Getenv("SNAPSHOT_BACKEND"); v != "" {
		c.Snapshots.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Snapshots.Kafka.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Market.ChartURL == "" {
		c.Market.ChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.Market.AutocompleteURL == "" {
		c.Market.AutocompleteURL = "https://query2.finance.yahoo.com/v6/finance/autocomplete"
	}
	if c.Market.Range == "" {
		c.Market.Range = "1mo"
	}
	if c.Market.Interval == "" {
		c.Market.Interval = "1d"
	}
	if c.Market.UserAgent == "" {
		c.Market.UserAgent = "Mozilla/5.0"
	}
	if c.Market.Timeout <= 0 {
		c.Market.Timeout = 10 * time.Second
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org/v2"
	}
	if c.News.PageSize <= 0 {
		c.News.PageSize = 3
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.News.Timeout <= 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.Logo.DomainServiceURL == "" {
		c.Logo.DomainServiceURL = "https://logo.clearbit.com"
	}
	if c.Logo.PlaceholderURL == "" {
		c.Logo.PlaceholderURL = "https://ui-avatars.com/api/?name=%s&background=1a1a2e&color=fff"
	}
	if c.Logo.ProbeTimeout <= 0 {
		c.Logo.ProbeTimeout = 5 * time.Second
	}
	if c.Directory.Prefix == "" {
		c.Directory.Prefix = "stockpulse"
	}
	if c.Forecast.NeutralDrift == nil {
		drift := 0.5
		c.Forecast.NeutralDrift = &drift
	}
	if c.Forecast.Timeframe == "" {
		c.Forecast.Timeframe = "24h"
	}
	if c.Suggest.Limit <= 0 {
		c.Suggest.Limit = 5
	}
	if c.Bundle.Timeout <= 0 {
		c.Bundle.Timeout = 15 * time.Second
	}
	if c.Bundle.CacheTTL < 0 {
		c.Bundle.CacheTTL = 0
	}
	if c.Snapshots.Backend == "" {
		c.Snapshots.Backend = "none"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Snapshots.Backend {
	case "none", "clickhouse", "kafka":
	default:
		return fmt.Errorf("snapshots.backend must be 'none', 'clickhouse' or 'kafka', got '%s'", c.Snapshots.Backend)
	}
	if c.Snapshots.Backend == "kafka" && len(c.Snapshots.Kafka.Brokers) == 0 {
		return fmt.Errorf("snapshots.kafka.brokers cannot be empty")
	}
	if c.Snapshots.Backend == "clickhouse" && c.Snapshots.ClickHouse.Host == "" {
		return fmt.Errorf("snapshots.clickhouse.host is required")
	}
	if c.Directory.RedisAddr == "" {
		return fmt.Errorf("directory.redis_addr is required")
	}
	return nil
}
