package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	FeedURL      string        `env:"FEED_URL, default=https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/2.5_day.csv"`
	OutputPath   string        `env:"OUTPUT_PATH, default=earthquakes.png"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT, default=60s"`

	// Natural Earth 110m ("low" resolution) basemap layers. Either an
	// http(s) URL or a local file path.
	CoastlineURL string `env:"COASTLINE_URL, default=https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_110m_coastline.geojson"`
	BordersURL   string `env:"BORDERS_URL, default=https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_110m_admin_0_boundary_lines_land.geojson"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=json"`

	// MetricsTextfile, when set, receives the run's metrics in the
	// node_exporter textfile collector format.
	MetricsTextfile string `env:"METRICS_TEXTFILE"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg, err := Process()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Process reads environment variables without validating them, so callers
// can apply overrides before calling Validate.
func Process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that envconfig cannot express as tags.
func (c *Config) Validate() error {
	if err := validateHTTPURL(c.FeedURL); err != nil {
		return fmt.Errorf("invalid FEED_URL: %w", err)
	}
	if c.OutputPath == "" {
		return errors.New("OUTPUT_PATH is required")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT must be positive")
	}
	if c.CoastlineURL == "" {
		return errors.New("COASTLINE_URL is required")
	}
	if c.BordersURL == "" {
		return errors.New("BORDERS_URL is required")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
