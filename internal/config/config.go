// Package config loads the landing server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Sink names accepted by LANDING_SINK.
const (
	SinkStub     = "stub"
	SinkMemory   = "memory"
	SinkPostgres = "postgres"
)

// Config captures runtime settings for the landing server.
type Config struct {
	ListenAddr string `env:"LANDING_LISTEN_ADDR" envDefault:":4173"`
	AssetsDir  string `env:"LANDING_ASSETS_DIR" envDefault:"ui"`
	SiteName   string `env:"LANDING_SITE_NAME" envDefault:"BuddyBreak"`
	BaseURL    string `env:"LANDING_BASE_URL"`

	LogDir   string `env:"LANDING_LOG_DIR"`
	LogLevel string `env:"LANDING_LOG_LEVEL" envDefault:"info"`

	Sink              string        `env:"LANDING_SINK" envDefault:"stub"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	DBConnectTimeout  time.Duration `env:"LANDING_DB_CONNECT_TIMEOUT" envDefault:"30s"`
	SubmitTimeout     time.Duration `env:"LANDING_SUBMIT_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"LANDING_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"LANDING_READ_HEADER_TIMEOUT" envDefault:"5s"`
	EnableWASM        bool          `env:"LANDING_ENABLE_WASM" envDefault:"true"`
	MetricsEnabled    bool          `env:"LANDING_METRICS_ENABLED" envDefault:"true"`
}

// Load reads an optional dotenv file and then the process environment. Variables
// already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile = strings.TrimSpace(envFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize trims values and prefixes a bare port with a colon.
func (c *Config) Normalize() {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr != "" && !strings.Contains(c.ListenAddr, ":") {
		c.ListenAddr = ":" + c.ListenAddr
	}
	c.Sink = strings.ToLower(strings.TrimSpace(c.Sink))
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
}

// Validate reports configuration that cannot be served.
func (c Config) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	switch c.Sink {
	case SinkStub, SinkMemory:
	case SinkPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown sink %q", c.Sink))
	}
	if c.SubmitTimeout <= 0 {
		errs = append(errs, errors.New("submit timeout must be positive"))
	}
	return errors.Join(errs...)
}
