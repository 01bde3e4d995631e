package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source kinds understood by SourceConfig.Kind.
const (
	SourceDatabase = "database"
	SourceFiles    = "files"
)

// Database drivers understood by DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultCriticalThreshold is the maintenance ratio above which an item is reported as critical.
const DefaultCriticalThreshold = 0.3

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Source   SourceConfig   `yaml:"source"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogQueries             bool   `yaml:"log_queries"`
}

// SourceConfig selects where the catalog, rental and maintenance tables come from.
type SourceConfig struct {
	Kind            string `yaml:"kind"`
	CatalogPath     string `yaml:"catalog_path"`
	RentalsPath     string `yaml:"rentals_path"`
	MaintenancePath string `yaml:"maintenance_path"`
}

// RefreshConfig controls how often the source tables are reloaded.
type RefreshConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"`
}

// AnalysisConfig holds the knobs of the scoring and analytics layer.
type AnalysisConfig struct {
	Timezone          string         `yaml:"timezone"`
	Location          *time.Location `yaml:"-"`
	CriticalThreshold float64        `yaml:"critical_threshold"`
}

// LoadEnv loads a .env file from the working directory when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: could not read .env file: %v", err)
	}
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	if err := cfg.applyDefaults(); err != nil {
		// Unreachable with the embedded tzdata and the default timezone.
		log.Printf("Warning: %v", err)
	}
	return &cfg
}

func (cfg *Config) applyDefaults() error {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverPostgres
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 3600
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if cfg.Source.Kind == "" {
		cfg.Source.Kind = SourceDatabase
	}

	if cfg.Refresh.IntervalSeconds <= 0 {
		cfg.Refresh.IntervalSeconds = 3600
	}
	cfg.Refresh.Interval = time.Duration(cfg.Refresh.IntervalSeconds) * time.Second

	if cfg.Analysis.CriticalThreshold <= 0 {
		cfg.Analysis.CriticalThreshold = DefaultCriticalThreshold
	}
	if cfg.Analysis.Timezone == "" {
		cfg.Analysis.Timezone = "Asia/Jakarta"
	}
	loc, err := time.LoadLocation(cfg.Analysis.Timezone)
	if err != nil {
		cfg.Analysis.Location = time.UTC
		return fmt.Errorf("invalid analysis.timezone %q: %w", cfg.Analysis.Timezone, err)
	}
	cfg.Analysis.Location = loc
	return nil
}
