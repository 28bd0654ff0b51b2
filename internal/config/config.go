package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lightbnb/lightbnb/pkg/database"
	pkgconfig "github.com/lightbnb/lightbnb/pkg/config"
	"github.com/lightbnb/lightbnb/pkg/tracing"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	defaultJWTSecret = "change-this-to-a-secure-secret"
)

// Config holds all configuration for the LightBnB service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"3000"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"vagrant"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"123"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"lightbnb"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINS" envDefault:"30"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINS" envDefault:"5"`
	SlowQueryThresholdMS  int   `env:"SLOW_QUERY_THRESHOLD_MS" envDefault:"200"`

	// Property search
	PropertySearchLegacyWhere bool   `env:"PROPERTY_SEARCH_LEGACY_WHERE" envDefault:"false"`
	PropertyStore             string `env:"PROPERTY_STORE" envDefault:"postgres"`
	DefaultSearchLimit        int    `env:"DEFAULT_SEARCH_LIMIT" envDefault:"20"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	// Kafka; empty disables event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	Tracing tracing.Config

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load lightbnb config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port: %d", c.HTTPPort))
	}
	if c.PropertyStore != StorePostgres && c.PropertyStore != StoreMemory {
		errs = append(errs, fmt.Errorf("PROPERTY_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.PropertyStore))
	}
	if c.DefaultSearchLimit < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_SEARCH_LIMIT must be positive, got %d", c.DefaultSearchLimit))
	}
	if c.DBMaxConns < 1 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("invalid pool size: min %d, max %d", c.DBMinConns, c.DBMaxConns))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.JWTExpiry))
	}

	if c.Environment != "development" {
		if c.JWTSecret == defaultJWTSecret {
			errs = append(errs, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", c.Environment))
		} else if len(c.JWTSecret) < 32 {
			errs = append(errs, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(c.JWTSecret)))
		}
	}

	return errors.Join(errs...)
}

// Postgres returns the connection settings for the pool.
func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// SlowQueryThreshold is the duration above which queries are logged.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryThresholdMS) * time.Millisecond
}

// EventsEnabled reports whether Kafka brokers are configured.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
