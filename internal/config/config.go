package config

import (
	"fmt"
	"time"
)

// Data sources the portal can read from.
const (
	DataSourceMemory   = "memory"
	DataSourceFixtures = "fixtures"
	DataSourceSQLite   = "sqlite"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	DataSource   string `mapstructure:"data_source" yaml:"data_source"`
	FixturesPath string `mapstructure:"fixtures_path" yaml:"fixtures_path"`
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	JWTSecret    string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer    string        `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience  string        `mapstructure:"jwt_audience" yaml:"jwt_audience"`
	TokenTTL     time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
	DemoPassword string        `mapstructure:"demo_password" yaml:"demo_password"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		DataSource:        DataSourceMemory,
		FixturesPath:      "fixtures.yaml",
		DatabasePath:      "portal.db",
		JWTSecret:         "change-me",
		JWTIssuer:         "schoolportal",
		JWTAudience:       "schoolportal-web",
		TokenTTL:          24 * time.Hour,
		DemoPassword:      "password",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.DataSource != "" {
		c.DataSource = other.DataSource
	}
	if other.FixturesPath != "" {
		c.FixturesPath = other.FixturesPath
	}
	if other.DatabasePath != "" {
		c.DatabasePath = other.DatabasePath
	}
	if other.JWTSecret != "" {
		c.JWTSecret = other.JWTSecret
	}
	if other.JWTIssuer != "" {
		c.JWTIssuer = other.JWTIssuer
	}
	if other.JWTAudience != "" {
		c.JWTAudience = other.JWTAudience
	}
	if other.TokenTTL != 0 {
		c.TokenTTL = other.TokenTTL
	}
	if other.DemoPassword != "" {
		c.DemoPassword = other.DemoPassword
	}
}

// Validate reports configuration that cannot be served.
func (c Config) Validate() error {
	switch c.DataSource {
	case DataSourceMemory:
	case DataSourceFixtures:
		if c.FixturesPath == "" {
			return fmt.Errorf("fixtures_path is required for data source %q", c.DataSource)
		}
	case DataSourceSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database_path is required for data source %q", c.DataSource)
		}
	default:
		return fmt.Errorf("unknown data source %q", c.DataSource)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	if c.DemoPassword == "" {
		return fmt.Errorf("demo_password must not be empty")
	}
	return nil
}
