package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"toolrental-charges/internal/domain"
)

// Catalog sources
const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourceConfig   = "config"
	CatalogSourcePostgres = "postgres"
)

// Cache types
const (
	CacheTypeNone  = "none"
	CacheTypeRedis = "redis"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// CatalogConfig selects where tool rate policies come from
type CatalogConfig struct {
	Source string       `yaml:"source"` // "builtin", "config" or "postgres"
	Table  string       `yaml:"table"`  // rate table for the postgres source
	Tools  []ToolConfig `yaml:"tools"`
}

// ToolConfig is one rate policy entry. DailyCharge is a decimal string such as "1.99".
type ToolConfig struct {
	Code          string `yaml:"code"`
	ToolType      string `yaml:"tool_type"`
	Brand         string `yaml:"brand"`
	DailyCharge   string `yaml:"daily_charge"`
	WeekdayCharge bool   `yaml:"weekday_charge"`
	WeekendCharge bool   `yaml:"weekend_charge"`
	HolidayCharge bool   `yaml:"holiday_charge"`
}

// DatabaseConfig contains the PostgreSQL connection used for the catalog snapshot
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// CacheConfig contains the optional charge-day cache settings
type CacheConfig struct {
	Type       string `yaml:"type"` // "none" or "redis"
	Addr       string `yaml:"addr"`
	Prefix     string `yaml:"prefix"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Default returns a configuration that needs no file: built-in catalog, no cache
func Default() *Config {
	cfg := &Config{}
	cfg.overrideWithEnv()
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if val := os.Getenv("CATALOG_SOURCE"); val != "" {
		c.Catalog.Source = val
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Database.URL = val
	}

	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Cache.Addr = val
		if c.Cache.Type == "" {
			c.Cache.Type = CacheTypeRedis
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Catalog.Source == "" {
		if len(c.Catalog.Tools) > 0 {
			c.Catalog.Source = CatalogSourceConfig
		} else {
			c.Catalog.Source = CatalogSourceBuiltin
		}
	}
	if c.Cache.Type == "" {
		c.Cache.Type = CacheTypeNone
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "charge-days:"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 3600
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Catalog.Source {
	case CatalogSourceBuiltin:
	case CatalogSourceConfig:
		if len(c.Catalog.Tools) == 0 {
			return fmt.Errorf("catalog source %q requires at least one tool", c.Catalog.Source)
		}
		if _, err := c.Catalog.Policies(); err != nil {
			return err
		}
	case CatalogSourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database url is required for catalog source %q", c.Catalog.Source)
		}
	default:
		return fmt.Errorf("unknown catalog source: %q", c.Catalog.Source)
	}

	switch c.Cache.Type {
	case CacheTypeNone:
	case CacheTypeRedis:
		if c.Cache.Addr == "" {
			return fmt.Errorf("cache addr is required for redis cache")
		}
		if c.Cache.TTLSeconds < 0 {
			return fmt.Errorf("invalid cache ttl: %d", c.Cache.TTLSeconds)
		}
	default:
		return fmt.Errorf("unknown cache type: %q", c.Cache.Type)
	}

	return nil
}

// Policies converts the configured tool entries into rate policies
func (c CatalogConfig) Policies() ([]domain.ToolRatePolicy, error) {
	policies := make([]domain.ToolRatePolicy, 0, len(c.Tools))
	for _, t := range c.Tools {
		code := strings.TrimSpace(t.Code)
		if code == "" {
			return nil, fmt.Errorf("tool code is required")
		}
		charge, err := decimal.NewFromString(t.DailyCharge)
		if err != nil {
			return nil, fmt.Errorf("invalid daily charge for tool %s: %w", code, err)
		}
		policies = append(policies, domain.ToolRatePolicy{
			Code:          code,
			ToolType:      t.ToolType,
			Brand:         t.Brand,
			DailyCharge:   charge,
			WeekdayCharge: t.WeekdayCharge,
			WeekendCharge: t.WeekendCharge,
			HolidayCharge: t.HolidayCharge,
		})
	}
	return policies, nil
}

// CacheTTL returns the charge-day cache entry lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
