package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jaideep-27/shophub/internal/cart"
)

// Catalog sources
const (
	SourceMemory = "memory"
	SourceFile   = "file"
	SourceHTTP   = "http"
)

// Config holds all configuration for the application
// Following 12-factor app principles, environment variables always win. An
// optional YAML file named by CONFIG_FILE supplies the values they override.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Pricing  cart.Policy
	Session  SessionConfig
	CORS     CORSConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	RequestTimeout  int
}

type CatalogConfig struct {
	Source  string   // memory, file or http
	Files   []string // paths or URLs for the file source
	BaseURL string   // REST catalog root for the http source
	Timeout time.Duration
}

type SessionConfig struct {
	TTL           time.Duration // zero disables eviction
	SweepInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// fileConfig mirrors the YAML layout. Money and durations are kept as strings
// and parsed once environment overrides are applied.
type fileConfig struct {
	Server struct {
		Port            string `yaml:"port"`
		Host            string `yaml:"host"`
		ReadTimeout     int    `yaml:"read_timeout"`
		WriteTimeout    int    `yaml:"write_timeout"`
		ShutdownTimeout int    `yaml:"shutdown_timeout"`
		RequestTimeout  int    `yaml:"request_timeout"`
	} `yaml:"server"`
	Catalog struct {
		Source  string   `yaml:"source"`
		Files   []string `yaml:"files"`
		BaseURL string   `yaml:"base_url"`
		Timeout string   `yaml:"timeout"`
	} `yaml:"catalog"`
	Pricing struct {
		FreeShippingThreshold string `yaml:"free_shipping_threshold"`
		FlatShipping          string `yaml:"flat_shipping"`
		TaxRate               string `yaml:"tax_rate"`
	} `yaml:"pricing"`
	Session struct {
		TTL           string `yaml:"ttl"`
		SweepInterval string `yaml:"sweep_interval"`
	} `yaml:"session"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	LogLevel string `yaml:"log_level"`
}

func defaults() fileConfig {
	var f fileConfig
	f.Server.Port = "8080"
	f.Server.Host = "0.0.0.0"
	f.Server.ReadTimeout = 15
	f.Server.WriteTimeout = 15
	f.Server.ShutdownTimeout = 30
	f.Server.RequestTimeout = 60
	f.Catalog.Source = SourceMemory
	f.Catalog.BaseURL = "https://fakestoreapi.com"
	f.Catalog.Timeout = "10s"
	f.Pricing.FreeShippingThreshold = "100"
	f.Pricing.FlatShipping = "10"
	f.Pricing.TaxRate = "0.10"
	f.Session.TTL = "30m"
	f.Session.SweepInterval = "1m"
	f.CORS.AllowedOrigins = []string{"*"}
	f.LogLevel = "info"
	return f
}

// Load reads configuration from CONFIG_FILE, if set, and environment variables
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	base := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, &base); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", base.Server.Port),
			Host:            getEnv("HOST", base.Server.Host),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", base.Server.ReadTimeout),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", base.Server.WriteTimeout),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", base.Server.ShutdownTimeout),
			RequestTimeout:  getEnvAsInt("REQUEST_TIMEOUT", base.Server.RequestTimeout),
		},
		Catalog: CatalogConfig{
			Source:  strings.ToLower(getEnv("CATALOG_SOURCE", base.Catalog.Source)),
			Files:   getEnvAsSlice("CATALOG_FILES", base.Catalog.Files),
			BaseURL: getEnv("CATALOG_BASE_URL", base.Catalog.BaseURL),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", base.CORS.AllowedOrigins),
		},
		LogLevel: getEnv("LOG_LEVEL", base.LogLevel),
	}

	var err error
	if cfg.Catalog.Timeout, err = getEnvAsDuration("CATALOG_TIMEOUT", base.Catalog.Timeout); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = getEnvAsDuration("SESSION_TTL", base.Session.TTL); err != nil {
		return nil, err
	}
	if cfg.Session.SweepInterval, err = getEnvAsDuration("SESSION_SWEEP_INTERVAL", base.Session.SweepInterval); err != nil {
		return nil, err
	}
	if cfg.Pricing.FreeShippingThreshold, err = getEnvAsDecimal("PRICING_FREE_SHIPPING_THRESHOLD", base.Pricing.FreeShippingThreshold); err != nil {
		return nil, err
	}
	if cfg.Pricing.FlatShipping, err = getEnvAsDecimal("PRICING_FLAT_SHIPPING", base.Pricing.FlatShipping); err != nil {
		return nil, err
	}
	if cfg.Pricing.TaxRate, err = getEnvAsDecimal("PRICING_TAX_RATE", base.Pricing.TaxRate); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.Catalog.Source {
	case SourceMemory:
	case SourceFile:
		if len(c.Catalog.Files) == 0 {
			return errors.New("CATALOG_FILES is required for the file catalog source")
		}
	case SourceHTTP:
		if c.Catalog.BaseURL == "" {
			return errors.New("CATALOG_BASE_URL is required for the http catalog source")
		}
	default:
		return errors.Errorf("invalid catalog source: %s (must be memory, file, or http)", c.Catalog.Source)
	}

	if err := c.Pricing.Validate(); err != nil {
		return err
	}

	if c.Session.TTL < 0 {
		return errors.Errorf("SESSION_TTL must not be negative: %s", c.Session.TTL)
	}
	if c.Session.TTL > 0 && c.Session.SweepInterval <= 0 {
		return errors.New("SESSION_SWEEP_INTERVAL must be positive when SESSION_TTL is set")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return errors.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getEnvAsDuration(key, defaultValue string) (time.Duration, error) {
	valueStr := getEnv(key, defaultValue)
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return value, nil
}

// getEnvAsDecimal rejects malformed input rather than falling back.
func getEnvAsDecimal(key, defaultValue string) (decimal.Decimal, error) {
	valueStr := getEnv(key, defaultValue)
	value, err := decimal.NewFromString(strings.TrimSpace(valueStr))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse %s", key)
	}
	return value, nil
}
