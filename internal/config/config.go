// File: internal/config/config.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type GatewayConfig struct {
	APIKey      string        `yaml:"api_key"`
	CountryMode string        `yaml:"country_mode"` // KWT, SAU, ARE, ...
	Test        bool          `yaml:"test"`
	BaseURL     string        `yaml:"base_url"` // optional override, skips country resolution
	Timeout     time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Driver       string        `yaml:"driver"` // memory | file | redis | postgres
	Dir          string        `yaml:"dir"`    // file driver
	Redis        RedisConfig   `yaml:"redis"`
	PostgresURL  string        `yaml:"postgres_url"`
	MethodsTTL   time.Duration `yaml:"methods_ttl"`
	CountriesTTL time.Duration `yaml:"countries_ttl"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	AdminAPIKey   string        `yaml:"admin_api_key"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	WebhookSecret string        `yaml:"webhook_secret"`
}

type ApplePayConfig struct {
	DomainRegistered bool   `yaml:"domain_registered"`
	SiteURL          string `yaml:"site_url"`
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	ApplePay ApplePayConfig `yaml:"applepay"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig() (*Config, error) {
	var configPath string = ""
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Gateway.CountryMode == "" {
		cfg.Gateway.CountryMode = "KWT"
	}
	if cfg.Gateway.Timeout <= 0 {
		cfg.Gateway.Timeout = 15 * time.Second
	}
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}
	cfg.Cache.MethodsTTL = normalizeTTL(cfg.Cache.MethodsTTL, 30*time.Minute)
	cfg.Cache.CountriesTTL = normalizeTTL(cfg.Cache.CountriesTTL, time.Hour)
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.SessionTTL <= 0 {
		cfg.Server.SessionTTL = 30 * time.Minute
	}

	// Minimal validation
	if cfg.Gateway.APIKey == "" {
		return nil, errors.New("gateway.api_key is required")
	}
	switch cfg.Cache.Driver {
	case "memory", "file":
	case "redis":
		if cfg.Cache.Redis.URL == "" {
			return nil, errors.New("cache.redis.url is required for the redis driver")
		}
	case "postgres":
		if cfg.Cache.PostgresURL == "" {
			return nil, errors.New("cache.postgres_url is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unknown cache.driver %q", cfg.Cache.Driver)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
