package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Config holds the whole application configuration, populated from
// environment variables (after .env was loaded by main).
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Catalog   CatalogConfig
	Auth      AuthConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"Bookstore Storefront"`
	Environment string `envconfig:"APP_ENV" default:"development"` // development, staging, production
	Port        string `envconfig:"APP_PORT" default:"8080"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// TrustedProxies lists the IPs/CIDRs whose X-Forwarded-For is believed
	// when resolving the client IP. Empty trusts nobody.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Environment, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Environment, AppEnvProd)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig carries the secret shared with the auth service.
type JWTConfig struct {
	Secret            string        `envconfig:"JWT_SECRET" default:"your-secret-key-change-in-production"`
	AccessTokenExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"24h"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"CATALOG_BASE_URL" default:"http://localhost:3000"`
	Timeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`
}

type AuthConfig struct {
	BaseURL string        `envconfig:"AUTH_BASE_URL" default:"http://localhost:3000"`
	Timeout time.Duration `envconfig:"AUTH_TIMEOUT" default:"10s"`
}

type SessionConfig struct {
	TTL           time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	CookieSecure  bool          `envconfig:"SESSION_COOKIE_SECURE" default:"true"`
	CookieDomain  string        `envconfig:"SESSION_COOKIE_DOMAIN"`
	IdleEviction  time.Duration `envconfig:"SESSION_IDLE_EVICTION" default:"30m"`
	SweepSchedule string        `envconfig:"SESSION_SWEEP_SCHEDULE" default:"@every 5m"`
}

// RateLimitConfig throttles login attempts per client IP.
type RateLimitConfig struct {
	LoginPerMinute int `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginBurst     int `envconfig:"LOGIN_RATE_BURST" default:"5"`
}

// Load reads config from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks critical config
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return errors.New("APP_PORT is required")
	}
	if err := validateBaseURL("CATALOG_BASE_URL", c.Catalog.BaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("AUTH_BASE_URL", c.Auth.BaseURL); err != nil {
		return err
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.App.IsProd() && c.JWT.Secret == "your-secret-key-change-in-production" {
		return errors.New("JWT_SECRET must be changed in production")
	}
	if c.Catalog.Timeout <= 0 {
		return errors.New("CATALOG_TIMEOUT must be positive")
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.RateLimit.LoginPerMinute <= 0 || c.RateLimit.LoginBurst <= 0 {
		return errors.New("LOGIN_RATE_PER_MINUTE and LOGIN_RATE_BURST must be positive")
	}
	for _, p := range c.App.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES entry %q is neither an IP nor a CIDR", p)
			}
		}
	}
	return nil
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}
	return nil
}
