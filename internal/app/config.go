package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/dishpatch/order-api/internal/domain/pricing"
)

// Config holds the complete application configuration, loadable from
// environment variables (DISHPATCH_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL (DISHPATCH_DATABASE_URL or DATABASE_URL)" flag:"database-url"`

	// PeakRules lists surge windows as "start-end=multiplier" with hours in
	// UTC, e.g. "11-14=1.2". The end hour is exclusive.
	PeakRules []string `default:"11-14=1.2,18-22=1.4" usage:"Peak pricing windows (start-end=multiplier, UTC hours)" flag:"peak-rules"`

	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "DISHPATCH",
		Files:     []string{"config.yaml", "/etc/dishpatch/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set DISHPATCH_DATABASE_URL or DATABASE_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like DATABASE_URL and PORT
// to the application's DISHPATCH_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}

// PeakSchedule parses the configured PeakRules into a pricing schedule.
func (c *Config) PeakSchedule() (*pricing.Schedule, error) {
	rules := make([]pricing.PeakRule, 0, len(c.PeakRules))
	for _, raw := range c.PeakRules {
		rule, err := parsePeakRule(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "peak rule %q", raw)
		}
		rules = append(rules, rule)
	}
	return pricing.NewSchedule(rules)
}

func parsePeakRule(raw string) (pricing.PeakRule, error) {
	hours, mult, ok := strings.Cut(raw, "=")
	if !ok {
		return pricing.PeakRule{}, errors.New("expected start-end=multiplier")
	}
	startStr, endStr, ok := strings.Cut(hours, "-")
	if !ok {
		return pricing.PeakRule{}, errors.New("expected start-end=multiplier")
	}

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return pricing.PeakRule{}, errors.Wrap(err, "start hour")
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return pricing.PeakRule{}, errors.Wrap(err, "end hour")
	}
	multiplier, err := decimal.NewFromString(strings.TrimSpace(mult))
	if err != nil {
		return pricing.PeakRule{}, errors.Wrap(err, "multiplier")
	}

	return pricing.PeakRule{Start: start, End: end, Multiplier: multiplier}, nil
}
