package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"seoinspector/internal/log"
)

const (
	PORT               = "PORT"
	METRICS_PORT       = "METRICS_PORT"
	IS_DEV             = "IS_DEV"
	BASIC_AUTH_USER    = "BASIC_AUTH_USER"
	BASIC_AUTH_PASS    = "BASIC_AUTH_PASS"
	RATE_LIMIT_RPS     = "RATE_LIMIT_RPS"
	RATE_LIMIT_BURST   = "RATE_LIMIT_BURST"
	BRIDGE             = "BRIDGE"
	USER_AGENT         = "USER_AGENT"
	FETCH_TIMEOUT      = "FETCH_TIMEOUT"
	PROBE_TIMEOUT      = "PROBE_TIMEOUT"
	BROWSER_BIN        = "BROWSER_BIN"
	BROWSER_HEADLESS   = "BROWSER_HEADLESS"
	BROWSER_NO_SANDBOX = "BROWSER_NO_SANDBOX"
	BROWSER_STEALTH    = "BROWSER_STEALTH"
	CACHE_TTL          = "CACHE_TTL"
)

const (
	BridgeHTTP = "http"
	BridgeRod  = "rod"
)

const DefaultUserAgent = "Mozilla/5.0 (compatible; seoinspector/1.0)"

type Config struct {
	Port        string `mapstructure:"PORT"`
	MetricsPort string `mapstructure:"METRICS_PORT"`
	IsDev       bool   `mapstructure:"IS_DEV"`

	BasicAuthUser string `mapstructure:"BASIC_AUTH_USER"`
	BasicAuthPass string `mapstructure:"BASIC_AUTH_PASS"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Bridge selects how pages are opened: "http" fetches raw HTML,
	// "rod" renders the page in headless Chromium first.
	Bridge       string        `mapstructure:"BRIDGE"`
	UserAgent    string        `mapstructure:"USER_AGENT"`
	FetchTimeout time.Duration `mapstructure:"FETCH_TIMEOUT"`
	ProbeTimeout time.Duration `mapstructure:"PROBE_TIMEOUT"`

	BrowserBin       string `mapstructure:"BROWSER_BIN"`
	BrowserHeadless  bool   `mapstructure:"BROWSER_HEADLESS"`
	BrowserNoSandbox bool   `mapstructure:"BROWSER_NO_SANDBOX"`
	BrowserStealth   bool   `mapstructure:"BROWSER_STEALTH"`

	// CacheTTL of zero disables the report cache.
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`
}

// AuthEnabled reports whether the API should sit behind basic auth.
func (c *Config) AuthEnabled() bool {
	return c.BasicAuthUser != "" && c.BasicAuthPass != ""
}

var AppConfig *Config

func LoadEnv() {
	cfg, err := Load(".env")
	if err != nil {
		log.Logger.Fatal("Failed to load config", zap.Error(err))
	}
	AppConfig = cfg
}

// Load reads the given env file (if present) and the process environment.
// A missing file is not an error; environment variables and defaults still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Logger.Info("env file not loaded, using environment only",
			zap.String("path", path),
			zap.Error(err),
		)
	}

	v.AutomaticEnv()

	v.SetDefault(PORT, "8080")
	v.SetDefault(METRICS_PORT, "8081")
	v.SetDefault(IS_DEV, false)
	v.SetDefault(BASIC_AUTH_USER, "")
	v.SetDefault(BASIC_AUTH_PASS, "")
	v.SetDefault(RATE_LIMIT_RPS, 1.0)
	v.SetDefault(RATE_LIMIT_BURST, 3)
	v.SetDefault(BRIDGE, BridgeHTTP)
	v.SetDefault(USER_AGENT, DefaultUserAgent)
	v.SetDefault(FETCH_TIMEOUT, "30s")
	v.SetDefault(PROBE_TIMEOUT, "10s")
	v.SetDefault(BROWSER_BIN, "")
	v.SetDefault(BROWSER_HEADLESS, true)
	v.SetDefault(BROWSER_NO_SANDBOX, false)
	v.SetDefault(BROWSER_STEALTH, false)
	v.SetDefault(CACHE_TTL, "0s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Bridge != BridgeHTTP && c.Bridge != BridgeRod {
		return fmt.Errorf("BRIDGE must be %q or %q, got %q", BridgeHTTP, BridgeRod, c.Bridge)
	}
	if (c.BasicAuthUser == "") != (c.BasicAuthPass == "") {
		return errors.New("BASIC_AUTH_USER and BASIC_AUTH_PASS must be set together")
	}
	if c.FetchTimeout <= 0 || c.ProbeTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT and PROBE_TIMEOUT must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
