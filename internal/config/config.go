// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Portal   PortalConfig   `mapstructure:"portal"`
	Enrich   EnrichConfig   `mapstructure:"enrich"`
	Keywords KeywordsConfig `mapstructure:"keywords"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// AuthConfig defines API authentication toggles.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// PortalConfig points at the services directory being cataloged.
type PortalConfig struct {
	BaseURL               string `mapstructure:"base_url"`
	UserAgent             string `mapstructure:"user_agent"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
	Concurrency           int    `mapstructure:"concurrency"`
}

// EnrichConfig governs the metadata enrichment fan-out.
type EnrichConfig struct {
	Concurrency int  `mapstructure:"concurrency"`
	CacheLookup bool `mapstructure:"cache_lookup"`
}

// KeywordsConfig tunes the keyword extraction engine.
type KeywordsConfig struct {
	// Tokenizer selects the candidate-word implementation: "nounphrase" or "stem".
	Tokenizer string  `mapstructure:"tokenizer"`
	MaxShare  float64 `mapstructure:"max_share"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EXPLORER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 60)
	v.SetDefault("portal.user_agent", "explorer-catalog/0.1")
	v.SetDefault("portal.request_timeout_seconds", 15)
	v.SetDefault("portal.concurrency", 4)
	v.SetDefault("enrich.concurrency", 8)
	v.SetDefault("enrich.cache_lookup", true)
	v.SetDefault("keywords.tokenizer", "nounphrase")
	v.SetDefault("keywords.max_share", 0.8)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Portal.BaseURL == "" {
		return fmt.Errorf("portal.base_url must be set")
	}
	if c.Portal.Concurrency <= 0 {
		return fmt.Errorf("portal.concurrency must be > 0")
	}
	if c.Enrich.Concurrency <= 0 {
		return fmt.Errorf("enrich.concurrency must be > 0")
	}
	switch c.Keywords.Tokenizer {
	case "nounphrase", "stem":
	default:
		return fmt.Errorf("keywords.tokenizer must be nounphrase or stem")
	}
	if c.Keywords.MaxShare <= 0 || c.Keywords.MaxShare > 1 {
		return fmt.Errorf("keywords.max_share must be in (0, 1]")
	}
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key must be set when auth is enabled")
	}
	return nil
}

// RequestTimeout converts the portal timeout into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Portal.RequestTimeoutSeconds) * time.Second
}

// ServerTimeout converts the server timeout into a duration.
func (c Config) ServerTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}
