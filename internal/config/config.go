package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL      string        `mapstructure:"API_BASE_URL"`
	Env             string        `mapstructure:"ENV"`
	HTTPTimeout     time.Duration `mapstructure:"HTTP_TIMEOUT"`
	MessagingScheme string        `mapstructure:"MESSAGING_SCHEME"`
	DarkMode        bool          `mapstructure:"DARK_MODE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("MESSAGING_SCHEME", "whatsapp")
	v.SetDefault("DARK_MODE", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("API_BASE_URL")
	v.BindEnv("ENV")
	v.BindEnv("HTTP_TIMEOUT")
	v.BindEnv("MESSAGING_SCHEME")
	v.BindEnv("DARK_MODE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is usable. The base URL must be an
// absolute http(s) URL and the messaging scheme must be a bare scheme name
// (no "://" suffix) since the deep link is built as "<scheme>:send?...".
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("API_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must be http or https, got %q", u.Scheme)
	}
	if c.MessagingScheme == "" {
		return fmt.Errorf("MESSAGING_SCHEME must not be empty")
	}
	for _, r := range c.MessagingScheme {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '.' {
			return fmt.Errorf("MESSAGING_SCHEME must be a bare scheme name, got %q", c.MessagingScheme)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}
