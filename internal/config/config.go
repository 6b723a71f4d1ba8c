// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultAPIURL  = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second
	DefaultTheme   = "default"

	// APIURLEnv selects the scoring service base URL.
	APIURLEnv = "HOUSEFLY_API_URL"
)

// Config holds everything the dashboard needs at startup.
type Config struct {
	APIURL  string
	Theme   string
	Timeout time.Duration
	Mouse   bool
}

// Load reads configuration from Viper and the environment.
// It follows this precedence:
// 1. Viper configuration (config file, flags or HOUSEFLY_ env vars)
// 2. Direct environment variable HOUSEFLY_API_URL
// 3. Default values
func Load() (*Config, error) {
	cfg := &Config{
		APIURL:  DefaultAPIURL,
		Theme:   DefaultTheme,
		Timeout: DefaultTimeout,
		Mouse:   true,
	}

	if v := viper.GetString("api.url"); v != "" {
		cfg.APIURL = v
	} else if v := os.Getenv(APIURLEnv); v != "" {
		cfg.APIURL = v
	}
	if viper.IsSet("api.timeout") {
		cfg.Timeout = viper.GetDuration("api.timeout")
	}
	if v := viper.GetString("ui.theme"); v != "" {
		cfg.Theme = v
	}
	if viper.IsSet("ui.mouse") {
		cfg.Mouse = viper.GetBool("ui.mouse")
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("%w: api url %q: %v", common.ErrInvalidConfig, c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api url %q must be http or https", common.ErrInvalidConfig, c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: api url %q has no host", common.ErrInvalidConfig, c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: api timeout must be positive, got %s", common.ErrInvalidConfig, c.Timeout)
	}
	return nil
}
