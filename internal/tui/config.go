package tui

import (
	"time"

	"github.com/Veraticus/housefly/internal/service"
	"github.com/Veraticus/housefly/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Scoring      service.ScoringService
	Timeout      time.Duration
	Width        int
	Height       int
	MouseSupport bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Timeout:      30 * time.Second,
		Width:        80,
		Height:       24,
		MouseSupport: true,
	}
}

// WithScoring sets the scoring service the dashboard reads from.
func WithScoring(scoring service.ScoringService) Option {
	return func(c *Config) {
		c.Scoring = scoring
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTimeout bounds every request the dashboard makes.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMouse toggles mouse hover and click.
func WithMouse(enabled bool) Option {
	return func(c *Config) {
		c.MouseSupport = enabled
	}
}
