package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the application
type Config struct {
	DataFile    string `koanf:"data"`      // Path to the family JSON file
	WebMode     bool   `koanf:"web"`       // Serve layouts over HTTP instead of printing a report
	Port        int    `koanf:"port"`      // Web server port
	Watch       bool   `koanf:"watch"`     // Reload the data file on change
	OpenBrowser bool   `koanf:"open"`      // Open the browser when the server starts
	Verbosity   string `koanf:"verbosity"` // debug, info, warn, error
	Root        string `koanf:"root"`      // Root person for the generational layout

	Layout LayoutConfig `koanf:"layout"`
	Force  ForceConfig  `koanf:"force"`
}

// LayoutConfig holds the generational layout spacing.
type LayoutConfig struct {
	RowHeight float64 `koanf:"rowheight"`
	Spacing   float64 `koanf:"spacing"`
}

// ForceConfig holds the canvas bounds and physics constants of the force
// simulation.
type ForceConfig struct {
	Width      float64 `koanf:"width"`
	Height     float64 `koanf:"height"`
	Padding    float64 `koanf:"padding"`
	Damping    float64 `koanf:"damping"`
	Repulsion  float64 `koanf:"repulsion"`
	Attraction float64 `koanf:"attraction"`
	TimeStep   float64 `koanf:"timestep"`
}

// Load loads configuration from defaults, config file, environment
// variables, and flags. Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"data":      "family.json",
		"web":       false,
		"port":      8080,
		"watch":     false,
		"open":      true,
		"verbosity": "",
		"root":      "",
		"layout": map[string]interface{}{
			"rowheight": 120.0,
			"spacing":   90.0,
		},
		"force": map[string]interface{}{
			"width":      1280.0,
			"height":     800.0,
			"padding":    20.0,
			"damping":    0.85,
			"repulsion":  6000.0,
			"attraction": 0.02,
			"timestep":   0.9,
		},
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (optional) - kinview.toml
	// Errors are ignored; the file is optional.
	_ = k.Load(file.Provider("kinview.toml"), toml.Parser())

	// 3. Environment variables, prefix KINVIEW_ (e.g. KINVIEW_PORT=9090,
	// KINVIEW_FORCE_DAMPING=0.9)
	if err := k.Load(env.Provider("KINVIEW_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "KINVIEW_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the engine treats as contract violations:
// non-positive canvas bounds or spacing, damping outside (0,1).
func (c *Config) Validate() error {
	if c.Force.Width <= 0 || c.Force.Height <= 0 {
		return fmt.Errorf("canvas bounds must be positive, got %gx%g", c.Force.Width, c.Force.Height)
	}
	if c.Force.Damping <= 0 || c.Force.Damping >= 1 {
		return fmt.Errorf("damping must be in (0,1), got %g", c.Force.Damping)
	}
	if c.Layout.RowHeight <= 0 || c.Layout.Spacing <= 0 {
		return fmt.Errorf("layout spacing must be positive, got rowHeight=%g spacing=%g",
			c.Layout.RowHeight, c.Layout.Spacing)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}

// Helper to use a map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
