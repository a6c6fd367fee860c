// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/postergen/pkg/orchestrator"
	"github.com/user/postergen/pkg/ports"
	"github.com/user/postergen/pkg/postergen"
)

// Config represents the full configuration file for postergen.
type Config struct {
	// Directories
	Templates string `yaml:"templates"`
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`

	// Output
	Preset  string `yaml:"preset"`
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`

	// Processing
	Filter         string `yaml:"filter"`
	Workers        int    `yaml:"workers"`
	TipsBackground string `yaml:"tips_background"`
	FailOnError    bool   `yaml:"fail_on_error"`

	// Reporting
	Summary   string `yaml:"summary"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Directories
		Templates: "./templates",
		Input:     "./input",
		Output:    "./output",

		// Output
		Preset:  string(postergen.PresetFlat),
		Format:  "png",
		Quality: postergen.DefaultQuality,

		// Processing
		Filter:         string(ports.FilterLanczos),
		TipsBackground: "#00000000",
		FailOnError:    true,

		// Reporting
		LogLevel:  "info",
		LogFormat: "console",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys absent from the file
// keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every enumerated value.
func (c Config) Validate() error {
	if _, ok := postergen.ParsePreset(c.Preset); !ok {
		return fmt.Errorf("unknown preset %q (want flat or mod)", c.Preset)
	}
	if _, ok := ports.ParseImageFormat(c.Format); !ok {
		return fmt.Errorf("unknown format %q (want png or jpeg)", c.Format)
	}
	if _, ok := ports.ParseResampleFilter(c.Filter); !ok {
		return fmt.Errorf("unknown filter %q (want lanczos, catmullrom, linear or box)", c.Filter)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("quality %d out of range 1-100", c.Quality)
	}
	if c.TipsBackground != "" {
		if _, err := ParseColor(c.TipsBackground); err != nil {
			return fmt.Errorf("tips_background: %w", err)
		}
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", c.LogFormat)
	}
	return nil
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the leading '#' is
// optional).
func ParseColor(hex string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return nil, fmt.Errorf("invalid color %q", hex)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q", hex)
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// ApplyTo copies the file settings onto a builder. Enumerated values are
// assumed to have passed Validate.
func (c Config) ApplyTo(b *postergen.ConfigBuilder) *postergen.ConfigBuilder {
	preset, _ := postergen.ParsePreset(c.Preset)
	format, _ := ports.ParseImageFormat(c.Format)
	filter, _ := ports.ParseResampleFilter(c.Filter)

	b.WithTemplateDir(c.Templates).
		WithInputDir(c.Input).
		WithOutputDir(c.Output).
		WithPreset(preset).
		WithFormat(format).
		WithQuality(c.Quality).
		WithFilter(filter).
		WithWorkers(c.Workers).
		WithFailOnError(c.FailOnError)

	if c.TipsBackground != "" {
		if bg, err := ParseColor(c.TipsBackground); err == nil {
			b.WithTipsBackground(bg)
		}
	}
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return c.ApplyTo(postergen.NewConfigBuilder()).Build().ToOrchestratorConfig()
}
