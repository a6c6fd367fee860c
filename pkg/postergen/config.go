// Package postergen provides a high-level API for generating Lethal Posters
// and Lethal Paintings assets.
package postergen

import (
	"image/color"

	"github.com/user/postergen/pkg/orchestrator"
	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
	"github.com/user/postergen/pkg/registry"
)

// Preset names an output directory layout.
type Preset string

const (
	// PresetFlat writes posters/, paintings/ and tips/ under the output root.
	PresetFlat Preset = "flat"
	// PresetMod writes the BepInEx plugin tree the mods load from.
	PresetMod Preset = "mod"
)

// ParsePreset parses a preset name. Unknown names yield PresetFlat and
// ok=false.
func ParsePreset(s string) (Preset, bool) {
	switch Preset(s) {
	case PresetFlat, "":
		return PresetFlat, true
	case PresetMod:
		return PresetMod, true
	default:
		return PresetFlat, false
	}
}

// Layout returns the output layout of the preset.
func (p Preset) Layout() pipeline.OutputLayout {
	if p == PresetMod {
		return pipeline.ModLayout()
	}
	return pipeline.FlatLayout()
}

// Default JPEG quality.
const DefaultQuality = 95

// Config represents the configuration for asset generation.
type Config struct {
	// Directories
	TemplateDir string
	InputDir    string
	OutputDir   string

	// Output
	Preset  Preset
	Format  ports.ImageFormat
	Quality int // JPEG quality (1-100)

	// Processing
	Filter  ports.ResampleFilter
	Workers int // 0 = one per CPU

	// TipsBackground fills the synthetic tips sheet.
	TipsBackground color.Color

	// FailOnError reports the run as failed when any pair failed.
	FailOnError bool
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with flat preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: flatDefaults(),
	}
}

// NewModConfigBuilder creates a new ConfigBuilder with mod preset defaults.
func NewModConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: modDefaults(),
	}
}

// NewConfigBuilderForPreset creates a ConfigBuilder for the named preset.
func NewConfigBuilderForPreset(p Preset) *ConfigBuilder {
	if p == PresetMod {
		return NewModConfigBuilder()
	}
	return NewConfigBuilder()
}

// flatDefaults returns the flat preset configuration.
func flatDefaults() Config {
	return Config{
		// Directories
		TemplateDir: "./templates",
		InputDir:    "./input",
		OutputDir:   "./output",

		// Output
		Preset:  PresetFlat,
		Format:  ports.FormatPNG,
		Quality: DefaultQuality,

		// Processing
		Filter:  ports.FilterLanczos,
		Workers: 0,

		TipsBackground: color.Transparent,
		FailOnError:    true,
	}
}

// modDefaults returns the mod preset configuration. The output root is meant
// to be the game directory or a mod package staging directory.
func modDefaults() Config {
	cfg := flatDefaults()
	cfg.Preset = PresetMod
	return cfg
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	// Clamp quality to the JPEG range
	if cfg.Quality <= 0 {
		cfg.Quality = DefaultQuality
	}
	if cfg.Quality > 100 {
		cfg.Quality = 100
	}

	// Negative worker counts mean "auto"
	if cfg.Workers < 0 {
		cfg.Workers = 0
	}

	if _, ok := ports.ParseResampleFilter(string(cfg.Filter)); !ok {
		cfg.Filter = ports.FilterLanczos
	}
	if cfg.TipsBackground == nil {
		cfg.TipsBackground = color.Transparent
	}

	return cfg
}

// WithTemplateDir sets the template directory.
func (b *ConfigBuilder) WithTemplateDir(dir string) *ConfigBuilder {
	b.config.TemplateDir = dir
	return b
}

// WithInputDir sets the input directory.
func (b *ConfigBuilder) WithInputDir(dir string) *ConfigBuilder {
	b.config.InputDir = dir
	return b
}

// WithOutputDir sets the output root.
func (b *ConfigBuilder) WithOutputDir(dir string) *ConfigBuilder {
	b.config.OutputDir = dir
	return b
}

// WithPreset switches the output layout, keeping every other setting.
func (b *ConfigBuilder) WithPreset(p Preset) *ConfigBuilder {
	b.config.Preset = p
	return b
}

// WithFormat sets the output encoding.
func (b *ConfigBuilder) WithFormat(f ports.ImageFormat) *ConfigBuilder {
	b.config.Format = f
	return b
}

// WithQuality sets the JPEG quality (1-100).
// Values outside the range are clamped by Build.
func (b *ConfigBuilder) WithQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithFilter sets the resampling filter.
// Unknown filters fall back to Lanczos in Build.
func (b *ConfigBuilder) WithFilter(f ports.ResampleFilter) *ConfigBuilder {
	b.config.Filter = f
	return b
}

// WithWorkers sets the worker count. 0 uses one worker per CPU; values above
// the CPU count are capped when the run starts.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.config.Workers = n
	return b
}

// WithTipsBackground sets the fill of the synthetic tips sheet.
func (b *ConfigBuilder) WithTipsBackground(c color.Color) *ConfigBuilder {
	b.config.TipsBackground = c
	return b
}

// WithFailOnError sets whether any failed pair fails the run.
func (b *ConfigBuilder) WithFailOnError(fail bool) *ConfigBuilder {
	b.config.FailOnError = fail
	return b
}

// Definitions returns the template definitions for this configuration.
func (c Config) Definitions() []registry.Definition {
	bg := c.TipsBackground
	if bg == nil {
		bg = color.Transparent
	}
	return registry.WithBackground(registry.DefaultDefinitions(), bg)
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		TemplateDir: c.TemplateDir,
		InputDir:    c.InputDir,
		OutputDir:   c.OutputDir,

		Layout:  c.Preset.Layout(),
		Format:  c.Format,
		Quality: c.Quality,
		Filter:  c.Filter,

		Workers:     c.Workers,
		FailOnError: c.FailOnError,
	}
}
