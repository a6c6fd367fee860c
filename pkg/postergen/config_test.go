package postergen

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
)

func TestNewConfigBuilder_Defaults(t *testing.T) {
	cfg := NewConfigBuilder().Build()

	if cfg.TemplateDir != "./templates" || cfg.InputDir != "./input" || cfg.OutputDir != "./output" {
		t.Errorf("unexpected directories %q %q %q", cfg.TemplateDir, cfg.InputDir, cfg.OutputDir)
	}
	if cfg.Preset != PresetFlat {
		t.Errorf("expected flat preset, got %s", cfg.Preset)
	}
	if cfg.Format != ports.FormatPNG {
		t.Errorf("expected PNG, got %s", cfg.Format)
	}
	if cfg.Filter != ports.FilterLanczos {
		t.Errorf("expected lanczos, got %s", cfg.Filter)
	}
	if cfg.Quality != DefaultQuality {
		t.Errorf("expected quality %d, got %d", DefaultQuality, cfg.Quality)
	}
	if !cfg.FailOnError {
		t.Error("expected FailOnError by default")
	}
}

func TestNewModConfigBuilder(t *testing.T) {
	cfg := NewModConfigBuilder().Build()

	if cfg.Preset != PresetMod {
		t.Fatalf("expected mod preset, got %s", cfg.Preset)
	}
	layout := cfg.ToOrchestratorConfig().Layout
	if got := layout.Dir(pipeline.CategoryPaintings); got != "BepInEx/plugins/LethalPaintings/paintings" {
		t.Errorf("unexpected paintings dir %q", got)
	}
}

func TestConfigBuilder_Build_Constraints(t *testing.T) {
	tests := []struct {
		name    string
		builder *ConfigBuilder
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "zero quality uses default",
			builder: NewConfigBuilder().WithQuality(0),
			check: func(t *testing.T, cfg Config) {
				if cfg.Quality != DefaultQuality {
					t.Errorf("expected %d, got %d", DefaultQuality, cfg.Quality)
				}
			},
		},
		{
			name:    "quality clamped to 100",
			builder: NewConfigBuilder().WithQuality(250),
			check: func(t *testing.T, cfg Config) {
				if cfg.Quality != 100 {
					t.Errorf("expected 100, got %d", cfg.Quality)
				}
			},
		},
		{
			name:    "negative workers mean auto",
			builder: NewConfigBuilder().WithWorkers(-2),
			check: func(t *testing.T, cfg Config) {
				if cfg.Workers != 0 {
					t.Errorf("expected 0, got %d", cfg.Workers)
				}
			},
		},
		{
			name:    "unknown filter falls back to lanczos",
			builder: NewConfigBuilder().WithFilter("nearest"),
			check: func(t *testing.T, cfg Config) {
				if cfg.Filter != ports.FilterLanczos {
					t.Errorf("expected lanczos, got %s", cfg.Filter)
				}
			},
		},
		{
			name:    "nil tips background becomes transparent",
			builder: NewConfigBuilder().WithTipsBackground(nil),
			check: func(t *testing.T, cfg Config) {
				if cfg.TipsBackground != color.Transparent {
					t.Errorf("expected transparent, got %v", cfg.TipsBackground)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.builder.Build())
		})
	}
}

func TestConfigBuilder_Chaining(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	cfg := NewConfigBuilder().
		WithTemplateDir("t").
		WithInputDir("i").
		WithOutputDir("o").
		WithPreset(PresetMod).
		WithFormat(ports.FormatJPEG).
		WithQuality(80).
		WithFilter(ports.FilterCatmullRom).
		WithWorkers(3).
		WithTipsBackground(red).
		WithFailOnError(false).
		Build()

	oc := cfg.ToOrchestratorConfig()
	if oc.TemplateDir != "t" || oc.InputDir != "i" || oc.OutputDir != "o" {
		t.Errorf("directories not carried over: %+v", oc)
	}
	if oc.Format != ports.FormatJPEG || oc.Quality != 80 || oc.Filter != ports.FilterCatmullRom {
		t.Errorf("output settings not carried over: %+v", oc)
	}
	if oc.Workers != 3 || oc.FailOnError {
		t.Errorf("processing settings not carried over: %+v", oc)
	}
	if filepath.ToSlash(oc.Layout.Dir(pipeline.CategoryPosters)) != "BepInEx/plugins/LethalPosters/posters" {
		t.Errorf("mod layout not applied")
	}

	for _, def := range cfg.Definitions() {
		if def.Synthetic() && def.Background != red {
			t.Errorf("%s: tips background not applied", def.Name)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in     string
		want   Preset
		wantOK bool
	}{
		{"flat", PresetFlat, true},
		{"", PresetFlat, true},
		{"mod", PresetMod, true},
		{"bepinex", PresetFlat, false},
	}
	for _, tt := range tests {
		got, ok := ParsePreset(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePreset(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
