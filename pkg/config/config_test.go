package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
	"github.com/user/postergen/pkg/postergen"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postergen.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if cfg.Templates != "./templates" || cfg.Input != "./input" || cfg.Output != "./output" {
		t.Errorf("unexpected directories %+v", cfg)
	}
	if !cfg.FailOnError {
		t.Error("expected FailOnError by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
templates: assets/templates
output: dist
preset: mod
format: jpeg
quality: 80
filter: catmullrom
workers: 2
tips_background: "#102030"
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Templates != "assets/templates" || cfg.Output != "dist" {
		t.Errorf("directories not loaded: %+v", cfg)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Input != "./input" {
		t.Errorf("expected default input, got %q", cfg.Input)
	}
	if !cfg.FailOnError {
		t.Error("expected default FailOnError")
	}

	oc := cfg.ToOrchestratorConfig()
	if oc.Format != ports.FormatJPEG || oc.Quality != 80 || oc.Filter != ports.FilterCatmullRom || oc.Workers != 2 {
		t.Errorf("settings not converted: %+v", oc)
	}
	if got := filepath.ToSlash(oc.Layout.Dir(pipeline.CategoryTips)); got != "BepInEx/plugins/LethalPosters/tips" {
		t.Errorf("mod layout not applied, tips dir %q", got)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "templates: [", "parse"},
		{"bad preset", "preset: steam", "preset"},
		{"bad format", "format: gif", "format"},
		{"bad filter", "filter: nearest", "filter"},
		{"bad quality", "quality: 101", "quality"},
		{"bad color", "tips_background: purple", "tips_background"},
		{"bad log format", "log_format: xml", "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}, false},
		{"00ff00", color.NRGBA{G: 255, A: 255}, false},
		{"#00f", color.NRGBA{B: 255, A: 255}, false},
		{"#11223344", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, false},
		{"#00000000", color.NRGBA{}, false},
		{"", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyTo(t *testing.T) {
	cfg := Defaults()
	cfg.TipsBackground = "#ff000080"
	cfg.FailOnError = false

	built := cfg.ApplyTo(postergen.NewConfigBuilder()).Build()

	if built.FailOnError {
		t.Error("FailOnError not applied")
	}
	want := color.NRGBA{R: 255, A: 128}
	if built.TipsBackground != want {
		t.Errorf("expected tips background %v, got %v", want, built.TipsBackground)
	}
}
