package summarizer

import (
	"strings"
	"testing"
	"time"
)

func testSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		RunID:       "3f1c9a2e",
		Directories: Directories{Templates: "./templates", Input: "./input", Output: "./output"},
		Settings:    Settings{Preset: "flat", Format: "png", Filter: "lanczos", Workers: 8},
		Totals: Totals{
			Templates:  3,
			Inputs:     2,
			Succeeded:  5,
			Failed:     1,
			Bytes:      1024 * 1024,
			DurationMs: 2500,
		},
		Outcomes: []Outcome{
			{Template: "poster", Source: "cat", OutputPath: "output/posters/poster_cat.png", Bytes: 2048},
			{Template: "poster", Source: "bad", ErrorKind: "DecodeError", Error: "decode input/bad.png: image: unknown format"},
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(testSummary())

	checks := []string{
		"# Generation Summary",
		"3f1c9a2e",
		"./templates",
		"./input",
		"./output",
		"flat",
		"lanczos",
		"| Workers | 8 |",
		"| Generated | 5 / 6 |",
		"| Failed | 1 |",
		"1.00 MB",
		"2.50 s",
		"## Failures",
		"| poster | bad | DecodeError |",
		"## Outputs",
		"`output/posters/poster_cat.png` (2.00 KB)",
		"2024-01-15T10:30:00Z",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
}

func TestMarkdownFormatter_Format_NoFailures(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := testSummary()
	summary.Outcomes = summary.Outcomes[:1]
	summary.Totals.Failed = 0

	result := formatter.Format(summary)

	if strings.Contains(result, "## Failures") {
		t.Error("output should not contain a failures section")
	}
}

func TestMarkdownFormatter_Format_Quality(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := testSummary()
	summary.Settings.Format = "jpeg"
	summary.Settings.Quality = 85

	result := formatter.Format(summary)

	if !strings.Contains(result, "jpeg (quality 85)") {
		t.Errorf("expected quality in format row\n%s", result)
	}
}

func TestMarkdownFormatter_Format_EscapesCells(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := testSummary()
	summary.Outcomes[1].Error = "bad | pipe\nnewline"

	result := formatter.Format(summary)

	if !strings.Contains(result, `bad \| pipe newline`) {
		t.Errorf("expected escaped error cell\n%s", result)
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Generation Summary": "生成サマリー",
			"Failures":           "失敗",
			"Input Directory":    "入力ディレクトリ",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))

	result := formatter.Format(testSummary())

	for _, want := range []string{"生成サマリー", "失敗", "入力ディレクトリ"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))

	result := formatter.Format(testSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0 ms"},
		{999, "999 ms"},
		{1000, "1.00 s"},
		{61500, "61.50 s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.ms); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
