package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// Translator maps an English label to the display language.
type Translator func(key string) string

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the generator version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Generation Summary"))

	row := func(label, value string) {
		fmt.Fprintf(&b, "| %s | %s |\n", t(label), escape(value))
	}

	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.RunID != "" {
		row("Run ID", s.RunID)
	}
	row("Templates Directory", s.Directories.Templates)
	row("Input Directory", s.Directories.Input)
	row("Output Directory", s.Directories.Output)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Settings.Preset != "" {
		row("Preset", s.Settings.Preset)
	}
	format := s.Settings.Format
	if s.Settings.Quality > 0 {
		format = fmt.Sprintf("%s (%s %d)", format, t("quality"), s.Settings.Quality)
	}
	row("Format", format)
	row("Resampling Filter", s.Settings.Filter)
	row("Workers", fmt.Sprintf("%d", s.Settings.Workers))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Results"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row("Templates", fmt.Sprintf("%d", s.Totals.Templates))
	row("Input Images", fmt.Sprintf("%d", s.Totals.Inputs))
	row("Generated", fmt.Sprintf("%d / %d", s.Totals.Succeeded, s.Totals.Pairs()))
	row("Failed", fmt.Sprintf("%d", s.Totals.Failed))
	row("Output Size", formatBytes(s.Totals.Bytes))
	row("Duration", formatDuration(s.Totals.DurationMs))
	b.WriteString("\n")

	if failures := s.Failures(); len(failures) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Failures"))
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n|---|---|---|---|\n", t("Template"), t("Source"), t("Kind"), t("Error"))
		for _, o := range failures {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", escape(o.Template), escape(o.Source), o.ErrorKind, escape(o.Error))
		}
		b.WriteString("\n")
	}

	var outputs []Outcome
	for _, o := range s.Outcomes {
		if !o.Failed() {
			outputs = append(outputs, o)
		}
	}
	if len(outputs) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Outputs"))
		for _, o := range outputs {
			fmt.Fprintf(&b, "- `%s` (%s)\n", o.OutputPath, formatBytes(int64(o.Bytes)))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" · postergen %s", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

// escape keeps a value inside its table cell.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

// formatDuration renders milliseconds, switching to seconds above one second.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%d ms", ms)
	}
	return fmt.Sprintf("%.2f s", float64(ms)/1000)
}
