// Package summarizer builds human-readable reports of generation runs.
package summarizer

import (
	"time"

	"github.com/user/postergen/pkg/pipeline"
)

// Summary contains all data collected during a generation run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string

	// Directories used by the run
	Directories Directories

	// Generation settings
	Settings Settings

	// Aggregated counts
	Totals Totals

	// Per-pair results, in template then input order
	Outcomes []Outcome
}

// Directories contains the run's input and output locations.
type Directories struct {
	Templates string
	Input     string
	Output    string
}

// Settings contains the generation configuration.
type Settings struct {
	Preset  string
	Format  string
	Quality int // 0 when the format has no quality setting
	Filter  string
	Workers int
}

// Totals contains aggregated run figures.
type Totals struct {
	Templates  int
	Inputs     int
	Succeeded  int
	Failed     int
	Bytes      int64
	DurationMs int64
}

// Pairs returns the number of template x input pairs.
func (t Totals) Pairs() int {
	return t.Succeeded + t.Failed
}

// Outcome is the report form of one pair.
type Outcome struct {
	Template   string
	Source     string
	OutputPath string
	Bytes      int
	ErrorKind  string
	Error      string
}

// Failed reports whether the pair failed.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Failures returns the failed outcomes.
func (s *Summary) Failures() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Failed() {
			out = append(out, o)
		}
	}
	return out
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRun sets the run identity and duration.
func (b *Builder) WithRun(runID string, duration time.Duration) *Builder {
	b.summary.RunID = runID
	b.summary.Totals.DurationMs = duration.Milliseconds()
	return b
}

// WithDirectories sets the run directories.
func (b *Builder) WithDirectories(templates, input, output string) *Builder {
	b.summary.Directories = Directories{
		Templates: templates,
		Input:     input,
		Output:    output,
	}
	return b
}

// WithSettings sets generation settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithCounts sets the number of templates and inputs.
func (b *Builder) WithCounts(templates, inputs int) *Builder {
	b.summary.Totals.Templates = templates
	b.summary.Totals.Inputs = inputs
	return b
}

// WithOutcomes converts pair outcomes and recomputes the totals.
func (b *Builder) WithOutcomes(outcomes []pipeline.JobOutcome) *Builder {
	t := &b.summary.Totals
	t.Succeeded, t.Failed, t.Bytes = 0, 0, 0

	b.summary.Outcomes = make([]Outcome, 0, len(outcomes))
	for _, oc := range outcomes {
		o := Outcome{
			Template: oc.Template,
			Source:   oc.Source,
		}
		if oc.Succeeded() {
			o.OutputPath = oc.OutputPath
			o.Bytes = oc.Bytes
			t.Succeeded++
			t.Bytes += int64(oc.Bytes)
		} else {
			o.ErrorKind = pipeline.ErrorKind(oc.Err)
			o.Error = "unknown error"
			if oc.Err != nil {
				o.Error = oc.Err.Error()
			}
			t.Failed++
		}
		b.summary.Outcomes = append(b.summary.Outcomes, o)
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
