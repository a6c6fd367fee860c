// Package orchestrator discovers inputs and runs every template x input pair
// through the decode, fit, composite and write stages on a worker pool.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
	"github.com/user/postergen/pkg/registry"
	"github.com/user/postergen/pkg/stages/decode"
)

// Config contains all configuration for a run.
type Config struct {
	// RunID identifies the run in logs and reports. Generated when empty.
	RunID string

	TemplateDir string
	InputDir    string
	OutputDir   string

	Layout  pipeline.OutputLayout
	Format  ports.ImageFormat
	Quality int // JPEG only
	Filter  ports.ResampleFilter

	// Workers bounds the pool. Zero or negative selects runtime.NumCPU();
	// larger values are capped at runtime.NumCPU().
	Workers int

	// FailOnError makes the run count as failed when any pair failed.
	FailOnError bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TemplateDir: "./templates",
		InputDir:    "./input",
		OutputDir:   "./output",
		Layout:      pipeline.FlatLayout(),
		Format:      ports.FormatPNG,
		Quality:     95,
		Filter:      ports.FilterLanczos,
		FailOnError: true,
	}
}

// TemplateLoader loads the template set.
type TemplateLoader interface {
	Load(ctx context.Context, dir string) (*registry.Registry, error)
}

// DecodeStage decodes inputs and can probe their headers.
type DecodeStage interface {
	pipeline.Stage[pipeline.DecodeInput, pipeline.SourceImage]
	Probe(path string) (image.Config, string, error)
}

// RunResult reports every pair of a run.
type RunResult struct {
	RunID     string
	Templates int
	Inputs    int
	// Outcomes is ordered by template, then input.
	Outcomes  []pipeline.JobOutcome
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// HasFailures reports whether any pair failed.
func (r RunResult) HasFailures() bool {
	return r.Failed > 0
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	loader         TemplateLoader
	decodeStage    DecodeStage
	fitStage       pipeline.Stage[pipeline.FitInput, pipeline.FitResult]
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult]
	writeStage     pipeline.Stage[pipeline.WriteInput, pipeline.WriteResult]
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	loader TemplateLoader,
	decodeStage DecodeStage,
	fitStage pipeline.Stage[pipeline.FitInput, pipeline.FitResult],
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult],
	writeStage pipeline.Stage[pipeline.WriteInput, pipeline.WriteResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		loader:         loader,
		decodeStage:    decodeStage,
		fitStage:       fitStage,
		compositeStage: compositeStage,
		writeStage:     writeStage,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

// input is a discovered source file.
type input struct {
	path string
	name string
	// rank is the position among decodable inputs, or -1.
	rank int
	// dup is set when an earlier input has the same name.
	dup bool
}

// job is one (template, input) pair.
type job struct {
	template *pipeline.Template
	input    input
}

// Run loads the templates, discovers the inputs and processes every pair.
//
// A template load failure or an unreadable input directory aborts the run
// with an error and no outcomes. Pair failures are recorded in the result and
// never abort the run. When ctx is cancelled, pairs that have not started
// are reported failed with the context error, and that error is returned
// alongside the result.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	start := time.Now()
	result := RunResult{RunID: config.RunID}
	if result.RunID == "" {
		result.RunID = uuid.NewString()
	}

	o.logger.Info("Starting run %s", result.RunID)

	o.logger.Info("Loading templates from %s", config.TemplateDir)
	reg, err := o.loader.Load(ctx, config.TemplateDir)
	if err != nil {
		o.logger.Error("Failed to load templates: %s", err)
		return result, err
	}
	templates := reg.Templates()
	result.Templates = len(templates)
	o.logger.Info("Loaded %d templates", len(templates))

	inputs, valid, err := o.discover(config.InputDir)
	if err != nil {
		o.logger.Error("Failed to read input directory: %s", err)
		return result, err
	}
	result.Inputs = len(inputs)
	if len(inputs) == 0 {
		o.logger.Info("No input images found in %s", config.InputDir)
		result.Duration = time.Since(start)
		o.saveRunJSON(result)
		return result, nil
	}
	o.logger.Info("Found %d input images in %s", len(inputs), config.InputDir)

	jobs := make([]job, 0, len(templates)*len(inputs))
	for _, t := range templates {
		for _, in := range inputs {
			jobs = append(jobs, job{template: t, input: in})
		}
	}

	workers := resolveWorkers(config.Workers, len(jobs))
	o.logger.Info("Generating %d assets with %d workers", len(jobs), workers)

	result.Outcomes = o.execute(ctx, config, jobs, newCompanionPool(valid), workers)

	for _, outcome := range result.Outcomes {
		if outcome.Succeeded() {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}
	result.Duration = time.Since(start)

	o.logger.Info("Generated %d of %d assets (%d failed)", result.Succeeded, len(jobs), result.Failed)
	o.logFailures(result.Outcomes)
	if result.Succeeded > 0 {
		o.logger.Info("Output saved to %s", config.OutputDir)
	}

	o.saveRunJSON(result)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// discover lists the input directory in name order. Hidden files are
// skipped. Every input is probed; the probe-OK ones are returned in valid and
// serve as companions for multi-slot templates.
func (o *Orchestrator) discover(dir string) ([]input, []input, error) {
	ok, err := o.fs.IsDir(dir)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", dir, pipeline.ErrInputDirMissing)
	}

	names, err := o.fs.ListFiles(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var inputs, valid []input
	seen := make(map[string]bool)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if decode.Hidden(path) {
			continue
		}

		in := input{path: path, name: decode.SourceName(path), rank: -1}
		if seen[in.name] {
			in.dup = true
		}
		seen[in.name] = true

		if _, _, err := o.decodeStage.Probe(path); err != nil {
			o.logger.Debug("Skipping unreadable input %s: %s", path, err)
		} else if !in.dup {
			in.rank = len(valid)
			valid = append(valid, in)
		}
		inputs = append(inputs, in)
	}
	return inputs, valid, nil
}

// resolveWorkers bounds the pool by the CPU count and the number of jobs.
func resolveWorkers(configured, jobs int) int {
	n := runtime.NumCPU()
	if configured > 0 && configured < n {
		n = configured
	}
	if jobs > 0 && jobs < n {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// execute runs jobs on a fixed pool. Each worker writes only the outcome slots
// of the jobs it received.
func (o *Orchestrator) execute(ctx context.Context, config Config, jobs []job, pool *companionPool, numWorkers int) []pipeline.JobOutcome {
	outcomes := make([]pipeline.JobOutcome, len(jobs))
	for i, j := range jobs {
		outcomes[i] = pipeline.JobOutcome{
			Template:   j.template.Name,
			Source:     j.input.name,
			SourcePath: j.input.path,
			State:      pipeline.JobPending,
		}
	}

	queue := make(chan int)
	var completed atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					continue
				}
				outcomes[idx] = o.processPair(ctx, config, jobs[idx], pool, outcomes[idx])
				n := completed.Add(1)
				o.logger.Debug("Completed %d/%d", n, len(jobs))
			}
		}()
	}

dispatch:
	for i := range jobs {
		select {
		case <-ctx.Done():
			break dispatch
		case queue <- i:
		}
	}
	close(queue)
	wg.Wait()

	for i := range outcomes {
		if !outcomes[i].State.Terminal() {
			outcomes[i].State = pipeline.JobFailed
			outcomes[i].Err = ctx.Err()
		}
	}
	return outcomes
}

// processPair runs one pair. A panic in any stage is recovered into a
// CompositeError for this pair only.
func (o *Orchestrator) processPair(ctx context.Context, config Config, j job, pool *companionPool, outcome pipeline.JobOutcome) (result pipeline.JobOutcome) {
	start := time.Now()
	outcome.State = pipeline.JobRunning

	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("Recovered from panic in %s + %s: %v", j.template.Name, j.input.name, r)
			result = outcome
			result.State = pipeline.JobFailed
			result.Err = &pipeline.CompositeError{Template: j.template.Name, Err: fmt.Errorf("panic: %v", r)}
			result.Duration = time.Since(start)
		}
	}()

	o.logger.Debug("Processing %s + %s", j.template.Name, j.input.name)

	written, err := o.runPair(ctx, config, j, pool)
	outcome.Duration = time.Since(start)
	if err != nil {
		o.logger.Warn("Pair %s + %s failed: %s", j.template.Name, j.input.name, err)
		outcome.State = pipeline.JobFailed
		outcome.Err = err
		return outcome
	}
	outcome.State = pipeline.JobSucceeded
	outcome.OutputPath = written.Path
	outcome.Bytes = written.Bytes
	return outcome
}

func (o *Orchestrator) runPair(ctx context.Context, config Config, j job, pool *companionPool) (pipeline.WriteResult, error) {
	if j.input.dup {
		return pipeline.WriteResult{}, fmt.Errorf("%s: %w", j.input.path, pipeline.ErrDuplicateSource)
	}

	t := j.template
	primary, err := o.decodeStage.Execute(ctx, pipeline.DecodeInput{Path: j.input.path})
	if err != nil {
		if ctx.Err() == nil {
			pool.markBroken(j.input.path)
		}
		return pipeline.WriteResult{}, err
	}

	// Decoded images of this pair, by path. Small atlases reuse inputs.
	decoded := map[string]pipeline.SourceImage{j.input.path: primary}

	fitted := make([]image.Image, t.Slots())
	for slot, region := range t.Regions {
		src := primary
		if slot > 0 {
			src, err = o.companion(ctx, j.input, slot, pool, decoded)
			if err != nil {
				return pipeline.WriteResult{}, err
			}
		}

		fit, err := o.fitStage.Execute(ctx, pipeline.FitInput{Source: src, Region: region, Filter: config.Filter})
		if err != nil {
			return pipeline.WriteResult{}, withTemplate(t.Name, err)
		}
		fitted[slot] = fit.Image

		if o.sink.Enabled() {
			if err := o.sink.SaveFitted(t.Name, j.input.name, slot, fit.Image); err != nil {
				o.logger.Warn("Failed to save debug output: %s", err)
			}
		}
	}

	composite, err := o.compositeStage.Execute(ctx, pipeline.CompositeInput{
		Template: t,
		Fitted:   fitted,
		Source:   j.input.name,
	})
	if err != nil {
		return pipeline.WriteResult{}, err
	}

	return o.writeStage.Execute(ctx, pipeline.WriteInput{
		Result:     composite,
		OutputRoot: config.OutputDir,
		Layout:     config.Layout,
		Format:     config.Format,
		Quality:    config.Quality,
	})
}

// companionPool hands out the inputs shown in secondary atlas slots. An
// input that fails a full decode is remembered and skipped for the rest of
// the run, so a pair never fails because of another input.
type companionPool struct {
	valid []input

	mu     sync.Mutex
	broken map[string]bool
}

func newCompanionPool(valid []input) *companionPool {
	return &companionPool{valid: valid, broken: make(map[string]bool)}
}

func (p *companionPool) markBroken(path string) {
	p.mu.Lock()
	p.broken[path] = true
	p.mu.Unlock()
}

func (p *companionPool) isBroken(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.broken[path]
}

// candidates returns the companions for a slot in preference order: the
// decodable inputs following the primary, wrapping around.
func (p *companionPool) candidates(primary input, slot int) []input {
	n := len(p.valid)
	rank := primary.rank
	if rank < 0 {
		rank = 0
	}
	out := make([]input, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, p.valid[(rank+slot+i)%n])
	}
	return out
}

// companion decodes the first usable candidate for slot. When no other input
// decodes, the primary image fills the slot.
func (o *Orchestrator) companion(ctx context.Context, primary input, slot int, pool *companionPool, decoded map[string]pipeline.SourceImage) (pipeline.SourceImage, error) {
	for _, c := range pool.candidates(primary, slot) {
		if src, ok := decoded[c.path]; ok {
			return src, nil
		}
		if pool.isBroken(c.path) {
			continue
		}

		src, err := o.decodeStage.Execute(ctx, pipeline.DecodeInput{Path: c.path})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return pipeline.SourceImage{}, ctxErr
			}
			o.logger.Debug("Skipping undecodable companion %s: %s", c.path, err)
			pool.markBroken(c.path)
			continue
		}
		decoded[c.path] = src
		return src, nil
	}
	return decoded[primary.path], nil
}

// logFailures lists every failed pair with its reason at error level, so the
// list survives any log level short of quiet.
func (o *Orchestrator) logFailures(outcomes []pipeline.JobOutcome) {
	var failed []pipeline.JobOutcome
	for _, oc := range outcomes {
		if !oc.Succeeded() {
			failed = append(failed, oc)
		}
	}
	if len(failed) == 0 {
		return
	}

	o.logger.Error("Failed pairs (%d):", len(failed))
	for _, oc := range failed {
		o.logger.Error("  %s + %s: %s: %v", oc.Template, oc.Source, failureKind(oc.Err), oc.Err)
	}
}

// failureKind names the error class of a failed pair.
func failureKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Canceled"
	case errors.Is(err, pipeline.ErrDuplicateSource):
		return "DuplicateSource"
	default:
		return pipeline.ErrorKind(err)
	}
}

// withTemplate turns invariant violations from the fit stage into a
// CompositeError. Image and context errors pass through unchanged.
func withTemplate(template string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if pipeline.ErrorKind(err) != "error" {
		return err
	}
	return &pipeline.CompositeError{Template: template, Err: err}
}

// runReport is the JSON form of a run written to the debug sink.
type runReport struct {
	RunID      string          `json:"runId"`
	Templates  int             `json:"templates"`
	Inputs     int             `json:"inputs"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	DurationMs int64           `json:"durationMs"`
	Outcomes   []outcomeReport `json:"outcomes"`
}

type outcomeReport struct {
	Template   string `json:"template"`
	Source     string `json:"source"`
	State      string `json:"state"`
	OutputPath string `json:"outputPath,omitempty"`
	Bytes      int    `json:"bytes,omitempty"`
	ErrorKind  string `json:"errorKind,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

func (o *Orchestrator) saveRunJSON(result RunResult) {
	if !o.sink.Enabled() {
		return
	}

	report := runReport{
		RunID:      result.RunID,
		Templates:  result.Templates,
		Inputs:     result.Inputs,
		Succeeded:  result.Succeeded,
		Failed:     result.Failed,
		DurationMs: result.Duration.Milliseconds(),
		Outcomes:   make([]outcomeReport, 0, len(result.Outcomes)),
	}
	for _, oc := range result.Outcomes {
		r := outcomeReport{
			Template:   oc.Template,
			Source:     oc.Source,
			State:      oc.State.String(),
			OutputPath: oc.OutputPath,
			Bytes:      oc.Bytes,
			DurationMs: oc.Duration.Milliseconds(),
		}
		if oc.Err != nil {
			r.ErrorKind = pipeline.ErrorKind(oc.Err)
			r.Error = oc.Err.Error()
		}
		report.Outcomes = append(report.Outcomes, r)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err == nil {
		err = o.sink.SaveRunJSON(data)
	}
	if err != nil {
		o.logger.Warn("Failed to save debug output: %s", err)
	}
}
