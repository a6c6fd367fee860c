// Package main provides the CLI entry point for postergen.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/user/postergen/pkg/adapters/filesink"
	"github.com/user/postergen/pkg/adapters/logger"
	"github.com/user/postergen/pkg/adapters/nullsink"
	"github.com/user/postergen/pkg/adapters/osfilesystem"
	"github.com/user/postergen/pkg/adapters/rasterrenderer"
	"github.com/user/postergen/pkg/config"
	"github.com/user/postergen/pkg/orchestrator"
	"github.com/user/postergen/pkg/ports"
	"github.com/user/postergen/pkg/postergen"
	"github.com/user/postergen/pkg/summarizer"
)

var version = "dev"

// Exit codes.
const (
	exitOK       = 0
	exitFatal    = 1
	exitFailures = 2
)

// Flag categories
const (
	catDirectories = "Directories"
	catOutput      = "Output"
	catProcessing  = "Processing"
	catReporting   = "Reporting"
	catDebug       = "Debug"
	catLogging     = "Logging"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := exitOK

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   l10n.T("Show version information"),
	}

	app := &cli.App{
		Name:           "postergen",
		Usage:          l10n.T("Generate Lethal Posters and Lethal Paintings assets from your images"),
		Description:    l10n.T("postergen composites every input image into every poster, tips and painting template."),
		Version:        version,
		Writer:         stdout,
		ErrWriter:      stderr,
		Flags:          flags(),
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			var err error
			code, err = generate(c, stdout, stderr)
			return err
		},
	}

	if err := app.RunContext(ctx, args); err != nil {
		fmt.Fprintln(stderr, l10n.F("Error: %s", err))
		if code == exitOK {
			code = exitFatal
		}
	}
	return code
}

func flags() []cli.Flag {
	return []cli.Flag{
		// Directories
		&cli.StringFlag{
			Name:     "templates",
			Aliases:  []string{"t"},
			Value:    "./templates",
			Usage:    l10n.T("Directory containing poster_template.png and painting_template.png"),
			EnvVars:  []string{"POSTERGEN_TEMPLATES"},
			Category: l10n.T(catDirectories),
		},
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Value:    "./input",
			Usage:    l10n.T("Directory containing the source images"),
			EnvVars:  []string{"POSTERGEN_INPUT"},
			Category: l10n.T(catDirectories),
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Value:    "./output",
			Usage:    l10n.T("Output root directory"),
			EnvVars:  []string{"POSTERGEN_OUTPUT"},
			Category: l10n.T(catDirectories),
		},
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML configuration file (flags override its values)"),
			EnvVars:  []string{"POSTERGEN_CONFIG"},
			Category: l10n.T(catDirectories),
		},

		// Output
		&cli.StringFlag{
			Name:     "preset",
			Aliases:  []string{"p"},
			Value:    string(postergen.PresetFlat),
			Usage:    l10n.T("Output layout preset (flat, mod)"),
			EnvVars:  []string{"POSTERGEN_PRESET"},
			Category: l10n.T(catOutput),
		},
		&cli.StringFlag{
			Name:     "format",
			Value:    "png",
			Usage:    l10n.T("Output image format (png, jpeg)"),
			EnvVars:  []string{"POSTERGEN_FORMAT"},
			Category: l10n.T(catOutput),
		},
		&cli.IntFlag{
			Name:     "quality",
			Value:    postergen.DefaultQuality,
			Usage:    l10n.T("JPEG quality (1-100)"),
			EnvVars:  []string{"POSTERGEN_QUALITY"},
			Category: l10n.T(catOutput),
		},

		// Processing
		&cli.IntFlag{
			Name:     "workers",
			Aliases:  []string{"w"},
			Usage:    l10n.T("Number of parallel workers (0 = one per CPU)"),
			EnvVars:  []string{"POSTERGEN_WORKERS"},
			Category: l10n.T(catProcessing),
		},
		&cli.StringFlag{
			Name:     "filter",
			Value:    string(ports.FilterLanczos),
			Usage:    l10n.T("Resampling filter (lanczos, catmullrom, linear, box)"),
			EnvVars:  []string{"POSTERGEN_FILTER"},
			Category: l10n.T(catProcessing),
		},
		&cli.StringFlag{
			Name:     "tips-background",
			Usage:    l10n.T("Background color of the tips sheet (hex, e.g. #00000000)"),
			EnvVars:  []string{"POSTERGEN_TIPS_BACKGROUND"},
			Category: l10n.T(catProcessing),
		},
		&cli.BoolFlag{
			Name:     "no-fail-on-error",
			Usage:    l10n.T("Exit with status 0 even when some assets failed"),
			EnvVars:  []string{"POSTERGEN_NO_FAIL_ON_ERROR"},
			Category: l10n.T(catProcessing),
		},

		// Reporting
		&cli.StringFlag{
			Name:     "summary",
			Aliases:  []string{"s"},
			Usage:    l10n.T("Write a Markdown summary of the run to this file"),
			EnvVars:  []string{"POSTERGEN_SUMMARY"},
			Category: l10n.T(catReporting),
		},

		// Debug
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save template previews and intermediate images"),
			EnvVars:  []string{"POSTERGEN_DEBUG"},
			Category: l10n.T(catDebug),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Value:    "./debug",
			Usage:    l10n.T("Directory for debug output"),
			EnvVars:  []string{"POSTERGEN_DEBUG_DIR"},
			Category: l10n.T(catDebug),
		},

		// Logging
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    "info",
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			EnvVars:  []string{"POSTERGEN_LOG_LEVEL"},
			Category: l10n.T(catLogging),
		},
		&cli.StringFlag{
			Name:     "log-format",
			Value:    "console",
			Usage:    l10n.T("Log format (console, json)"),
			EnvVars:  []string{"POSTERGEN_LOG_FORMAT"},
			Category: l10n.T(catLogging),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"q"},
			Usage:    l10n.T("Suppress all log output"),
			EnvVars:  []string{"POSTERGEN_QUIET"},
			Category: l10n.T(catLogging),
		},
	}
}

// generate runs one generation and returns the exit code.
func generate(c *cli.Context, stdout, stderr io.Writer) (int, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return exitFatal, err
	}

	runID := uuid.NewString()
	log := newLogger(c.Bool("quiet"), cfg, runID, stdout, stderr)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := rasterrenderer.New()

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return exitFatal, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	preset, _ := postergen.ParsePreset(cfg.Preset)
	genConfig := cfg.ApplyTo(postergen.NewConfigBuilderForPreset(preset)).Build()

	orchConfig := genConfig.ToOrchestratorConfig()
	orchConfig.RunID = runID

	orch := postergen.NewOrchestrator(genConfig, fs, renderer, sink, log)

	result, runErr := orch.Run(ctx, orchConfig)

	if cfg.Summary != "" && (runErr == nil || errors.Is(runErr, context.Canceled)) {
		if err := writeSummary(fs, cfg.Summary, genConfig, orchConfig, result); err != nil {
			log.Error("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", cfg.Summary)
		}
	}

	if runErr != nil {
		return exitFatal, runErr
	}
	if genConfig.FailOnError && result.HasFailures() {
		return exitFailures, nil
	}
	return exitOK, nil
}

// loadConfig reads the optional config file and applies every flag that was
// set explicitly on the command line or through the environment.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("templates") {
		cfg.Templates = c.String("templates")
	}
	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("filter") {
		cfg.Filter = c.String("filter")
	}
	if c.IsSet("tips-background") {
		cfg.TipsBackground = c.String("tips-background")
	}
	if c.Bool("no-fail-on-error") {
		cfg.FailOnError = false
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger selects the logger for the configured format.
func newLogger(quiet bool, cfg config.Config, runID string, stdout, stderr io.Writer) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		return logger.NewJSON(stderr, level).WithRun(runID)
	}
	return logger.NewConsoleTo(stdout, stderr, level, isTerminal(stdout))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeSummary renders the run as Markdown.
func writeSummary(fs ports.FileSystem, path string, gen postergen.Config, oc orchestrator.Config, result orchestrator.RunResult) error {
	quality := 0
	if gen.Format == ports.FormatJPEG {
		quality = gen.Quality
	}

	summary := summarizer.NewBuilder().
		WithRun(result.RunID, result.Duration).
		WithDirectories(oc.TemplateDir, oc.InputDir, oc.OutputDir).
		WithSettings(summarizer.Settings{
			Preset:  string(gen.Preset),
			Format:  gen.Format.String(),
			Quality: quality,
			Filter:  string(gen.Filter),
			Workers: gen.Workers,
		}).
		WithCounts(result.Templates, result.Inputs).
		WithOutcomes(result.Outcomes).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(fs, formatter).Write(path, summary)
}
