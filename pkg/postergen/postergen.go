package postergen

import (
	"github.com/user/postergen/pkg/orchestrator"
	"github.com/user/postergen/pkg/ports"
	"github.com/user/postergen/pkg/registry"
	"github.com/user/postergen/pkg/stages/composite"
	"github.com/user/postergen/pkg/stages/decode"
	"github.com/user/postergen/pkg/stages/fit"
	"github.com/user/postergen/pkg/stages/write"
)

// NewOrchestrator wires the registry loader and every stage for c.
func NewOrchestrator(c Config, fs ports.FileSystem, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *orchestrator.Orchestrator {
	return orchestrator.New(
		registry.NewLoader(fs, renderer, sink, logger, c.Definitions()),
		decode.NewStage(fs, renderer, logger),
		fit.NewStage(renderer, logger),
		composite.NewStage(sink, logger),
		write.NewStage(fs, renderer, logger),
		fs,
		sink,
		logger,
	)
}
