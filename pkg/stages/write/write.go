// Package write implements the output stage: composites are encoded and
// published atomically under the output root.
package write

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
)

// Stage encodes and writes composites.
type Stage struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new write stage.
func NewStage(fs ports.FileSystem, renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		fs:       fs,
		renderer: renderer,
		logger:   logger.WithComponent("write"),
	}
}

// Execute writes input.Result to its derived path. An existing file is
// replaced; a failed write never leaves a partial file at the path.
func (s *Stage) Execute(ctx context.Context, input pipeline.WriteInput) (pipeline.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.WriteResult{}, err
	}

	r := input.Result
	path := OutputPath(input.OutputRoot, input.Layout, r.Category, r.Template, r.Source, input.Format)

	if r.Image == nil {
		return pipeline.WriteResult{}, &pipeline.WriteError{Path: path, Err: fmt.Errorf("nil image")}
	}

	data, err := s.renderer.EncodeImage(r.Image, input.Format, input.Quality)
	if err != nil {
		return pipeline.WriteResult{}, &pipeline.WriteError{Path: path, Err: fmt.Errorf("encode %s: %w", input.Format, err)}
	}

	if err := s.fs.MkdirAll(filepath.Dir(path)); err != nil {
		return pipeline.WriteResult{}, &pipeline.WriteError{Path: path, Err: err}
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		return pipeline.WriteResult{}, &pipeline.WriteError{Path: path, Err: err}
	}

	s.logger.Debug("Wrote %s (%d bytes)", path, len(data))

	return pipeline.WriteResult{Path: path, Bytes: len(data)}, nil
}

// OutputPath derives root/<category dir>/<template>_<source>.<ext>.
// Distinct (template, source) pairs never share a path.
func OutputPath(root string, layout pipeline.OutputLayout, category pipeline.Category, template, source string, format ports.ImageFormat) string {
	name := fmt.Sprintf("%s_%s.%s", template, source, format.Ext())
	return filepath.Join(root, filepath.FromSlash(layout.Dir(category)), name)
}
