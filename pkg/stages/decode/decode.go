// Package decode implements the image loading stage.
package decode

import (
	"context"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
)

// Stage reads and decodes one source image.
type Stage struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new decode stage.
func NewStage(fs ports.FileSystem, renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		fs:       fs,
		renderer: renderer,
		logger:   logger.WithComponent("decode"),
	}
}

// Execute decodes the file at input.Path. Read and decode failures are
// reported as *pipeline.DecodeError; an image without pixels as
// *pipeline.InvalidImageError.
func (s *Stage) Execute(ctx context.Context, input pipeline.DecodeInput) (pipeline.SourceImage, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.SourceImage{}, err
	}

	name := SourceName(input.Path)

	data, err := s.fs.ReadFile(input.Path)
	if err != nil {
		return pipeline.SourceImage{}, &pipeline.DecodeError{Path: input.Path, Err: err}
	}

	img, format, err := s.renderer.DecodeImage(data)
	if err != nil {
		return pipeline.SourceImage{}, &pipeline.DecodeError{Path: input.Path, Err: err}
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return pipeline.SourceImage{}, &pipeline.InvalidImageError{Name: name, Width: b.Dx(), Height: b.Dy()}
	}

	s.logger.Debug("Decoded %s: %s %dx%d", name, format, b.Dx(), b.Dy())

	return pipeline.SourceImage{
		Name:   name,
		Path:   input.Path,
		Format: format,
		Image:  img,
	}, nil
}

// Probe reads only the image header. It is used during discovery to find
// decodable inputs without holding their pixels.
func (s *Stage) Probe(path string) (image.Config, string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return image.Config{}, "", &pipeline.DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, format, err := s.renderer.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", &pipeline.DecodeError{Path: path, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, format, &pipeline.InvalidImageError{Name: SourceName(path), Width: cfg.Width, Height: cfg.Height}
	}
	return cfg, format, nil
}

// SourceName returns the file base name without its extension. It is the
// second half of every output file name.
func SourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Hidden reports whether a path names a dot file.
func Hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

