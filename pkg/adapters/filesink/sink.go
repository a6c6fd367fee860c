// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/postergen/pkg/ports"
)

// Sink saves debug output to files below baseDir:
//
//	templates/<template>.png          template with slots outlined
//	fitted/<template>_<source>_<n>.png fitted buffer for slot n
//	composite/<template>_<source>.png  composite before encoding
//	run.json                           per-pair outcomes
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveTemplatePreview saves a template preview image.
func (s *Sink) SaveTemplatePreview(template string, img image.Image) error {
	return s.savePNG(filepath.Join(s.baseDir, "templates", template+".png"), img)
}

// SaveFitted saves the fitted buffer for one slot.
func (s *Sink) SaveFitted(template, source string, slot int, img image.Image) error {
	name := fmt.Sprintf("%s_%s_%d.png", template, source, slot)
	return s.savePNG(filepath.Join(s.baseDir, "fitted", name), img)
}

// SaveComposite saves a composited buffer.
func (s *Sink) SaveComposite(template, source string, img image.Image) error {
	name := fmt.Sprintf("%s_%s.png", template, source)
	return s.savePNG(filepath.Join(s.baseDir, "composite", name), img)
}

// SaveRunJSON saves the run outcomes as JSON.
func (s *Sink) SaveRunJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "run.json"), data)
}

func (s *Sink) savePNG(path string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
