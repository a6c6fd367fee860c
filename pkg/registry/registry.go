// Package registry loads the fixed template set and indexes it by name.
package registry

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
)

var (
	// ErrNoDefinitions is returned when a loader has nothing to load.
	ErrNoDefinitions = errors.New("registry: no template definitions")

	// ErrDuplicateName is returned when two definitions share a name.
	ErrDuplicateName = errors.New("registry: duplicate template name")

	// ErrNoRegions is returned for a definition without placement regions.
	ErrNoRegions = errors.New("registry: template has no placement regions")
)

// slotColor outlines slots in template previews.
var slotColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Registry is an immutable, ordered set of loaded templates.
type Registry struct {
	templates []*pipeline.Template
	byName    map[string]*pipeline.Template
}

// Templates returns the templates in definition order.
func (r *Registry) Templates() []*pipeline.Template {
	out := make([]*pipeline.Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// Get looks a template up by name.
func (r *Registry) Get(name string) (*pipeline.Template, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Len returns the number of templates.
func (r *Registry) Len() int {
	return len(r.templates)
}

// Loader reads template files and validates them against their definitions.
type Loader struct {
	fs          ports.FileSystem
	renderer    ports.Renderer
	sink        ports.DebugSink
	logger      ports.Logger
	definitions []Definition
}

// NewLoader creates a loader for the given definitions. A nil definitions
// slice selects DefaultDefinitions.
func NewLoader(fs ports.FileSystem, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger, definitions []Definition) *Loader {
	if definitions == nil {
		definitions = DefaultDefinitions()
	}
	return &Loader{
		fs:          fs,
		renderer:    renderer,
		sink:        sink,
		logger:      logger.WithComponent("registry"),
		definitions: definitions,
	}
}

// Load loads every definition from dir. Any failure is a
// *pipeline.TemplateLoadError: the template set is all-or-nothing.
func (l *Loader) Load(ctx context.Context, dir string) (*Registry, error) {
	if len(l.definitions) == 0 {
		return nil, &pipeline.TemplateLoadError{Path: dir, Err: ErrNoDefinitions}
	}

	ok, err := l.fs.IsDir(dir)
	if err != nil {
		return nil, &pipeline.TemplateLoadError{Path: dir, Err: err}
	}
	if !ok {
		return nil, &pipeline.TemplateLoadError{Path: dir, Err: pipeline.ErrTemplateDirMissing}
	}

	reg := &Registry{byName: make(map[string]*pipeline.Template, len(l.definitions))}
	for _, def := range l.definitions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, dup := reg.byName[def.Name]; dup {
			return nil, &pipeline.TemplateLoadError{Template: def.Name, Path: dir, Err: ErrDuplicateName}
		}

		t, err := l.loadOne(dir, def)
		if err != nil {
			return nil, err
		}
		reg.templates = append(reg.templates, t)
		reg.byName[t.Name] = t

		l.logger.Debug("Template %s: %dx%d, %d slots", t.Name, t.Bounds().Dx(), t.Bounds().Dy(), t.Slots())

		if l.sink.Enabled() {
			if err := l.sink.SaveTemplatePreview(t.Name, l.preview(t)); err != nil {
				l.logger.Warn("Failed to save debug output: %s", err)
			}
		}
	}
	return reg, nil
}

func (l *Loader) loadOne(dir string, def Definition) (*pipeline.Template, error) {
	path := filepath.Join(dir, def.File)
	fail := func(err error) error {
		return &pipeline.TemplateLoadError{Template: def.Name, Path: path, Err: err}
	}

	if len(def.Regions) == 0 {
		return nil, fail(ErrNoRegions)
	}

	var base image.Image
	if def.Synthetic() {
		path = "(synthetic)"
		if def.CanvasSize.X <= 0 || def.CanvasSize.Y <= 0 {
			return nil, fail(fmt.Errorf("%w: canvas %dx%d", pipeline.ErrInvalidRegion, def.CanvasSize.X, def.CanvasSize.Y))
		}
		bg := def.Background
		if bg == nil {
			bg = color.Transparent
		}
		l.logger.Debug("Creating synthetic template %s (%dx%d)", def.Name, def.CanvasSize.X, def.CanvasSize.Y)
		base = l.renderer.CreateCanvas(def.CanvasSize.X, def.CanvasSize.Y, bg).ToImage()
	} else {
		l.logger.Debug("Loading template %s from %s", def.Name, path)
		img, err := l.decodeFile(path)
		if err != nil {
			return nil, fail(err)
		}
		base = img
	}
	base = normalize(base)

	for i, r := range def.Regions {
		if err := r.Validate(base.Bounds()); err != nil {
			return nil, fail(fmt.Errorf("slot %d: %w", i, err))
		}
	}

	var overlay image.Image
	if def.OverlayFile != "" {
		overlayPath := filepath.Join(dir, def.OverlayFile)
		img, err := l.decodeFile(overlayPath)
		if err != nil {
			return nil, &pipeline.TemplateLoadError{Template: def.Name, Path: overlayPath, Err: fmt.Errorf("overlay: %w", err)}
		}
		img = normalize(img)
		if img.Bounds() != base.Bounds() {
			return nil, &pipeline.TemplateLoadError{
				Template: def.Name,
				Path:     overlayPath,
				Err:      fmt.Errorf("%w: overlay %v, template %v", pipeline.ErrSizeMismatch, img.Bounds(), base.Bounds()),
			}
		}
		overlay = img
	}

	return &pipeline.Template{
		Name:     def.Name,
		Category: def.Category,
		Base:     base,
		Regions:  append([]pipeline.Region(nil), def.Regions...),
		Mask:     def.Mask,
		Overlay:  overlay,
	}, nil
}

func (l *Loader) decodeFile(path string) (image.Image, error) {
	exists, err := l.fs.Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, pipeline.ErrTemplateMissing
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := l.renderer.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", pipeline.ErrInvalidRegion)
	}
	return img, nil
}

// preview draws the template with every slot outlined and numbered.
func (l *Loader) preview(t *pipeline.Template) image.Image {
	b := t.Bounds()
	canvas := l.renderer.CreateCanvas(b.Dx(), b.Dy(), color.Transparent)
	canvas.DrawImage(t.Base, 0, 0)
	for i, r := range t.Regions {
		canvas.DrawRectStroke(r.X, r.Y, r.Width, r.Height, slotColor, 2)
		canvas.DrawText(fmt.Sprintf("%d %s", i, r.Policy), r.X+4, r.Y+10, slotColor)
	}
	return canvas.ToImage()
}

// normalize returns img with its origin at (0,0), copying only when needed.
func normalize(img image.Image) image.Image {
	b := img.Bounds()
	if b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
