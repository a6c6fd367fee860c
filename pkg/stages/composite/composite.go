// Package composite implements the compositing stage: fitted buffers are
// drawn into their template slots and the overlay is applied on top.
package composite

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
)

// Stage composes a template with fitted slot content.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new composite stage.
func NewStage(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("composite"),
	}
}

// Execute returns a fresh template-sized buffer. The template itself is never
// modified, so it can be shared between concurrent pairs.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompositeInput) (result pipeline.CompositeResult, err error) {
	if err := ctx.Err(); err != nil {
		return pipeline.CompositeResult{}, err
	}

	t := input.Template
	if t == nil || t.Base == nil {
		return pipeline.CompositeResult{}, &pipeline.CompositeError{Err: fmt.Errorf("nil template")}
	}

	defer func() {
		if r := recover(); r != nil {
			result = pipeline.CompositeResult{}
			err = &pipeline.CompositeError{Template: t.Name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := validate(t, input.Fitted); err != nil {
		return pipeline.CompositeResult{}, &pipeline.CompositeError{Template: t.Name, Err: err}
	}

	s.logger.Debug("Compositing %d slots onto %s", t.Slots(), t.Name)

	bounds := t.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), t.Base, bounds.Min, draw.Src)

	for i, region := range t.Regions {
		fitted := input.Fitted[i]
		rect := region.Rect()
		switch t.Mask {
		case pipeline.MaskTemplateAlpha:
			draw.DrawMask(dst, rect, fitted, fitted.Bounds().Min, t.Base, rect.Min.Add(bounds.Min), draw.Over)
		default:
			draw.Draw(dst, rect, fitted, fitted.Bounds().Min, draw.Over)
		}
	}

	if t.Overlay != nil {
		draw.Draw(dst, dst.Bounds(), t.Overlay, t.Overlay.Bounds().Min, draw.Over)
	}

	if s.sink.Enabled() {
		if err := s.sink.SaveComposite(t.Name, input.Source, dst); err != nil {
			s.logger.Warn("Failed to save debug output: %s", err)
		}
	}

	return pipeline.CompositeResult{
		Image:    dst,
		Template: t.Name,
		Category: t.Category,
		Source:   input.Source,
	}, nil
}

func validate(t *pipeline.Template, fitted []image.Image) error {
	if len(fitted) != t.Slots() {
		return fmt.Errorf("%w: %d buffers for %d slots", pipeline.ErrSlotMismatch, len(fitted), t.Slots())
	}
	for i, region := range t.Regions {
		if err := region.Validate(t.Bounds().Sub(t.Bounds().Min)); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		if fitted[i] == nil {
			return fmt.Errorf("slot %d: %w: nil buffer", i, pipeline.ErrSizeMismatch)
		}
		size := fitted[i].Bounds().Size()
		if size.X != region.Width || size.Y != region.Height {
			return fmt.Errorf("slot %d: %w: buffer %dx%d, region %dx%d",
				i, pipeline.ErrSizeMismatch, size.X, size.Y, region.Width, region.Height)
		}
	}
	if t.Overlay != nil && t.Overlay.Bounds().Size() != t.Bounds().Size() {
		return fmt.Errorf("overlay: %w", pipeline.ErrSizeMismatch)
	}
	return nil
}
