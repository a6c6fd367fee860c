// Package fit implements the fit-and-resize stage: a source image is scaled
// and cropped (cover) or padded (contain) to exactly fill a placement region.
package fit

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
)

// Stage fits source images into regions.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new fit stage.
func NewStage(renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		logger:   logger.WithComponent("fit"),
	}
}

// Geometry describes how a source is scaled and where the region window sits
// relative to the scaled image.
//
// For cover, Offset is the top-left of the crop window inside the scaled
// image. For contain, Offset is where the scaled image is placed inside the
// region.
type Geometry struct {
	Scaled image.Point
	Offset image.Point
}

// Execute returns a buffer of exactly Region.Width x Region.Height.
func (s *Stage) Execute(ctx context.Context, input pipeline.FitInput) (pipeline.FitResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.FitResult{}, err
	}

	src := input.Source
	if src.Image == nil || src.Width() <= 0 || src.Height() <= 0 {
		return pipeline.FitResult{}, &pipeline.InvalidImageError{Name: src.Name, Width: src.Width(), Height: src.Height()}
	}

	r := input.Region
	if r.Width <= 0 || r.Height <= 0 {
		return pipeline.FitResult{}, fmt.Errorf("%w: empty extent %dx%d", pipeline.ErrInvalidRegion, r.Width, r.Height)
	}

	s.logger.Debug("Fitting %dx%d into %dx%d (%s)", src.Width(), src.Height(), r.Width, r.Height, r.Policy)

	switch r.Policy {
	case pipeline.FitCover:
		g := CoverGeometry(src.Width(), src.Height(), r.Width, r.Height)
		scaled := s.resize(src.Image, g.Scaled, input.Filter)
		return pipeline.FitResult{Image: extractSubImage(scaled, g.Offset.X, g.Offset.Y, r.Width, r.Height)}, nil

	case pipeline.FitContain:
		g := ContainGeometry(src.Width(), src.Height(), r.Width, r.Height, r.Anchor)
		scaled := s.resize(src.Image, g.Scaled, input.Filter)
		dst := imaging.New(r.Width, r.Height, color.Transparent)
		return pipeline.FitResult{Image: imaging.Paste(dst, scaled, g.Offset)}, nil

	default:
		return pipeline.FitResult{}, fmt.Errorf("fit: unknown policy %d", r.Policy)
	}
}

// resize scales img to size, skipping the resampler when the size already
// matches.
func (s *Stage) resize(img image.Image, size image.Point, filter ports.ResampleFilter) image.Image {
	b := img.Bounds()
	if b.Dx() == size.X && b.Dy() == size.Y {
		return img
	}
	return s.renderer.ResizeImage(img, size.X, size.Y, filter)
}

// CoverGeometry computes a uniform scale that makes a w x h image cover a
// rw x rh region, and the centered crop window. When the excess is odd the
// extra pixel is dropped at the right or bottom edge.
func CoverGeometry(w, h, rw, rh int) Geometry {
	scale := math.Max(float64(rw)/float64(w), float64(rh)/float64(h))

	sw := int(math.Round(float64(w) * scale))
	sh := int(math.Round(float64(h) * scale))
	if sw < rw {
		sw = rw
	}
	if sh < rh {
		sh = rh
	}

	return Geometry{
		Scaled: image.Pt(sw, sh),
		Offset: image.Pt((sw-rw)/2, (sh-rh)/2),
	}
}

// ContainGeometry computes a uniform scale that makes a w x h image fit
// inside a rw x rh region, and its position for the given anchor.
func ContainGeometry(w, h, rw, rh int, anchor pipeline.Anchor) Geometry {
	scale := math.Min(float64(rw)/float64(w), float64(rh)/float64(h))

	sw := clamp(int(math.Round(float64(w)*scale)), 1, rw)
	sh := clamp(int(math.Round(float64(h)*scale)), 1, rh)

	var off image.Point
	switch anchor {
	case pipeline.AnchorTopLeft:
		off = image.Pt(0, 0)
	case pipeline.AnchorTopRight:
		off = image.Pt(rw-sw, 0)
	default:
		off = image.Pt((rw-sw)/2, (rh-sh)/2)
	}

	return Geometry{Scaled: image.Pt(sw, sh), Offset: off}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// extractSubImage returns the width x height window at (x, y) relative to the
// image bounds. The result always has its origin at (0,0).
func extractSubImage(img image.Image, x, y, width, height int) image.Image {
	b := img.Bounds()
	rect := image.Rect(x, y, x+width, y+height).Add(b.Min)
	return imaging.Crop(img, rect)
}
