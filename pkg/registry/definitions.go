package registry

import (
	"image"
	"image/color"

	"github.com/user/postergen/pkg/pipeline"
)

// Template file names expected in the template directory.
const (
	PosterTemplateFile   = "poster_template.png"
	PaintingTemplateFile = "painting_template.png"
)

// Tips sheets are generated on a transparent canvas of this size.
const (
	TipsWidth  = 796
	TipsHeight = 1024
)

// Definition is the fixed geometry of one template. Regions are in template
// pixel space; they are not user-configurable.
type Definition struct {
	Name     string
	Category pipeline.Category

	// File is relative to the template directory. Empty means the template
	// is synthetic: a Canvas of CanvasSize filled with Background.
	File       string
	CanvasSize image.Point
	Background color.Color

	Regions []pipeline.Region
	Mask    pipeline.MaskMode

	// OverlayFile, relative to the template directory, is drawn above the
	// inserted content. Optional.
	OverlayFile string
}

// Synthetic reports whether the template has no backing file.
func (d Definition) Synthetic() bool {
	return d.File == ""
}

// posterSlots are the five poster frames on the Lethal Posters atlas.
// Posters are fitted inside their frame and pinned to its top-right corner.
var posterSlots = []pipeline.Region{
	{X: 0, Y: 0, Width: 341, Height: 559, Policy: pipeline.FitContain, Anchor: pipeline.AnchorTopRight},
	{X: 346, Y: 0, Width: 284, Height: 559, Policy: pipeline.FitContain, Anchor: pipeline.AnchorTopRight},
	{X: 641, Y: 58, Width: 274, Height: 243, Policy: pipeline.FitContain, Anchor: pipeline.AnchorTopRight},
	{X: 184, Y: 620, Width: 411, Height: 364, Policy: pipeline.FitContain, Anchor: pipeline.AnchorTopRight},
	{X: 632, Y: 320, Width: 372, Height: 672, Policy: pipeline.FitContain, Anchor: pipeline.AnchorTopRight},
}

// DefaultDefinitions returns the template set for Lethal Posters and Lethal
// Paintings. The returned slice is freshly allocated.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name:     "poster",
			Category: pipeline.CategoryPosters,
			File:     PosterTemplateFile,
			Regions:  append([]pipeline.Region(nil), posterSlots...),
		},
		{
			Name:       "tips",
			Category:   pipeline.CategoryTips,
			CanvasSize: image.Pt(TipsWidth, TipsHeight),
			Background: color.Transparent,
			Regions: []pipeline.Region{
				{X: 0, Y: 0, Width: TipsWidth, Height: TipsHeight, Policy: pipeline.FitContain, Anchor: pipeline.AnchorTopRight},
			},
		},
		{
			Name:     "painting",
			Category: pipeline.CategoryPaintings,
			File:     PaintingTemplateFile,
			Regions: []pipeline.Region{
				{X: 264, Y: 19, Width: 243, Height: 324, Policy: pipeline.FitCover, Anchor: pipeline.AnchorCenter},
			},
		},
	}
}

// WithBackground returns a copy of defs where every synthetic template uses bg.
func WithBackground(defs []Definition, bg color.Color) []Definition {
	out := make([]Definition, len(defs))
	copy(out, defs)
	for i := range out {
		if out[i].Synthetic() {
			out[i].Background = bg
		}
	}
	return out
}
