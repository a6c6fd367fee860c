package pipeline

import (
	"fmt"
	"image"
	"time"

	"github.com/user/postergen/pkg/ports"
)

// =============================================================================
// Template Types
// =============================================================================

// Category is the asset kind a template produces. Its value doubles as the
// output subdirectory name in the flat layout.
type Category string

const (
	CategoryPosters   Category = "posters"
	CategoryPaintings Category = "paintings"
	CategoryTips      Category = "tips"
)

// FitPolicy selects how a source image is fitted into a region.
type FitPolicy int

const (
	// FitCover scales until the region is filled and crops the overflow.
	FitCover FitPolicy = iota
	// FitContain scales until the image fits inside the region and leaves
	// the remainder transparent.
	FitContain
)

// String returns the policy name.
func (p FitPolicy) String() string {
	switch p {
	case FitCover:
		return "cover"
	case FitContain:
		return "contain"
	default:
		return "unknown"
	}
}

// Anchor positions a contained image inside its region.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorTopLeft
	AnchorTopRight
)

// Region is a placement rectangle in template pixel space.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
	Policy FitPolicy
	Anchor Anchor // only used by FitContain
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Validate checks the region against the template bounds.
func (r Region) Validate(bounds image.Rectangle) error {
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("%w: negative offset (%d,%d)", ErrInvalidRegion, r.X, r.Y)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: empty extent %dx%d", ErrInvalidRegion, r.Width, r.Height)
	}
	if !r.Rect().In(bounds) {
		return fmt.Errorf("%w: %v exceeds template bounds %v", ErrRegionOutOfBounds, r.Rect(), bounds)
	}
	return nil
}

// MaskMode selects which region pixels receive source content.
type MaskMode int

const (
	// MaskNone writes the whole region rectangle.
	MaskNone MaskMode = iota
	// MaskTemplateAlpha uses the template's own alpha inside the region as the
	// mask; fully transparent template pixels are left untouched.
	MaskTemplateAlpha
)

// Template is a loaded, immutable template. It is shared read-only by every
// pair that uses it.
type Template struct {
	Name     string
	Category Category
	// Base has its origin at (0,0).
	Base image.Image
	// Regions holds at least one slot. Slot 0 receives the pair's own source
	// image; further slots receive the following inputs in discovery order.
	Regions []Region
	Mask    MaskMode
	// Overlay is drawn over the inserted content. Nil when absent; otherwise
	// the same size as Base.
	Overlay image.Image
}

// Region returns the primary placement region.
func (t *Template) Region() Region {
	return t.Regions[0]
}

// Slots returns the number of placement regions.
func (t *Template) Slots() int {
	return len(t.Regions)
}

// Bounds returns the template bounds.
func (t *Template) Bounds() image.Rectangle {
	return t.Base.Bounds()
}

// =============================================================================
// Decode Stage Types
// =============================================================================

// DecodeInput names the file to decode.
type DecodeInput struct {
	Path string
}

// SourceImage is a fully decoded input image.
type SourceImage struct {
	Name   string // file base name without extension
	Path   string
	Format string
	Image  image.Image
}

// Width returns the decoded width.
func (s SourceImage) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the decoded height.
func (s SourceImage) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// AspectRatio returns width / height, or 0 for a degenerate image.
func (s SourceImage) AspectRatio() float64 {
	if s.Height() == 0 {
		return 0
	}
	return float64(s.Width()) / float64(s.Height())
}

// =============================================================================
// Fit Stage Types
// =============================================================================

// FitInput contains the source and the region it must fill.
type FitInput struct {
	Source SourceImage
	Region Region
	Filter ports.ResampleFilter
}

// FitResult holds a buffer of exactly Region.Width x Region.Height with its
// origin at (0,0).
type FitResult struct {
	Image image.Image
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositeInput pairs a template with one fitted buffer per slot.
type CompositeInput struct {
	Template *Template
	Fitted   []image.Image
	Source   string
}

// CompositeResult is a template-sized output buffer with its provenance.
type CompositeResult struct {
	Image    *image.RGBA
	Template string
	Category Category
	Source   string
}

// =============================================================================
// Write Stage Types
// =============================================================================

// OutputLayout maps categories to output subdirectories (slash separated,
// relative to the output root).
type OutputLayout map[Category]string

// Dir returns the subdirectory for a category, falling back to the category
// name.
func (l OutputLayout) Dir(c Category) string {
	if dir, ok := l[c]; ok && dir != "" {
		return dir
	}
	return string(c)
}

// FlatLayout writes each category to a directory named after it.
func FlatLayout() OutputLayout {
	return OutputLayout{
		CategoryPosters:   "posters",
		CategoryPaintings: "paintings",
		CategoryTips:      "tips",
	}
}

// ModLayout mirrors the plugin directories the Lethal Posters and Lethal
// Paintings mods read from.
func ModLayout() OutputLayout {
	return OutputLayout{
		CategoryPosters:   "BepInEx/plugins/LethalPosters/posters",
		CategoryTips:      "BepInEx/plugins/LethalPosters/tips",
		CategoryPaintings: "BepInEx/plugins/LethalPaintings/paintings",
	}
}

// WriteInput contains a composite and where to put it.
type WriteInput struct {
	Result     CompositeResult
	OutputRoot string
	Layout     OutputLayout
	Format     ports.ImageFormat
	Quality    int // JPEG only
}

// WriteResult reports the published file.
type WriteResult struct {
	Path  string
	Bytes int
}

// =============================================================================
// Job Types
// =============================================================================

// JobState is the lifecycle state of one (template, input) pair.
type JobState int

const (
	JobPending JobState = iota
	JobRunning
	JobSucceeded
	JobFailed
)

// String returns the state name.
func (s JobState) String() string {
	switch s {
	case JobPending:
		return "pending"
	case JobRunning:
		return "running"
	case JobSucceeded:
		return "succeeded"
	case JobFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is final.
func (s JobState) Terminal() bool {
	return s == JobSucceeded || s == JobFailed
}

// JobOutcome is the result record of one pair.
type JobOutcome struct {
	Template   string
	Source     string
	SourcePath string
	State      JobState
	OutputPath string // set when succeeded
	Bytes      int    // encoded size, set when succeeded
	Err        error  // set when failed
	Duration   time.Duration
}

// Succeeded reports whether the pair produced an output file.
func (o JobOutcome) Succeeded() bool {
	return o.State == JobSucceeded
}
