package ports

import (
	"image"
	"image/color"
	"io"
)

// Renderer abstracts raster decoding, encoding, and resampling.
type Renderer interface {
	// DecodeImage decodes image data and reports the detected format name
	// ("png", "jpeg", "webp", ...).
	DecodeImage(data []byte) (image.Image, string, error)

	// DecodeConfig reads only the image header.
	DecodeConfig(r io.Reader) (image.Config, string, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resamples an image to exactly width x height.
	// The returned image has its origin at (0,0).
	ResizeImage(img image.Image, width, height int, filter ResampleFilter) image.Image

	// CreateCanvas creates a new drawing canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas
}

// Canvas provides drawing operations used for synthetic templates and
// debug previews.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawRectStroke draws a rectangle outline.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// DrawText draws text anchored at its left edge, vertically centered on y.
	DrawText(text string, x, y int, c color.Color)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)

// Ext returns the file extension (without dot) used for the format.
func (f ImageFormat) Ext() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	default:
		return "png"
	}
}

// String returns the format name.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	default:
		return "png"
	}
}

// ParseImageFormat parses "png", "jpeg" or "jpg". Unknown names yield PNG
// and ok=false.
func ParseImageFormat(s string) (ImageFormat, bool) {
	switch s {
	case "png", "":
		return FormatPNG, true
	case "jpeg", "jpg":
		return FormatJPEG, true
	default:
		return FormatPNG, false
	}
}

// ResampleFilter names an interpolation kernel. Nearest-neighbour is
// deliberately absent.
type ResampleFilter string

const (
	FilterLanczos    ResampleFilter = "lanczos"
	FilterCatmullRom ResampleFilter = "catmullrom"
	FilterLinear     ResampleFilter = "linear"
	FilterBox        ResampleFilter = "box"
)

// ParseResampleFilter parses a filter name. Unknown names yield Lanczos and
// ok=false.
func ParseResampleFilter(s string) (ResampleFilter, bool) {
	switch ResampleFilter(s) {
	case FilterLanczos, FilterCatmullRom, FilterLinear, FilterBox:
		return ResampleFilter(s), true
	case "":
		return FilterLanczos, true
	default:
		return FilterLanczos, false
	}
}
