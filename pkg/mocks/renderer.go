package mocks

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/user/postergen/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer. Unset functions fall
// back to cheap fakes: decode yields a 100x100 image, resize yields a blank
// buffer of the requested size.
type Renderer struct {
	DecodeImageFunc  func(data []byte) (image.Image, string, error)
	DecodeConfigFunc func(r io.Reader) (image.Config, string, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int, filter ports.ResampleFilter) image.Image
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, string, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), "png", nil
}

func (m *Renderer) DecodeConfig(r io.Reader) (image.Config, string, error) {
	if m.DecodeConfigFunc != nil {
		return m.DecodeConfigFunc(r)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	img, format, err := m.DecodeImage(buf.Bytes())
	if err != nil {
		return image.Config{}, "", err
	}
	b := img.Bounds()
	return image.Config{ColorModel: img.ColorModel(), Width: b.Dx(), Height: b.Dy()}, format, nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int, filter ports.ResampleFilter) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height, filter)
	}
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, bg)
		}
	}
	return &Canvas{img: img}
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas. It records calls and only
// paints the background.
type Canvas struct {
	img *image.RGBA

	Images  int
	Strokes []image.Rectangle
	Texts   []string
}

func (m *Canvas) DrawImage(img image.Image, x, y int) { m.Images++ }

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.Strokes = append(m.Strokes, image.Rect(x, y, x+w, y+h))
}

func (m *Canvas) DrawText(text string, x, y int, c color.Color) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
