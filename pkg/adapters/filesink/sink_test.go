package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/postergen/pkg/mocks"
	"github.com/user/postergen/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveRunJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`{"outcomes": []}`)
	if err := sink.SaveRunJSON(data); err != nil {
		t.Fatalf("SaveRunJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "run.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveImages(t *testing.T) {
	fs := mocks.NewFileSystem()
	var encoded []ports.ImageFormat
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			encoded = append(encoded, format)
			return []byte("PNG"), nil
		},
	}
	sink := New(testBaseDir, fs, renderer)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	if err := sink.SaveTemplatePreview("poster", img); err != nil {
		t.Fatalf("SaveTemplatePreview failed: %v", err)
	}
	if err := sink.SaveFitted("poster", "cat", 2, img); err != nil {
		t.Fatalf("SaveFitted failed: %v", err)
	}
	if err := sink.SaveComposite("poster", "cat", img); err != nil {
		t.Fatalf("SaveComposite failed: %v", err)
	}

	expected := []string{
		filepath.Join(testBaseDir, "templates", "poster.png"),
		filepath.Join(testBaseDir, "fitted", "poster_cat_2.png"),
		filepath.Join(testBaseDir, "composite", "poster_cat.png"),
	}
	for _, path := range expected {
		if _, ok := fs.GetFile(path); !ok {
			t.Errorf("expected file at %s", path)
		}
	}

	for i, f := range encoded {
		if f != ports.FormatPNG {
			t.Errorf("encode %d: expected PNG, got %v", i, f)
		}
	}
}

func TestSink_EncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveComposite("poster", "cat", image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected encode error to propagate")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected nothing written on encode error")
	}
}
