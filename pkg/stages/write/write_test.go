package write

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/postergen/pkg/adapters/logger"
	"github.com/user/postergen/pkg/mocks"
	"github.com/user/postergen/pkg/pipeline"
	"github.com/user/postergen/pkg/ports"
)

func composite(template, source string, category pipeline.Category) pipeline.CompositeResult {
	return pipeline.CompositeResult{
		Image:    image.NewRGBA(image.Rect(0, 0, 120, 180)),
		Template: template,
		Category: category,
		Source:   source,
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		layout   pipeline.OutputLayout
		category pipeline.Category
		format   ports.ImageFormat
		want     string
	}{
		{"flat poster", pipeline.FlatLayout(), pipeline.CategoryPosters, ports.FormatPNG, "out/posters/poster_a_cat.png"},
		{"flat painting jpeg", pipeline.FlatLayout(), pipeline.CategoryPaintings, ports.FormatJPEG, "out/paintings/poster_a_cat.jpg"},
		{"mod poster", pipeline.ModLayout(), pipeline.CategoryPosters, ports.FormatPNG, "out/BepInEx/plugins/LethalPosters/posters/poster_a_cat.png"},
		{"mod tips", pipeline.ModLayout(), pipeline.CategoryTips, ports.FormatPNG, "out/BepInEx/plugins/LethalPosters/tips/poster_a_cat.png"},
		{"mod painting", pipeline.ModLayout(), pipeline.CategoryPaintings, ports.FormatPNG, "out/BepInEx/plugins/LethalPaintings/paintings/poster_a_cat.png"},
		{"nil layout falls back to category", nil, pipeline.CategoryTips, ports.FormatPNG, "out/tips/poster_a_cat.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath("out", tt.layout, tt.category, "poster_a", "cat", tt.format)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPath_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for _, tpl := range []string{"poster_a", "poster_b"} {
		for _, src := range []string{"cat", "dog"} {
			p := OutputPath("out", pipeline.FlatLayout(), pipeline.CategoryPosters, tpl, src, ports.FormatPNG)
			if seen[p] {
				t.Errorf("duplicate path %s", p)
			}
			seen[p] = true
		}
	}
}

func TestStage_Execute(t *testing.T) {
	fs := mocks.NewFileSystem()
	var gotFormat ports.ImageFormat
	var gotQuality int
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			gotFormat, gotQuality = format, quality
			return []byte("encoded"), nil
		},
	}

	stage := NewStage(fs, renderer, logger.NewNoop())
	result, err := stage.Execute(context.Background(), pipeline.WriteInput{
		Result:     composite("poster_a", "cat", pipeline.CategoryPosters),
		OutputRoot: "output",
		Layout:     pipeline.FlatLayout(),
		Format:     ports.FormatJPEG,
		Quality:    80,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join("output", "posters", "poster_a_cat.jpg")
	if result.Path != want {
		t.Errorf("expected path %s, got %s", want, result.Path)
	}
	if result.Bytes != len("encoded") {
		t.Errorf("expected %d bytes, got %d", len("encoded"), result.Bytes)
	}
	if gotFormat != ports.FormatJPEG || gotQuality != 80 {
		t.Errorf("encoder called with %v/%d", gotFormat, gotQuality)
	}

	data, ok := fs.GetFile(want)
	if !ok || string(data) != "encoded" {
		t.Errorf("file not written: %q", data)
	}
	if isDir, _ := fs.IsDir(filepath.Join("output", "posters")); !isDir {
		t.Error("category directory not created")
	}
}

func TestStage_Execute_Overwrites(t *testing.T) {
	fs := mocks.NewFileSystem()
	path := filepath.Join("output", "posters", "poster_a_cat.png")
	fs.AddFile(path, []byte("old"))

	renderer := &mocks.Renderer{
		EncodeImageFunc: func(image.Image, ports.ImageFormat, int) ([]byte, error) {
			return []byte("new"), nil
		},
	}
	stage := NewStage(fs, renderer, logger.NewNoop())

	if _, err := stage.Execute(context.Background(), pipeline.WriteInput{
		Result:     composite("poster_a", "cat", pipeline.CategoryPosters),
		OutputRoot: "output",
		Layout:     pipeline.FlatLayout(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data, _ := fs.GetFile(path); string(data) != "new" {
		t.Errorf("expected overwrite, got %q", data)
	}
}

func TestStage_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		renderer *mocks.Renderer
		setup    func(*mocks.FileSystem)
		result   pipeline.CompositeResult
	}{
		{
			name: "encode failure",
			renderer: &mocks.Renderer{
				EncodeImageFunc: func(image.Image, ports.ImageFormat, int) ([]byte, error) {
					return nil, errors.New("encoder exploded")
				},
			},
			result: composite("poster_a", "cat", pipeline.CategoryPosters),
		},
		{
			name:     "write failure",
			renderer: &mocks.Renderer{},
			setup: func(fs *mocks.FileSystem) {
				fs.WriteFileFunc = func(string, []byte) error { return errors.New("disk full") }
			},
			result: composite("poster_a", "cat", pipeline.CategoryPosters),
		},
		{
			name:     "mkdir failure",
			renderer: &mocks.Renderer{},
			setup: func(fs *mocks.FileSystem) {
				fs.MkdirAllFunc = func(string) error { return errors.New("permission denied") }
			},
			result: composite("poster_a", "cat", pipeline.CategoryPosters),
		},
		{
			name:     "nil image",
			renderer: &mocks.Renderer{},
			result:   pipeline.CompositeResult{Template: "poster_a", Source: "cat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewFileSystem()
			if tt.setup != nil {
				tt.setup(fs)
			}
			stage := NewStage(fs, tt.renderer, logger.NewNoop())

			_, err := stage.Execute(context.Background(), pipeline.WriteInput{
				Result:     tt.result,
				OutputRoot: "output",
				Layout:     pipeline.FlatLayout(),
			})

			var we *pipeline.WriteError
			if !errors.As(err, &we) {
				t.Fatalf("expected WriteError, got %v", err)
			}
			if len(fs.GetAllFiles()) != 0 {
				t.Errorf("failed write left files behind: %v", fs.GetAllFiles())
			}
		})
	}
}
