package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateDirMissing is returned when the template directory does not exist.
	ErrTemplateDirMissing = errors.New("pipeline: template directory not found")

	// ErrTemplateMissing is returned when a required template file does not exist.
	ErrTemplateMissing = errors.New("pipeline: template file not found")

	// ErrInvalidRegion is returned for a region with a negative offset or empty extent.
	ErrInvalidRegion = errors.New("pipeline: invalid placement region")

	// ErrRegionOutOfBounds is returned when a region does not fit its template.
	ErrRegionOutOfBounds = errors.New("pipeline: placement region out of bounds")

	// ErrSlotMismatch is returned when the fitted buffers do not match the template slots.
	ErrSlotMismatch = errors.New("pipeline: fitted buffers do not match template slots")

	// ErrSizeMismatch is returned when a buffer does not have the expected dimensions.
	ErrSizeMismatch = errors.New("pipeline: buffer size mismatch")

	// ErrInputDirMissing is returned when the input path is not a directory.
	ErrInputDirMissing = errors.New("pipeline: input directory not found")

	// ErrDuplicateSource is returned for an input whose base name was already
	// taken by an earlier input; both would publish to the same path.
	ErrDuplicateSource = errors.New("pipeline: duplicate source name")
)

// TemplateLoadError aborts the whole run: a required template is missing,
// corrupt, or has no usable placement geometry.
type TemplateLoadError struct {
	Template string
	Path     string
	Err      error
}

func (e *TemplateLoadError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("load templates from %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load template %q (%s): %v", e.Template, e.Path, e.Err)
}

func (e *TemplateLoadError) Unwrap() error { return e.Err }

// DecodeError reports a source image that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidImageError reports an image with degenerate dimensions.
type InvalidImageError struct {
	Name   string
	Width  int
	Height int
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image %q: degenerate size %dx%d", e.Name, e.Width, e.Height)
}

// CompositeError reports an internal invariant violation while fitting or
// compositing. It indicates a registry bug rather than bad input.
type CompositeError struct {
	Template string
	Err      error
}

func (e *CompositeError) Error() string {
	return fmt.Sprintf("composite %q: %v", e.Template, e.Err)
}

func (e *CompositeError) Unwrap() error { return e.Err }

// WriteError reports an output that could not be encoded or persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ErrorKind returns a short name for the pipeline error class of err, used in
// summaries. Unknown errors yield "error".
func ErrorKind(err error) string {
	var (
		tle *TemplateLoadError
		de  *DecodeError
		ie  *InvalidImageError
		ce  *CompositeError
		we  *WriteError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &tle):
		return "TemplateLoadError"
	case errors.As(err, &ie):
		return "InvalidImageError"
	case errors.As(err, &de):
		return "DecodeError"
	case errors.As(err, &ce):
		return "CompositeError"
	case errors.As(err, &we):
		return "WriteError"
	default:
		return "error"
	}
}
