package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveTemplatePreview saves a template with its placement slots outlined.
	SaveTemplatePreview(template string, img image.Image) error

	// SaveFitted saves the fitted buffer produced for one slot of a pair.
	SaveFitted(template, source string, slot int, img image.Image) error

	// SaveComposite saves a composited buffer before encoding.
	SaveComposite(template, source string, img image.Image) error

	// SaveRunJSON saves the per-pair outcomes of a run as JSON.
	SaveRunJSON(data []byte) error
}
