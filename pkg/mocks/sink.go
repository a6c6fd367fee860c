package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/postergen/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Previews   map[string]image.Image
	Fitted     map[string]image.Image // key: template/source/slot
	Composites map[string]image.Image // key: template/source
	RunJSON    []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		Previews:   make(map[string]image.Image),
		Fitted:     make(map[string]image.Image),
		Composites: make(map[string]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveTemplatePreview(template string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Previews[template] = img
	return nil
}

func (m *DebugSink) SaveFitted(template, source string, slot int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fitted[fmt.Sprintf("%s/%s/%d", template, source, slot)] = img
	return nil
}

func (m *DebugSink) SaveComposite(template, source string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Composites[template+"/"+source] = img
	return nil
}

func (m *DebugSink) SaveRunJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunJSON = data
	return nil
}

// Counts returns the number of previews, fitted buffers and composites saved.
func (m *DebugSink) Counts() (previews, fitted, composites int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Previews), len(m.Fitted), len(m.Composites)
}

var _ ports.DebugSink = (*DebugSink)(nil)
