// ABOUTME: Clipboard writers for the copy action
// ABOUTME: System uses the OS clipboard; Buffer keeps the last copy in memory for headless hosts

package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the host has no clipboard utility
var ErrUnsupported = errors.New("system clipboard is not available")

// System writes to the OS clipboard
type System struct{}

// NewSystem returns a System writer
func NewSystem() *System {
	return &System{}
}

// WriteText replaces the clipboard contents
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Buffer holds the last copied text
type Buffer struct {
	mu   sync.RWMutex
	text string
}

// NewBuffer returns an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// WriteText stores text
func (b *Buffer) WriteText(text string) error {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
	return nil
}

// Text returns the last copied text
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}
