package host

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no system clipboard tool is available.
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")

// Clipboard writes to the system clipboard.
type Clipboard struct{}

// WriteAll replaces the clipboard contents with text.
func (Clipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
