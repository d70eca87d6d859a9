package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/kamal-hamza/shot-cli/internal/core/ports"
)

// ErrUnavailable is returned when no clipboard utility is installed
var ErrUnavailable = errors.New("clipboard unavailable (install xclip, xsel or wl-clipboard)")

// System writes to the operating system clipboard
type System struct{}

// Ensure it implements the interface
var _ ports.Clipboard = System{}

// New returns the system clipboard sink
func New() System {
	return System{}
}

// WriteAll replaces the clipboard contents
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility was found
func Available() bool {
	return !clipboard.Unsupported
}
