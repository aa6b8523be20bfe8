package editor

import "github.com/atotto/clipboard"

// Clipboard is a system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard (xclip, xsel, wl-clipboard,
// pbcopy or the Windows API). Where none is available its calls fail and
// sessions fall back to the kill ring.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
