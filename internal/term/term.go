// Package term provides the terminal primitives the browser draws with:
// cursor movement, cursor visibility, raw key reads and the window size.
package term

import (
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	xterm "github.com/charmbracelet/x/term"

	"github.com/studiowebux/doh/internal/keybinds"
	"github.com/studiowebux/doh/internal/logging"
)

const (
	// DefaultWidth and DefaultHeight are used when the size is unknown
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Capability produces the control sequences for cursor handling.
// Counts below one produce no output.
type Capability interface {
	CursorUp(n int) string
	CursorDown(n int) string
	CursorBack(n int) string
	ShowCursor(visible bool) string
}

// ANSI implements Capability with ANSI escape sequences
type ANSI struct{}

func (ANSI) CursorUp(n int) string {
	if n < 1 {
		return ""
	}
	return ansi.CursorUp(n)
}

func (ANSI) CursorDown(n int) string {
	if n < 1 {
		return ""
	}
	return ansi.CursorDown(n)
}

func (ANSI) CursorBack(n int) string {
	if n < 1 {
		return ""
	}
	return ansi.CursorBackward(n)
}

func (ANSI) ShowCursor(visible bool) string {
	if visible {
		return ansi.ShowCursor
	}
	return ansi.HideCursor
}

// Console is the process terminal
type Console struct {
	ANSI
	in   *os.File
	out  *os.File
	keys *keybinds.Reader
}

// NewConsole wraps in and out. Virtual terminal processing is enabled on
// out where the platform needs it.
func NewConsole(in, out *os.File) *Console {
	if err := EnableVirtualTerminal(out); err != nil {
		logging.Warn("virtual terminal processing unavailable", logging.Err(err))
	}
	return &Console{
		in:   in,
		out:  out,
		keys: keybinds.NewReader(in),
	}
}

// Writer is where the console draws
func (c *Console) Writer() io.Writer {
	return c.out
}

// ReadKey waits for a single key press. The input is in raw mode only for
// the duration of the read, so output written between reads keeps its
// normal line handling.
func (c *Console) ReadKey() (string, error) {
	fd := c.in.Fd()
	if xterm.IsTerminal(fd) {
		state, err := xterm.MakeRaw(fd)
		if err != nil {
			return "", err
		}
		defer xterm.Restore(fd, state)
	}

	key, err := c.keys.ReadKey()
	if err != nil {
		return "", err
	}
	logging.Debug("key", logging.String("key", key))
	return key, nil
}

// Size returns the terminal width and height, or 80x24 when unknown
func (c *Console) Size() (width, height int) {
	w, h, err := xterm.GetSize(c.out.Fd())
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// IsTerminal reports whether both ends are attached to a terminal
func (c *Console) IsTerminal() bool {
	return xterm.IsTerminal(c.in.Fd()) && xterm.IsTerminal(c.out.Fd())
}
