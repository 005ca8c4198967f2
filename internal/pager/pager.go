// Package pager shows text one terminal screen at a time.
package pager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultTabWidth is how many spaces replace a tab
	DefaultTabWidth = 4
	defaultWidth    = 80
	defaultHeight   = 24
)

// Result is how a paging session ended
type Result int

const (
	// Completed means every screen was shown
	Completed Result = iota
	// Stopped means the reader stopped before the last screen
	Stopped
	// NotText means the input is not UTF-8 and nothing was written
	NotText
)

func (r Result) String() string {
	switch r {
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	case NotText:
		return "not text"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// KeyReader blocks until one key is pressed.
// Multi-byte sequences are returned as a single key name.
type KeyReader interface {
	ReadKey() (string, error)
}

// Options configures a paging session.
type Options struct {
	Width  int
	Height int
	// Label names the content in every footer
	Label    string
	TabWidth int
	// IsStop reports whether a key pressed on a non-final screen stops
	// paging. Defaults to the Escape key.
	IsStop func(key string) bool
	// Highlight decorates a wrapped line before it is printed.
	// It must not change the visible width.
	Highlight func(line string) string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	if o.TabWidth <= 0 {
		o.TabWidth = DefaultTabWidth
	}
	if o.IsStop == nil {
		o.IsStop = func(key string) bool { return key == "esc" }
	}
	return o
}

var errNotText = errors.New("not text")

// Page copies r to w a screen at a time, waiting for a key between
// screens. Input that is not valid UTF-8 yields NotText before anything
// is written.
func Page(r io.Reader, w io.Writer, keys KeyReader, opts Options) (Result, error) {
	opts = opts.withDefaults()

	lines, err := wrapLines(r, opts.Width, opts.TabWidth)
	if errors.Is(err, errNotText) {
		return NotText, nil
	}
	if err != nil {
		return Completed, err
	}

	screens := Split(lines, opts.Height-FooterRows(opts.Label, opts.Width))
	count := len(screens)

	result := Completed
	for i, screen := range screens {
		if i != 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return result, err
			}
		}

		var b strings.Builder
		for _, line := range screen {
			if opts.Highlight != nil {
				line = opts.Highlight(line)
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString(Footer(opts.Label, i, count))
		if _, err := io.WriteString(w, b.String()); err != nil {
			return result, err
		}

		key, err := keys.ReadKey()
		if errors.Is(err, io.EOF) {
			// Input closed: end the file as if the reader stopped
			if i != count-1 {
				result = Stopped
			}
			break
		}
		if err != nil {
			return result, err
		}
		if i != count-1 && opts.IsStop(key) {
			result = Stopped
			break
		}
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return result, err
	}
	return result, nil
}

// Footer is the status line printed under screen index of count
func Footer(label string, index, count int) string {
	if index >= count-1 {
		return fmt.Sprintf("<%s> <End of file> <press any key to stop>", label)
	}

	which := "next"
	if index+1 == count-1 {
		which = "last"
	}
	percent := int(math.Round(float64(index+1) / float64(count) * 100))
	return progressFooter(label, percent, which)
}

func progressFooter(label string, percent int, which string) string {
	return fmt.Sprintf("<%s> <%d%%> <press any key for %s screen> <press Escape to stop>", label, percent, which)
}

// FooterRows is how many extra terminal rows the longest footer for label
// wraps onto. Every screen reserves them so page boundaries do not move.
func FooterRows(label string, width int) int {
	if width <= 0 {
		return 0
	}
	longest := progressFooter(label, 100, "next")
	return utf8.RuneCountInString(longest) / width
}

// Split groups lines into screens of perScreen lines. There is always at
// least one screen, empty input giving one empty screen.
func Split(lines []string, perScreen int) [][]string {
	if perScreen < 1 {
		perScreen = 1
	}
	if len(lines) == 0 {
		return [][]string{nil}
	}

	screens := make([][]string, 0, (len(lines)+perScreen-1)/perScreen)
	for start := 0; start < len(lines); start += perScreen {
		end := min(start+perScreen, len(lines))
		screens = append(screens, lines[start:end])
	}
	return screens
}

// wrapLines reads all of r, normalizing line endings and tabs and
// hard-wrapping every line at width runes.
func wrapLines(r io.Reader, width, tabWidth int) ([]string, error) {
	tab := strings.Repeat(" ", tabWidth)
	br := bufio.NewReader(r)

	var out []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if !utf8.ValidString(line) {
				return nil, errNotText
			}
			line = strings.NewReplacer("\r", "", "\n", "", "\t", tab).Replace(line)
			out = append(out, Wrap(line, width)...)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Wrap cuts line into chunks of width runes. An empty line is one empty chunk.
func Wrap(line string, width int) []string {
	if line == "" {
		return []string{""}
	}

	runes := []rune(line)
	chunks := make([]string, 0, len(runes)/width+1)
	for start := 0; start < len(runes); start += width {
		end := min(start+width, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
