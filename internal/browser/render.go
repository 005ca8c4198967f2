package browser

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/studiowebux/doh/internal/entry"
)

const (
	markerSelected   = ">"
	markerUnselected = " "
	columnGap        = "  "
)

// listingHeader is the first line of a listing screen
func listingHeader(location string, page, pages int) string {
	return fmt.Sprintf("Contents of %s -- page %d/%d:", location, page+1, pages)
}

// formatRows lays the entries out in aligned name, size and timestamp
// columns, measuring display width so wide runes line up.
func formatRows(entries []entry.Entry, selected int) []string {
	var widths [2]int
	cells := make([][3]string, len(entries))
	for i, e := range entries {
		cells[i] = e.Columns()
		for c := range widths {
			widths[c] = max(widths[c], runewidth.StringWidth(cells[i][c]))
		}
	}

	rows := make([]string, len(entries))
	for i, row := range cells {
		var b strings.Builder
		if i == selected {
			b.WriteString(markerSelected)
		} else {
			b.WriteString(markerUnselected)
		}
		b.WriteString(runewidth.FillRight(row[0], widths[0]))
		b.WriteString(columnGap)
		b.WriteString(runewidth.FillRight(row[1], widths[1]))
		b.WriteString(columnGap)
		b.WriteString(row[2])
		rows[i] = strings.TrimRight(b.String(), " ")
	}
	return rows
}

// renderListing prints the header and the page holding the selection.
// The cursor is left at the start of the line after the last entry.
func (n *Navigator) renderListing() error {
	_, height := n.size()
	n.state.SetPerScreen(linesPerScreen(height))

	visible, first := n.state.Visible()
	page := n.state.Page(n.state.selected)

	var b strings.Builder
	b.WriteString(listingHeader(entry.Display(n.location), page, n.state.PageCount()))
	b.WriteByte('\n')
	for _, row := range formatRows(visible, n.state.selected-first) {
		b.WriteString(row)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(n.out, b.String())
	return err
}

// repaintMarker rewrites the marker of the selected row in place
func (n *Navigator) repaintMarker(marker string) error {
	delta := n.state.RowOffset()
	seq := n.term.CursorUp(delta) + marker + n.term.CursorBack(1) + n.term.CursorDown(delta)

	_, err := io.WriteString(n.out, seq)
	return err
}

// linesPerScreen leaves room for the header and the cursor line
func linesPerScreen(height int) int {
	return max(height-2, 1)
}
