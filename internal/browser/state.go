package browser

import "github.com/studiowebux/doh/internal/entry"

// listingState holds the display list and the selection within it
type listingState struct {
	entries   []entry.Entry
	selected  int
	perScreen int
}

func newListingState(perScreen int) *listingState {
	return &listingState{perScreen: max(perScreen, 1)}
}

// SetEntries replaces the display list, keeping the selection in range
func (s *listingState) SetEntries(entries []entry.Entry) {
	s.entries = entries
	s.selected = s.clamp(s.selected)
}

// SetPerScreen changes how many entries fit on one screen
func (s *listingState) SetPerScreen(n int) {
	s.perScreen = max(n, 1)
}

// Reset moves the selection back to the first entry
func (s *listingState) Reset() {
	s.selected = 0
}

// Selected returns the selected entry, if the list is non-empty
func (s *listingState) Selected() (entry.Entry, bool) {
	if len(s.entries) == 0 {
		return entry.Entry{}, false
	}
	return s.entries[s.selected], true
}

// Page is the zero-based screen holding index
func (s *listingState) Page(index int) int {
	return index / s.perScreen
}

// PageCount is how many screens the list spans, at least one
func (s *listingState) PageCount() int {
	return max((len(s.entries)+s.perScreen-1)/s.perScreen, 1)
}

// RowsOnPage is how many entries are printed on page
func (s *listingState) RowsOnPage(page int) int {
	start := page * s.perScreen
	return max(min(s.perScreen, len(s.entries)-start), 0)
}

// Visible returns the entries of the selected page and the index of the first
func (s *listingState) Visible() ([]entry.Entry, int) {
	start := s.Page(s.selected) * s.perScreen
	end := min(start+s.perScreen, len(s.entries))
	if start >= end {
		return nil, start
	}
	return s.entries[start:end], start
}

// RowOffset is how many rows above the line after the listing the
// selected entry is printed
func (s *listingState) RowOffset() int {
	page := s.Page(s.selected)
	return s.RowsOnPage(page) - (s.selected - page*s.perScreen)
}

// Target is where a move of delta entries from the selection lands
func (s *listingState) Target(delta int) int {
	return s.clamp(s.selected + delta)
}

// Select sets the selection and reports whether the page changed
func (s *listingState) Select(index int) (pageChanged bool) {
	index = s.clamp(index)
	pageChanged = s.Page(index) != s.Page(s.selected)
	s.selected = index
	return pageChanged
}

func (s *listingState) clamp(index int) int {
	if len(s.entries) == 0 {
		return 0
	}
	return min(max(index, 0), len(s.entries)-1)
}
