package browser

import (
	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/doh/internal/entry"
)

// entryNames adapts a display list to fuzzy.Source
type entryNames []entry.Entry

func (e entryNames) String(i int) string {
	return e[i].Name
}

func (e entryNames) Len() int {
	return len(e)
}

// bestMatch returns the index of the entry whose name best fuzzy-matches
// query. The synthetic parent entry never matches.
func bestMatch(query string, entries []entry.Entry) (int, bool) {
	for _, m := range fuzzy.FindFrom(query, entryNames(entries)) {
		if !entries[m.Index].IsParent() {
			return m.Index, true
		}
	}
	return 0, false
}
