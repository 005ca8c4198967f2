// Package entry turns raw listings into the records shown in the browser.
package entry

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/studiowebux/doh/internal/types"
)

// ParentName is the synthetic first entry of every non-root listing
const ParentName = "../"

// TimestampLayout is how modification times are shown
const TimestampLayout = "2006-01-02 15:04:05"

var sizeSuffixes = [...]string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}

// Entry is one displayable listing row.
// Directories have a nil Size and a Name ending in "/".
type Entry struct {
	Name         string
	MimeType     string
	Size         *uint64
	HumanSize    string
	LastModified time.Time
}

// IsDir reports whether the entry is a directory (or the parent entry)
func (e Entry) IsDir() bool {
	return e.Size == nil
}

// IsParent reports whether this is the synthetic "../" entry
func (e Entry) IsParent() bool {
	return e.Name == ParentName && e.LastModified.IsZero()
}

// Columns returns the name, human size and timestamp cells of the row.
// Missing values are empty strings.
func (e Entry) Columns() [3]string {
	var ts string
	if !e.LastModified.IsZero() {
		ts = e.LastModified.Format(TimestampLayout)
	}
	return [3]string{e.Name, e.HumanSize, ts}
}

// FromRaw converts a single server entry
func FromRaw(f types.RawFile) Entry {
	e := Entry{
		Name:         f.Name,
		MimeType:     f.MimeType,
		LastModified: f.LastModified.Local(),
	}
	if f.IsFile {
		size := f.Size
		e.Size = &size
		e.HumanSize = HumanReadableSize(size)
	} else {
		e.Name += "/"
	}
	return e
}

// BuildDisplayList converts a listing into its display rows: directories
// first (server order kept within each group), preceded by "../" unless
// the listing is a root. A file listing has no rows.
func BuildDisplayList(listing *types.Listing) []Entry {
	if listing == nil || listing.IsFile {
		return nil
	}

	files := make([]types.RawFile, len(listing.Files))
	copy(files, listing.Files)
	sort.SliceStable(files, func(i, j int) bool {
		return !files[i].IsFile && files[j].IsFile
	})

	entries := make([]Entry, 0, len(files)+1)
	if !listing.IsRoot {
		entries = append(entries, Entry{Name: ParentName})
	}
	for _, f := range files {
		entries = append(entries, FromRaw(f))
	}
	return entries
}

// HumanReadableSize formats a byte count with binary prefixes,
// e.g. 0B, 1KiB, 2.2KiB.
func HumanReadableSize(bytes uint64) string {
	if bytes == 0 {
		return "0B"
	}

	num := float64(bytes)
	exp := int(math.Log(num) / math.Log(1024))
	// Correct float error around exact powers of 1024
	if exp < 6 && bytes >= uint64(1)<<(10*(exp+1)) {
		exp++
	} else if exp > 0 && bytes < uint64(1)<<(10*exp) {
		exp--
	}
	exp = min(max(exp, 0), len(sizeSuffixes)-1)

	val := num / math.Pow(2, float64(exp*10))
	if exp > 0 {
		val = math.Round(val*10) / 10
	} else {
		val = math.Round(val)
	}
	return strconv.FormatFloat(val, 'f', -1, 64) + sizeSuffixes[exp]
}
