package entry

import (
	"testing"
	"time"

	"github.com/studiowebux/doh/internal/types"
)

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0B"},
		{1, "1B"},
		{1023, "1023B"},
		{1024, "1KiB"},
		{2297, "2.2KiB"},
		{1536, "1.5KiB"},
		{1 << 20, "1MiB"},
		{1<<20 - 1, "1024KiB"},
		{5 * 1 << 30, "5GiB"},
		{1 << 40, "1TiB"},
		{1 << 50, "1PiB"},
		{1 << 60, "1EiB"},
		{^uint64(0), "16EiB"},
	}

	for _, tt := range tests {
		if got := HumanReadableSize(tt.bytes); got != tt.want {
			t.Errorf("HumanReadableSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func rawFile(name string, isFile bool, size uint64) types.RawFile {
	return types.RawFile{
		Name:         name,
		IsFile:       isFile,
		Size:         size,
		LastModified: time.Date(2012, 2, 22, 14, 53, 18, 0, time.UTC),
	}
}

func TestBuildDisplayListFileListing(t *testing.T) {
	listing := &types.Listing{
		IsFile: true,
		Files:  []types.RawFile{rawFile("a.txt", true, 3)},
	}
	if got := BuildDisplayList(listing); len(got) != 0 {
		t.Errorf("BuildDisplayList(file) = %v, want empty", got)
	}
}

func TestBuildDisplayListNonRoot(t *testing.T) {
	listing := &types.Listing{
		Files: []types.RawFile{
			rawFile("z.txt", true, 10),
			rawFile("beta", false, 0),
			rawFile("a.txt", true, 2297),
			rawFile("alpha", false, 0),
		},
	}

	got := BuildDisplayList(listing)
	if len(got) != len(listing.Files)+1 {
		t.Fatalf("len = %d, want %d", len(got), len(listing.Files)+1)
	}

	parent := got[0]
	if parent.Name != ParentName || parent.Size != nil || !parent.LastModified.IsZero() {
		t.Errorf("got[0] = %+v, want bare parent entry", parent)
	}
	if !parent.IsParent() {
		t.Error("got[0].IsParent() = false")
	}

	wantNames := []string{"../", "beta/", "alpha/", "z.txt", "a.txt"}
	for i, want := range wantNames {
		if got[i].Name != want {
			t.Errorf("got[%d].Name = %q, want %q", i, got[i].Name, want)
		}
	}

	for _, e := range got[1:3] {
		if !e.IsDir() || e.HumanSize != "" {
			t.Errorf("%q should be a directory without size, got %+v", e.Name, e)
		}
	}
	for _, e := range got[3:] {
		if e.IsDir() || e.Size == nil {
			t.Errorf("%q should be a file with size", e.Name)
		}
	}
	if got[4].HumanSize != "2.2KiB" {
		t.Errorf("a.txt HumanSize = %q, want 2.2KiB", got[4].HumanSize)
	}
	if got[4].LastModified.Location() != time.Local {
		t.Error("timestamps should be converted to local time")
	}
}

func TestBuildDisplayListRoot(t *testing.T) {
	listing := &types.Listing{
		IsRoot: true,
		Files:  []types.RawFile{rawFile("a.txt", true, 1), rawFile("d", false, 0)},
	}

	got := BuildDisplayList(listing)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "d/" || got[1].Name != "a.txt" {
		t.Errorf("names = %q, %q", got[0].Name, got[1].Name)
	}
}

func TestBuildDisplayListDoesNotReorderInput(t *testing.T) {
	listing := &types.Listing{
		IsRoot: true,
		Files:  []types.RawFile{rawFile("a.txt", true, 1), rawFile("d", false, 0)},
	}
	BuildDisplayList(listing)
	if listing.Files[0].Name != "a.txt" {
		t.Error("BuildDisplayList mutated the listing")
	}
}

func TestColumns(t *testing.T) {
	size := uint64(1024)
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local)
	e := Entry{Name: "f", Size: &size, HumanSize: "1KiB", LastModified: ts}

	cols := e.Columns()
	if cols != [3]string{"f", "1KiB", "2020-01-02 03:04:05"} {
		t.Errorf("Columns() = %q", cols)
	}

	parent := Entry{Name: ParentName}
	if parent.Columns() != [3]string{"../", "", ""} {
		t.Errorf("parent Columns() = %q", parent.Columns())
	}
}
