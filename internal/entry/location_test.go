package entry

import (
	"net/url"
	"testing"
)

func parse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	return u
}

func TestParent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://h/a/b/", "http://h/a"},
		{"http://h/a", "http://h"},
		{"http://h", "http://h"},
		{"http://h/", "http://h/"},
		{"https://google.com/search/capitalism/", "https://google.com/search"},
		{"http://h:8000/a/b?x=1", "http://h:8000/a"},
	}

	for _, tt := range tests {
		if got := Parent(parse(t, tt.in)).String(); got != tt.want {
			t.Errorf("Parent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParentOfRootIsRoot(t *testing.T) {
	root := parse(t, "http://h")
	if Parent(root) != root {
		t.Error("Parent(root) should return root itself")
	}
	if !IsRoot(root) {
		t.Error("IsRoot(http://h) = false")
	}

	child := parse(t, "http://h/a/b")
	if IsRoot(child) {
		t.Error("IsRoot(http://h/a/b) = true")
	}
	// Not idempotent away from the root
	once := Parent(child)
	twice := Parent(once)
	if once.String() == twice.String() {
		t.Errorf("Parent(Parent(%s)) == Parent(%s)", child, child)
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		base string
		name string
		want string
	}{
		{"http://h/a/", "b/", "http://h/a/b/"},
		{"http://h/a", "b/", "http://h/a/b/"},
		{"http://h", "file.txt", "http://h/file.txt"},
		{"http://h/a/b", "../", "http://h/a/"},
		{"http://h/a/", "with space.txt", "http://h/a/with%20space.txt"},
		{"http://h/a/", "q?.txt", "http://h/a/q%3F.txt"},
		{"http://h/a/?x=1", "b", "http://h/a/b"},
	}

	for _, tt := range tests {
		if got := Join(parse(t, tt.base), tt.name).String(); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.base, tt.name, got, tt.want)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://h/%D0%B0%D1%81%D0%B4%D1%84%20fdsa", "http://h/асдф fdsa"},
		{"http://h/plain", "http://h/plain"},
	}

	for _, tt := range tests {
		if got := Display(parse(t, tt.in)); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabelAndSuggestedName(t *testing.T) {
	u := parse(t, "http://h/docs/report.tar.gz")
	if got := Label(u); got != "docs/report.tar.gz" {
		t.Errorf("Label() = %q", got)
	}

	name, ext := SuggestedName(u)
	if name != "report.tar.gz" || ext != "gz" {
		t.Errorf("SuggestedName() = %q, %q", name, ext)
	}

	name, ext = SuggestedName(parse(t, "http://h/README"))
	if name != "README" || ext != "" {
		t.Errorf("SuggestedName(README) = %q, %q", name, ext)
	}
}
