package history

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/studiowebux/doh/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRecordAndRecent(t *testing.T) {
	m := newTestManager(t)

	transfers := []types.Transfer{
		{Operation: types.OperationDownload, URL: "http://a/f.txt", LocalPath: "/tmp/f.txt", Status: 200, StatusText: "200 OK", Bytes: 2297, DurationMs: 5},
		{Operation: types.OperationUpload, URL: "http://b/up.bin", LocalPath: "/tmp/up.bin", Status: 403, StatusText: "403 Forbidden"},
		{Operation: types.OperationDelete, URL: "http://a/old", Error: "connection refused"},
	}
	for _, tr := range transfers {
		if err := m.Record(tr); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := m.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	// Newest first
	if got[0].Operation != types.OperationDelete || got[2].Operation != types.OperationDownload {
		t.Errorf("order = %s, %s, %s", got[0].Operation, got[1].Operation, got[2].Operation)
	}
	if got[0].Error != "connection refused" || got[0].LocalPath != "" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[2].Bytes != 2297 || got[2].StatusText != "200 OK" || got[2].LocalPath != "/tmp/f.txt" {
		t.Errorf("got[2] = %+v", got[2])
	}
	if time.Since(got[2].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want about now", got[2].Timestamp)
	}
	if !got[2].Succeeded() || got[1].Succeeded() || got[0].Succeeded() {
		t.Error("Succeeded() mismatch")
	}
}

func TestRecentLimit(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 5; i++ {
		if err := m.Record(types.Transfer{Operation: types.OperationDownload, URL: "http://a/f", Status: 200}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := m.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
	if got[0].ID <= got[1].ID {
		t.Errorf("ids %d, %d not descending", got[0].ID, got[1].ID)
	}
}

func TestRecentForHost(t *testing.T) {
	m := newTestManager(t)
	m.Record(types.Transfer{Operation: types.OperationDownload, URL: "http://a:8000/x", Status: 200})
	m.Record(types.Transfer{Operation: types.OperationDownload, URL: "http://b/y", Status: 200})

	got, err := m.RecentForHost("a:8000", 0)
	if err != nil {
		t.Fatalf("RecentForHost() error = %v", err)
	}
	if len(got) != 1 || got[0].URL != "http://a:8000/x" {
		t.Errorf("RecentForHost() = %+v", got)
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(t)
	m.Record(types.Transfer{Operation: types.OperationDelete, URL: "http://a/x", Status: 204})

	if n, _ := m.GetCount(); n != 1 {
		t.Fatalf("GetCount() = %d, want 1", n)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n, _ := m.GetCount(); n != 0 {
		t.Errorf("GetCount() after Clear = %d, want 0", n)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	m.Record(types.Transfer{Operation: types.OperationUpload, URL: "http://a/x", Status: 201})
	m.Close()

	m, err = NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() reopen error = %v", err)
	}
	defer m.Close()

	if n, _ := m.GetCount(); n != 1 {
		t.Errorf("GetCount() after reopen = %d, want 1", n)
	}
}

func TestRender(t *testing.T) {
	if got := Render(nil); got != "No transfers recorded" {
		t.Errorf("Render(nil) = %q", got)
	}

	out := Render([]types.Transfer{
		{Operation: types.OperationDownload, URL: "http://a/f.txt", LocalPath: "/tmp/f.txt", Status: 200, StatusText: "200 OK", Bytes: 1024, DurationMs: 3},
		{Operation: types.OperationDelete, URL: "http://a/g", Error: "boom"},
	})
	for _, want := range []string{"OPERATION", "http://a/f.txt", "200 OK", "1KiB in 3ms", "boom", "delete"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}
