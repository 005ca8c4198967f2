package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiowebux/doh/internal/history"
	"github.com/studiowebux/doh/internal/keybinds"
	"github.com/studiowebux/doh/internal/types"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8000", want: "http://localhost:8000"},
		{in: "127.0.0.1:8000/pub/", want: "http://127.0.0.1:8000/pub/"},
		{in: "https://files.example.com/a%20b", want: "https://files.example.com/a%20b"},
		{in: "ftp://files.example.com", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLocation(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLocation(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLocation(%q) error = %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseLocation(%q) = %q, want %q", tt.in, got.String(), tt.want)
			}
		})
	}
}

func TestWriteBindings(t *testing.T) {
	var out bytes.Buffer
	writeBindings(&out, keybinds.NewDefaultRegistry())
	got := out.String()

	for _, want := range []string{"[global]", "[listing]", "[pager]", "Q, esc, q", "d, D"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// One line per action, not per key
	if n := strings.Count(got, keybinds.GetActionInfo(keybinds.ActionQuit).Description+"\n"); n != 1 {
		t.Errorf("quit listed %d times in listing, want 1:\n%s", n, got)
	}
}

func TestDescribeKey(t *testing.T) {
	var out bytes.Buffer
	describeKey(&out, keybinds.NewDefaultRegistry(), "delete")
	got := out.String()

	want := "[listing] delete: " + keybinds.GetActionInfo(keybinds.ActionDelete).Description
	if !strings.Contains(got, want) {
		t.Errorf("output missing %q:\n%s", want, got)
	}
	if !strings.Contains(got, "[global] delete is unbound") {
		t.Errorf("global context should report unbound:\n%s", got)
	}
}

func TestWriteHistory(t *testing.T) {
	mgr, err := history.NewManager(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { mgr.Close() })

	for _, u := range []string{"http://a/1", "http://b/2", "http://a/3"} {
		if err := mgr.Record(types.Transfer{Operation: types.OperationDownload, URL: u, Status: 200, StatusText: "200 OK"}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		host  string
		want  string
	}{
		{"limited", 2, "", "Showing 2 of 3 transfers"},
		{"by host", 10, "b", "Showing 1 of 3 transfers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := writeHistory(&out, mgr, tt.limit, tt.host); err != nil {
				t.Fatalf("writeHistory() error = %v", err)
			}
			if !strings.HasSuffix(out.String(), tt.want+"\n") {
				t.Errorf("output = %q, want suffix %q", out.String(), tt.want)
			}
		})
	}
}

type fixedTerminal bool

func (f fixedTerminal) IsTerminal() bool { return bool(f) }

func TestCheckTerminal(t *testing.T) {
	if err := checkTerminal(fixedTerminal(true)); err != nil {
		t.Errorf("checkTerminal(tty) error = %v", err)
	}
	if err := checkTerminal(fixedTerminal(false)); err != errNotTerminal {
		t.Errorf("checkTerminal(pipe) error = %v, want %v", err, errNotTerminal)
	}
}
