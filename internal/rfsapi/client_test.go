package rfsapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/studiowebux/doh/internal/version"
)

const sampleListing = `{
	"writes_supported": true,
	"is_root": false,
	"is_file": false,
	"files": [
		{"name": "data", "mime_type": "text/directory", "size": 0, "is_file": false, "last_modified": "2012-02-22T14:53:18.42Z"},
		{"name": "index.html", "mime_type": "text/html", "size": 2297, "is_file": true, "last_modified": "2012-02-22T15:23:18Z"}
	]
}`

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	return u
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestFetchListing(t *testing.T) {
	var gotHeader, gotAgent, gotEncoding string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(HeaderName)
		gotAgent = r.Header.Get("User-Agent")
		gotEncoding = r.Header.Get("Accept-Encoding")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleListing))
	}))
	defer server.Close()

	listing, err := newTestClient(t).FetchListing(context.Background(), mustParse(t, server.URL+"/dir/"))
	if err != nil {
		t.Fatalf("FetchListing() error = %v", err)
	}

	if gotHeader != "1" {
		t.Errorf("%s header = %q, want %q", HeaderName, gotHeader, "1")
	}
	if gotAgent != version.UserAgent() {
		t.Errorf("User-Agent = %q, want %q", gotAgent, version.UserAgent())
	}
	if gotEncoding != "gzip" {
		t.Errorf("Accept-Encoding = %q, want gzip", gotEncoding)
	}
	if !listing.WritesSupported || listing.IsRoot || listing.IsFile {
		t.Errorf("flags = %+v, want writes_supported only", listing)
	}
	if len(listing.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(listing.Files))
	}
	if listing.Files[1].Name != "index.html" || listing.Files[1].Size != 2297 || !listing.Files[1].IsFile {
		t.Errorf("Files[1] = %+v", listing.Files[1])
	}
	if listing.Files[0].LastModified.IsZero() {
		t.Error("Files[0].LastModified not parsed")
	}
}

func TestFetchListingGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(gzipBytes(t, sampleListing))
	}))
	defer server.Close()

	listing, err := newTestClient(t).FetchListing(context.Background(), mustParse(t, server.URL))
	if err != nil {
		t.Fatalf("FetchListing() error = %v", err)
	}
	if len(listing.Files) != 2 {
		t.Errorf("len(Files) = %d, want 2", len(listing.Files))
	}
}

func TestFetchListingErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusNotFound)
			},
			check: func(t *testing.T, err error) {
				se, ok := AsStatus(err)
				if !ok {
					t.Fatalf("error %v is not a StatusError", err)
				}
				if se.Code != http.StatusNotFound || se.Text != "404 Not Found" {
					t.Errorf("StatusError = %+v", se)
				}
			},
		},
		{
			name: "unparsable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not a listing</html>"))
			},
			check: func(t *testing.T, err error) {
				if _, ok := AsProtocol(err); !ok {
					t.Errorf("error %v is not a ProtocolError", err)
				}
			},
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("null"))
			},
			check: expectProtocolError,
		},
		{
			name: "empty object",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{}"))
			},
			check: expectProtocolError,
		},
		{
			name: "other JSON API",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error":"x"}`))
			},
			check: expectProtocolError,
		},
		{
			name: "bad gzip",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Encoding", "gzip")
				w.Write([]byte("plainly not gzip"))
			},
			check: func(t *testing.T, err error) {
				if _, ok := AsTransport(err); !ok {
					t.Errorf("error %v is not a TransportError", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newTestClient(t).FetchListing(context.Background(), mustParse(t, server.URL))
			if err == nil {
				t.Fatal("FetchListing() error = nil")
			}
			tt.check(t, err)
		})
	}
}

func expectProtocolError(t *testing.T, err error) {
	t.Helper()
	if _, ok := AsProtocol(err); !ok {
		t.Errorf("error %v is not a ProtocolError", err)
	}
}

func TestFetchListingUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	_, err := newTestClient(t).FetchListing(context.Background(), mustParse(t, addr))
	if _, ok := AsTransport(err); !ok {
		t.Errorf("error %v is not a TransportError", err)
	}
}

func TestFetchRaw(t *testing.T) {
	tests := []struct {
		name     string
		gzipped  bool
		wantSize int64
	}{
		{name: "plain", gzipped: false, wantSize: int64(len("hello\nworld\n"))},
		{name: "gzip", gzipped: true, wantSize: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeader string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get(HeaderName)
				if tt.gzipped {
					w.Header().Set("Content-Encoding", "gzip")
					w.Write(gzipBytes(t, "hello\nworld\n"))
					return
				}
				w.Write([]byte("hello\nworld\n"))
			}))
			defer server.Close()

			raw, err := newTestClient(t).FetchRaw(context.Background(), mustParse(t, server.URL+"/a.txt"))
			if err != nil {
				t.Fatalf("FetchRaw() error = %v", err)
			}
			defer raw.Body.Close()

			body, err := io.ReadAll(raw.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if string(body) != "hello\nworld\n" {
				t.Errorf("body = %q", body)
			}
			if raw.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", raw.Size, tt.wantSize)
			}
			if gotHeader != "0" {
				t.Errorf("%s header = %q, want %q", HeaderName, gotHeader, "0")
			}
		})
	}
}

func TestUploadAndDelete(t *testing.T) {
	var gotMethod, gotBody, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		switch r.Method {
		case http.MethodPut:
			w.WriteHeader(http.StatusCreated)
		case http.MethodDelete:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer server.Close()

	client := newTestClient(t)

	status, err := client.Upload(context.Background(), mustParse(t, server.URL+"/up/file.txt"), strings.NewReader("payload"), 7)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/up/file.txt" || gotBody != "payload" {
		t.Errorf("server saw %s %s %q", gotMethod, gotPath, gotBody)
	}
	if !status.Success() || status.Text != "201 Created" {
		t.Errorf("Upload status = %+v", status)
	}

	status, err = client.Delete(context.Background(), mustParse(t, server.URL+"/up/file.txt"))
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %s, want DELETE", gotMethod)
	}
	if status.Success() || status.Code != http.StatusForbidden {
		t.Errorf("Delete status = %+v", status)
	}
}

func TestNewRejectsBadCAFile(t *testing.T) {
	if _, err := New(Config{CAFile: "/nonexistent/ca.pem"}); err == nil {
		t.Error("New() with missing CA file should fail")
	}
}
