package types

import "time"

// Listing is the body a raw filesystem API server returns for a location
// when asked for structured content.
type Listing struct {
	WritesSupported bool      `json:"writes_supported" yaml:"writes_supported"`
	IsRoot          bool      `json:"is_root" yaml:"is_root"`
	IsFile          bool      `json:"is_file" yaml:"is_file"`
	Files           []RawFile `json:"files" yaml:"files"`
}

// RawFile is a single entry of a Listing, as sent by the server
type RawFile struct {
	Name         string    `json:"name" yaml:"name"`
	MimeType     string    `json:"mime_type" yaml:"mime_type"`
	Size         uint64    `json:"size" yaml:"size"`
	IsFile       bool      `json:"is_file" yaml:"is_file"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
}

// Operation names a remote operation recorded in the transfer history
type Operation string

const (
	OperationDownload Operation = "download"
	OperationUpload   Operation = "upload"
	OperationDelete   Operation = "delete"
)

// Transfer describes one completed (or failed) remote operation
type Transfer struct {
	ID         int64     `json:"id" yaml:"id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Operation  Operation `json:"operation" yaml:"operation"`
	URL        string    `json:"url" yaml:"url"`
	LocalPath  string    `json:"localPath,omitempty" yaml:"localPath,omitempty"`
	Status     int       `json:"status" yaml:"status"`
	StatusText string    `json:"statusText" yaml:"statusText"`
	Bytes      int64     `json:"bytes" yaml:"bytes"`
	DurationMs int64     `json:"durationMs" yaml:"durationMs"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded reports whether the server accepted the operation
func (t Transfer) Succeeded() bool {
	return t.Error == "" && t.Status >= 200 && t.Status < 300
}
