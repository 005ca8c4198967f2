package rfsapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/studiowebux/doh/internal/types"
)

// wireListing mirrors types.Listing with pointers so absent keys can be
// told apart from zero values
type wireListing struct {
	WritesSupported *bool       `json:"writes_supported"`
	IsRoot          *bool       `json:"is_root"`
	IsFile          *bool       `json:"is_file"`
	Files           *[]wireFile `json:"files"`
}

type wireFile struct {
	Name         *string    `json:"name"`
	MimeType     string     `json:"mime_type"`
	Size         uint64     `json:"size"`
	IsFile       *bool      `json:"is_file"`
	LastModified *time.Time `json:"last_modified"`
}

// DecodeListing parses a listing body. Every listing key and the name,
// is_file and last_modified of each file must be present.
func DecodeListing(body []byte) (*types.Listing, error) {
	var w wireListing
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, err
	}

	switch {
	case w.WritesSupported == nil:
		return nil, missingField("writes_supported")
	case w.IsRoot == nil:
		return nil, missingField("is_root")
	case w.IsFile == nil:
		return nil, missingField("is_file")
	case w.Files == nil:
		return nil, missingField("files")
	}

	listing := &types.Listing{
		WritesSupported: *w.WritesSupported,
		IsRoot:          *w.IsRoot,
		IsFile:          *w.IsFile,
		Files:           make([]types.RawFile, 0, len(*w.Files)),
	}
	for i, f := range *w.Files {
		switch {
		case f.Name == nil:
			return nil, missingField(fmt.Sprintf("files[%d].name", i))
		case f.IsFile == nil:
			return nil, missingField(fmt.Sprintf("files[%d].is_file", i))
		case f.LastModified == nil:
			return nil, missingField(fmt.Sprintf("files[%d].last_modified", i))
		}
		listing.Files = append(listing.Files, types.RawFile{
			Name:         *f.Name,
			MimeType:     f.MimeType,
			Size:         f.Size,
			IsFile:       *f.IsFile,
			LastModified: *f.LastModified,
		})
	}
	return listing, nil
}

func missingField(name string) error {
	return fmt.Errorf("missing field `%s`", name)
}
