package rfsapi

import "errors"

// HeaderName is the header selecting between structured and raw responses
const HeaderName = "X-Raw-Filesystem-API"

// ErrHeaderParse is returned for any header value other than a single "1" or "0"
var ErrHeaderParse = errors.New("invalid " + HeaderName + " header value")

// Header is the value of the X-Raw-Filesystem-API header.
// true requests a structured listing, false the raw bytes.
type Header bool

// String returns the wire form of the header value
func (h Header) String() string {
	if h {
		return "1"
	}
	return "0"
}

// ParseHeader parses the values of an X-Raw-Filesystem-API header.
// Exactly one value of exactly one byte, '1' or '0', is accepted.
func ParseHeader(values []string) (Header, error) {
	if len(values) != 1 || len(values[0]) != 1 {
		return false, ErrHeaderParse
	}
	switch values[0][0] {
	case '1':
		return true, nil
	case '0':
		return false, nil
	default:
		return false, ErrHeaderParse
	}
}
