package rfsapi

import (
	"errors"
	"fmt"
)

// TransportError is returned when a request could not be completed
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	URL  string
	Code int
	// Text is the full status line, e.g. "404 Not Found"
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, e.Text)
}

// ProtocolError is returned when a listing body cannot be parsed
type ProtocolError struct {
	URL string
	Err error
}

func (e *ProtocolError) Error() string {
	return e.Err.Error()
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// AsTransport returns the TransportError in err's chain, if any
func AsTransport(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// AsStatus returns the StatusError in err's chain, if any
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsProtocol returns the ProtocolError in err's chain, if any
func AsProtocol(err error) (*ProtocolError, bool) {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
