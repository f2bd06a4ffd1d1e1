package request

import (
	"errors"
	"fmt"
)

// EncodeError reports options that could not be turned into a request.
type EncodeError struct {
	URL string
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode request %s: %v", e.URL, e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// TransportError wraps a network-level failure; no response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is returned for any status other than 200 and 201.
type StatusError struct {
	Response *Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status %d: %s", e.Response.StatusCode, snippet(e.Response.Raw))
}

// DecodeError is returned when a JSON or XML body cannot be decoded.
// Response.Body holds the undecoded text.
type DecodeError struct {
	Response    *Response
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s body (status %d): %v", e.ContentType, e.Response.StatusCode, e.Err)
}
func (e *DecodeError) Unwrap() error { return e.Err }

// ResponseFrom returns the response carried by a StatusError or DecodeError.
func ResponseFrom(err error) (*Response, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Response, true
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Response, true
	}
	return nil, false
}

// IsStatus reports whether err carries a response with status code. Both
// StatusError and DecodeError match, so a failing status is detected even
// when its body could not be decoded.
func IsStatus(err error, code int) bool {
	resp, ok := ResponseFrom(err)
	return ok && resp.StatusCode == code
}

func snippet(body string) string {
	const maxLen = 512
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	if body == "" {
		return "<empty>"
	}
	return body
}
