package request

import (
	"net/url"
)

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"

	defaultMethod = MethodGet

	headerContentType = "Content-Type"
	contentTypeForm   = "application/x-www-form-urlencoded"
	contentTypeJSON   = "application/json"
)

// Options describes one request. It is never modified by the dispatcher.
type Options struct {
	// Method is upper-cased before sending; empty means GET.
	Method  string
	Headers map[string]string
	// Query is appended to the URL with "?" or "&" depending on whether the URL
	// already carries a query string.
	Query url.Values
	// Body is sent as-is when it is a string or []byte, otherwise as JSON text.
	Body any
	// Form replaces Body with its urlencoded text whenever it is non-nil. Form
	// always wins over Body, including a Body that was already JSON-serialized;
	// an empty non-nil Form therefore sends no payload at all.
	Form url.Values
	// Host and Path override the host and request path parsed from the URL.
	// Path includes any query string.
	Host string
	Path string
}
