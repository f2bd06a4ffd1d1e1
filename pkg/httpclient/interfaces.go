package httpclient

import (
	"context"
	"net/http"
)

// Response is a minimal buffered HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// A nil body sends no payload.
type Client interface {
	Execute(ctx context.Context, method, url string, headers map[string]string, body *string) (Response, error)
}
