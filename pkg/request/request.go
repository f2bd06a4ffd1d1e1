// Package request issues single HTTP(S) requests and returns responses whose
// JSON or XML bodies are already decoded.
package request

import (
	"context"
	"sync"
	"time"

	"github.com/samvad-hq/samvad-http/pkg/httpclient"
)

// Client dispatches requests through a plain or a secure transport.
// It is safe for concurrent use.
type Client struct {
	plain      httpclient.Client
	secure     httpclient.Client
	xmlDecoder XMLDecoder
	log        Logger
	timeout    time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPlainTransport sets the transport used for http (and any non-https) URLs.
func WithPlainTransport(t httpclient.Client) ClientOption {
	return func(c *Client) { c.plain = t }
}

// WithSecureTransport sets the transport used for https URLs.
func WithSecureTransport(t httpclient.Client) ClientOption {
	return func(c *Client) { c.secure = t }
}

// WithXMLDecoder replaces DecodeXML for text/xml bodies.
func WithXMLDecoder(d XMLDecoder) ClientOption {
	return func(c *Client) { c.xmlDecoder = d }
}

// WithLogger routes diagnostic output to log instead of discarding it.
func WithLogger(log Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// WithTimeout bounds every exchange made by the default transports.
// It has no effect on transports supplied with WithPlainTransport or
// WithSecureTransport.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// New builds a Client. Without transport options both schemes share one resty
// client and net/http negotiates TLS for https.
func New(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	c.log = ensureLogger(c.log)
	if c.xmlDecoder == nil {
		c.xmlDecoder = DecodeXML
	}
	if c.plain == nil || c.secure == nil {
		shared := httpclient.NewRestyClient(c.timeout, nil)
		if c.plain == nil {
			c.plain = shared
		}
		if c.secure == nil {
			c.secure = shared
		}
	}
	return c
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the shared client used by the package-level helpers.
func Default() *Client {
	defaultOnce.Do(func() { defaultClient = New() })
	return defaultClient
}

// Do sends a request with the default client.
func Do(ctx context.Context, url string, opts Options) (*Response, error) {
	return Default().Do(ctx, url, opts)
}

// Do sends one request and returns the response.
//
// A 200 or 201 response with a successful (or no) body decode returns a nil
// error. Any other status returns the response together with a *StatusError.
// A body that fails to decode returns the response, with Body left as the raw
// text, together with a *DecodeError. Network failures return a nil response
// and a *TransportError.
func (c *Client) Do(ctx context.Context, url string, opts Options) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	prep, err := Prepare(url, opts)
	if err != nil {
		c.log.ErrorObj("request.error", "request_error", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return nil, err
	}

	c.log.DebugObj("request", "request", map[string]any{
		"method": prep.Method,
		"url":    prep.URL,
		"host":   prep.Host,
		"path":   prep.Path,
		"secure": prep.Secure(),
	})

	transport := c.plain
	if prep.Secure() {
		transport = c.secure
	}

	var body *string
	if prep.HasPayload {
		payload := prep.Payload
		body = &payload
	}

	raw, err := transport.Execute(ctx, prep.Method, prep.URL, prep.Headers, body)
	if err != nil {
		c.log.ErrorObj("request.error", "request_error", map[string]any{
			"method": prep.Method,
			"url":    prep.URL,
			"error":  err.Error(),
		})
		return nil, &TransportError{Method: prep.Method, URL: prep.URL, Err: err}
	}

	resp := newResponse(raw.StatusCode(), raw.Header(), raw.Body())
	c.log.InfoObj("request.response", "response", map[string]any{
		"status":       resp.StatusCode,
		"content_type": resp.Header("content-type"),
		"body":         snippet(resp.Raw),
	})

	if err := decodeBody(ctx, resp, c.xmlDecoder); err != nil {
		c.log.ErrorObj("request.response.error", "response_error", map[string]any{
			"status": resp.StatusCode,
			"url":    prep.URL,
			"error":  err.Error(),
		})
		return resp, err
	}

	if !resp.OK() {
		c.log.ErrorObj("request.response.error", "response_error", map[string]any{
			"status": resp.StatusCode,
			"url":    prep.URL,
			"body":   snippet(resp.Raw),
		})
		return resp, &StatusError{Response: resp}
	}
	return resp, nil
}

// Get sends a GET request to url.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, url, Options{Method: MethodGet, Headers: headers})
}

// Post sends body to url with POST.
func (c *Client) Post(ctx context.Context, url string, body any, headers map[string]string) (*Response, error) {
	return c.Do(ctx, url, Options{Method: MethodPost, Body: body, Headers: headers})
}

// Put sends body to url with PUT.
func (c *Client) Put(ctx context.Context, url string, body any, headers map[string]string) (*Response, error) {
	return c.Do(ctx, url, Options{Method: MethodPut, Body: body, Headers: headers})
}

// Delete sends a DELETE request to url.
func (c *Client) Delete(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, url, Options{Method: MethodDelete, Headers: headers})
}
