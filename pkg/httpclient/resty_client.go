package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient. A zero timeout means no timeout.
func NewRestyClient(timeout time.Duration, log resty.Logger) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout, log)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration, log resty.Logger) *resty.Client {
	return newRestyBaseClient(timeout, log)
}

func newRestyBaseClient(timeout time.Duration, log resty.Logger) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	c.SetRetryCount(0)
	// Every exchange stands alone; cookies from one response are never replayed.
	c.SetCookieJar(nil)
	c.SetAllowGetMethodPayload(true)
	if log != nil {
		c.SetLogger(log)
	}
	return c
}

// Execute sends method to url with the given headers and optional body.
func (r *RestyClient) Execute(ctx context.Context, method, url string, headers map[string]string, body *string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(*body)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
