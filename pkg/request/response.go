package request

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	mediaTypeJSON = "application/json"
	mediaTypeXML  = "text/xml"
)

// Response is the assembled result of one exchange.
type Response struct {
	StatusCode int
	// Headers are keyed by lower-cased name. Repeated headers are joined with ", ".
	Headers map[string]string
	// Body is the raw text unless the content type selected a decoder.
	Body any
	// Raw is always the undecoded body text.
	Raw string
}

// OK reports whether the status is one the dispatcher treats as success.
func (r *Response) OK() bool {
	return r != nil && (r.StatusCode == http.StatusOK || r.StatusCode == http.StatusCreated)
}

// Header returns the value of the named header, case-insensitively.
func (r *Response) Header(name string) string {
	if r == nil {
		return ""
	}
	return r.Headers[strings.ToLower(name)]
}

// ContentType returns the lower-cased media type without parameters.
func (r *Response) ContentType() string {
	return mediaType(r.Header("content-type"))
}

// Get queries the raw body as JSON using gjson path syntax.
func (r *Response) Get(path string) gjson.Result {
	if r == nil {
		return gjson.Result{}
	}
	return gjson.Get(r.Raw, path)
}

func newResponse(status int, header http.Header, body []byte) *Response {
	headers := make(map[string]string, len(header))
	for k, vals := range header {
		key := strings.ToLower(k)
		if prev, ok := headers[key]; ok {
			vals = append([]string{prev}, vals...)
		}
		headers[key] = strings.Join(vals, ", ")
	}
	raw := string(body)
	return &Response{
		StatusCode: status,
		Headers:    headers,
		Body:       raw,
		Raw:        raw,
	}
}

// decodeBody replaces resp.Body according to its content type. On failure the
// body stays the raw string.
func decodeBody(ctx context.Context, resp *Response, xmlDecoder XMLDecoder) error {
	ct := resp.ContentType()
	if ct == "" || resp.Raw == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(ct, mediaTypeJSON):
		var v any
		if err := json.Unmarshal([]byte(resp.Raw), &v); err != nil {
			return &DecodeError{Response: resp, ContentType: ct, Err: err}
		}
		resp.Body = v
	case strings.HasPrefix(ct, mediaTypeXML):
		v, err := xmlDecoder(ctx, resp.Raw)
		if err != nil {
			return &DecodeError{Response: resp, ContentType: ct, Err: err}
		}
		resp.Body = v
	}
	return nil
}

func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
