package request

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
)

const schemeSecure = "https"

var errMissingHost = errors.New("url has no host")

// Prepared is the resolved, transport-ready form of a request.
type Prepared struct {
	Method     string
	URL        string
	Scheme     string
	Host       string
	Path       string
	Headers    map[string]string
	Payload    string
	HasPayload bool
}

// Secure reports whether the request goes through the encrypted transport.
func (p Prepared) Secure() bool { return p.Scheme == schemeSecure }

// Prepare resolves rawURL and opts into a Prepared request without sending it.
func Prepare(rawURL string, opts Options) (Prepared, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = defaultMethod
	}

	target := appendQuery(rawURL, opts.Query)

	payload, hasPayload, jsonBody, err := encodeBody(opts.Body)
	if err != nil {
		return Prepared{}, &EncodeError{URL: rawURL, Err: err}
	}
	formBody := false
	if opts.Form != nil {
		payload, hasPayload, jsonBody, formBody = opts.Form.Encode(), true, false, true
	}

	uri, err := url.Parse(target)
	if err != nil {
		return Prepared{}, &EncodeError{URL: rawURL, Err: err}
	}

	scheme := "http"
	if strings.EqualFold(uri.Scheme, schemeSecure) {
		scheme = schemeSecure
	}
	host := opts.Host
	if host == "" {
		host = uri.Host
	}
	path := opts.Path
	if path == "" {
		path = uri.RequestURI()
	}
	if host == "" {
		return Prepared{}, &EncodeError{URL: rawURL, Err: errMissingHost}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	headers := copyHeaders(opts.Headers)
	if !hasHeader(headers, headerContentType) {
		switch {
		case formBody:
			headers[headerContentType] = contentTypeForm
		case jsonBody:
			headers[headerContentType] = contentTypeJSON
		}
	}

	return Prepared{
		Method:     method,
		URL:        scheme + "://" + host + path,
		Scheme:     scheme,
		Host:       host,
		Path:       path,
		Headers:    headers,
		Payload:    payload,
		HasPayload: hasPayload && payload != "",
	}, nil
}

// appendQuery joins the encoded query onto rawURL with "?" or "&".
func appendQuery(rawURL string, query url.Values) string {
	if len(query) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + query.Encode()
}

// encodeBody returns the payload text, whether a payload exists and whether it
// was produced by JSON serialization.
func encodeBody(body any) (string, bool, bool, error) {
	switch b := body.(type) {
	case nil:
		return "", false, false, nil
	case string:
		return b, b != "", false, nil
	case []byte:
		return string(b), len(b) > 0, false, nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return "", false, false, err
		}
		return string(raw), true, true, nil
	}
}

func copyHeaders(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
