package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/samvad-hq/samvad-http/internal/config"
	"github.com/samvad-hq/samvad-http/pkg/request"
	"gopkg.in/yaml.v3"
)

type responseDoc struct {
	StatusCode int               `json:"status_code" yaml:"status_code"`
	Headers    map[string]string `json:"headers" yaml:"headers"`
	Body       any               `json:"body" yaml:"body"`
}

type preparedDoc struct {
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Host    string            `json:"host" yaml:"host"`
	Path    string            `json:"path" yaml:"path"`
	Secure  bool              `json:"secure" yaml:"secure"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Payload string            `json:"payload,omitempty" yaml:"payload,omitempty"`
}

func responseView(resp *request.Response) responseDoc {
	return responseDoc{StatusCode: resp.StatusCode, Headers: resp.Headers, Body: resp.Body}
}

func preparedView(p request.Prepared) preparedDoc {
	return preparedDoc{
		Method:  p.Method,
		URL:     p.URL,
		Host:    p.Host,
		Path:    p.Path,
		Secure:  p.Secure(),
		Headers: p.Headers,
		Payload: p.Payload,
	}
}

func outputFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case config.OutputJSON, config.OutputYAML:
		return format, nil
	default:
		return "", usagef("unsupported output format %q (expected json or yaml)", raw)
	}
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

func printStatus(w io.Writer, resp *request.Response) {
	c := color.New(color.FgRed, color.Bold)
	if resp.OK() {
		c = color.New(color.FgGreen, color.Bold)
	}
	ct := resp.ContentType()
	if ct == "" {
		ct = "-"
	}
	c.Fprintf(w, "%d", resp.StatusCode)
	fmt.Fprintf(w, " %s\n", ct)
}
