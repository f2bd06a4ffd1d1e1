package request

import (
	"context"

	"github.com/clbanning/mxj/v2"
)

// XMLDecoder converts XML text into a structured value.
type XMLDecoder func(ctx context.Context, text string) (any, error)

// DecodeXML converts text into nested maps keyed by element name. Attributes
// are prefixed with "-" and mixed text content is stored under "#text".
func DecodeXML(ctx context.Context, text string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := mxj.NewMapXml([]byte(text))
	if err != nil {
		return nil, err
	}
	return map[string]any(m), nil
}
