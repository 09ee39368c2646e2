package output

import (
	"fmt"
	"io"

	"github.com/yndnr/rediswire-go/internal/resp"
)

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter renders one decoded reply.
type Formatter interface {
	Format(w io.Writer, reply *resp.Reply) error
}

// NewFormatter creates a formatter for the given format name.
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatTable, "":
		return &TableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// replyDoc is the shape JSON and YAML formatters encode. A null field
// becomes a null entry, not an empty string.
type replyDoc struct {
	Status string    `json:"status" yaml:"status"`
	Rows   int       `json:"rows" yaml:"rows"`
	Values []*string `json:"values" yaml:"values"`
}

func toDoc(reply *resp.Reply) replyDoc {
	doc := replyDoc{
		Status: reply.Status,
		Rows:   reply.Rows,
		Values: make([]*string, 0, len(reply.Fields)),
	}
	for _, f := range reply.Fields {
		if f.Null {
			doc.Values = append(doc.Values, nil)
			continue
		}
		s := f.Str
		doc.Values = append(doc.Values, &s)
	}
	return doc
}
