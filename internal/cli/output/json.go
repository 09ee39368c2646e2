package output

import (
	"encoding/json"
	"io"

	"github.com/yndnr/rediswire-go/internal/resp"
)

// JSONFormatter renders a reply as indented JSON.
type JSONFormatter struct{}

// Format renders the reply.
func (f *JSONFormatter) Format(w io.Writer, reply *resp.Reply) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toDoc(reply))
}
