package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/rediswire-go/internal/resp"
)

// YAMLFormatter renders a reply as YAML.
type YAMLFormatter struct{}

// Format renders the reply.
func (f *YAMLFormatter) Format(w io.Writer, reply *resp.Reply) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(toDoc(reply))
}
