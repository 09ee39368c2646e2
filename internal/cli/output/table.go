package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/yndnr/rediswire-go/internal/resp"
)

// nilCell marks an absent value in table output, matching what
// interactive Redis users expect to see.
const nilCell = "(nil)"

// TableFormatter renders a reply as an indexed two-column table with a
// status footer.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders the reply.
func (f *TableFormatter) Format(w io.Writer, reply *resp.Reply) error {
	if len(reply.Fields) == 0 {
		_, err := fmt.Fprintln(w, reply.Status)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		fmt.Fprint(tw, "#\tVALUE\n")
	}
	for i, field := range reply.Fields {
		cell := field.Str
		if field.Null {
			cell = nilCell
		}
		fmt.Fprintf(tw, "%d\t%s\n", i+1, cell)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "(%s rows, status %s)\n", strconv.Itoa(reply.Rows), reply.Status)
	return err
}
