package resp

import (
	"bytes"
	"strconv"
)

// EncodeCommand frames argument tokens as a multi-bulk request:
// "*<count>\r\n" followed by "$<bytelen>\r\n<bytes>\r\n" per token.
// Lengths are UTF-8 byte lengths, so non-ASCII arguments frame
// correctly.
func EncodeCommand(args []string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('*')
	buf.WriteString(strconv.Itoa(len(args)))
	buf.WriteString("\r\n")
	for _, arg := range args {
		buf.WriteByte('$')
		buf.WriteString(strconv.Itoa(len(arg)))
		buf.WriteString("\r\n")
		buf.WriteString(arg)
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}
