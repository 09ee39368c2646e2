package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// Reply type markers, the first byte of every reply.
const (
	markError  = '-'
	markStatus = '+'
	markInt    = ':'
	markBulk   = '$'
	markArray  = '*'
)

// nullBulk is the header of a null bulk string, a valid "absent" value
// distinct from an empty or missing reply.
const nullBulk = "$-1"

// Field is one element of a decoded reply. Null distinguishes an absent
// value from an empty string.
type Field struct {
	Str  string
	Null bool
}

// Reply is the decoded outcome of one request. Status carries the last
// human-readable message ("OK", a server error text, or a diagnostic);
// Rows counts the elements produced by a successful reply. Both are set
// exactly once per decode, never accumulated across calls.
type Reply struct {
	Status string
	Rows   int
	Fields []Field
}

// DecodeReply classifies and parses one complete reply buffer.
//
// On failure the returned Reply is still non-nil with Status populated
// and Rows zero, so diagnostics survive the error path.
func DecodeReply(buf []byte) (*Reply, error) {
	text := strings.TrimSuffix(string(buf), "\r\n")
	if text == "" {
		return &Reply{Status: ErrNoReply.Message}, ErrNoReply
	}

	lines := strings.Split(text, "\r\n")
	head := lines[0]
	if head == "" {
		// A buffer opening with a bare CRLF has no marker to classify.
		msg := "missing reply marker"
		return &Reply{Status: msg}, ErrUnknownReply.WithDetail(msg)
	}

	switch head[0] {
	case markError:
		msg := stripMarker(head)
		return &Reply{Status: msg}, ErrServer.WithDetail(msg)

	case markStatus:
		return &Reply{Status: stripMarker(head)}, nil

	case markInt:
		n, err := strconv.ParseInt(head[1:], 10, 64)
		if err != nil {
			msg := "bad integer reply: " + head[1:]
			return &Reply{Status: msg}, ErrMalformedReply.WithDetail(msg)
		}
		return &Reply{
			Status: "OK",
			Rows:   1,
			Fields: []Field{{Str: strconv.FormatInt(n, 10)}},
		}, nil

	case markBulk:
		return decodeBulk(lines)

	case markArray:
		return decodeArray(lines)

	default:
		msg := fmt.Sprintf("unknown reply marker %q", head[0])
		return &Reply{Status: msg}, ErrUnknownReply.WithDetail(msg)
	}
}

// stripMarker drops the leading type marker and a single leading space,
// if present.
func stripMarker(line string) string {
	line = line[1:]
	return strings.TrimPrefix(line, " ")
}

func decodeBulk(lines []string) (*Reply, error) {
	length, err := strconv.Atoi(lines[0][1:])
	if err != nil {
		msg := "bad bulk length: " + lines[0][1:]
		return &Reply{Status: msg}, ErrMalformedReply.WithDetail(msg)
	}

	if length < 0 {
		// Null bulk: a meaningful absent value, not a failure.
		return &Reply{Status: "OK", Fields: []Field{{Null: true}}}, nil
	}

	// A zero-length bulk string has no data line after TrimSuffix; an
	// empty string represents it consistently.
	var data string
	if len(lines) > 1 {
		data = lines[1]
	}
	return &Reply{Status: "OK", Rows: 1, Fields: []Field{{Str: data}}}, nil
}

func decodeArray(lines []string) (*Reply, error) {
	declared, err := strconv.Atoi(lines[0][1:])
	if err != nil {
		msg := "bad array length: " + lines[0][1:]
		return &Reply{Status: msg}, ErrMalformedReply.WithDetail(msg)
	}

	if declared < 0 {
		// Null array, decoded like a null bulk.
		return &Reply{Status: "OK", Fields: []Field{{Null: true}}}, nil
	}

	fields := make([]Field, 0, declared)
	for i := 1; i < len(lines); {
		line := lines[i]
		switch {
		case line == nullBulk:
			fields = append(fields, Field{Null: true})
			i++
		case len(line) > 0 && line[0] == markBulk && i+1 < len(lines):
			fields = append(fields, Field{Str: lines[i+1]})
			i += 2
		default:
			// Dangling header or foreign line: stop and let the count
			// check below reject the reply.
			i = len(lines)
		}
	}

	if len(fields) != declared {
		msg := fmt.Sprintf("expected %d elements, got %d", declared, len(fields))
		return &Reply{Status: msg}, ErrMalformedReply.WithDetail(msg)
	}
	return &Reply{Status: "OK", Rows: declared, Fields: fields}, nil
}
