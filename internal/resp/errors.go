package resp

import (
	"errors"
	"fmt"
)

// ProtocolError is a protocol-level failure with a structured code.
// All protocol errors are recoverable; none should terminate the caller.
type ProtocolError struct {
	Code    string // Error code (e.g., "RW-CMD-1001")
	Message string // Human-readable message
	Detail  string // Optional additional detail
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is implements errors.Is() support: two ProtocolErrors match on Code.
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy of the error with additional detail.
func (e *ProtocolError) WithDetail(detail string) *ProtocolError {
	return &ProtocolError{
		Code:    e.Code,
		Message: e.Message,
		Detail:  detail,
	}
}

// Command and reply errors.
var (
	// ErrEmptyCommand indicates the command line held no alphabetic
	// character and was rejected before any I/O.
	ErrEmptyCommand = &ProtocolError{Code: "RW-CMD-1001", Message: "empty command"}

	// ErrParsingLimit indicates the tokenizer's quoted-span scan hit its
	// iteration ceiling, typically because of an unterminated quote.
	ErrParsingLimit = &ProtocolError{Code: "RW-CMD-1002", Message: "parsing limit exceeded"}

	// ErrNoReply indicates an empty or absent reply buffer.
	ErrNoReply = &ProtocolError{Code: "RW-RPL-2001", Message: "no reply"}

	// ErrMalformedReply indicates a reply whose declared element count
	// did not match the elements actually present.
	ErrMalformedReply = &ProtocolError{Code: "RW-RPL-2002", Message: "malformed reply"}

	// ErrUnknownReply indicates a reply with an unrecognized leading byte.
	ErrUnknownReply = &ProtocolError{Code: "RW-RPL-2003", Message: "unknown reply format"}

	// ErrServer indicates a protocol-level error reply ("-...") from the
	// server. The server's message is carried in Detail.
	ErrServer = &ProtocolError{Code: "RW-RPL-2004", Message: "server error"}
)

// IsProtocolError reports whether err is a ProtocolError with the given
// code. An empty code matches any ProtocolError.
func IsProtocolError(err error, code string) bool {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return code == "" || pe.Code == code
	}
	return false
}
