package client

import (
	"errors"
	"fmt"
)

// TransportError is a transport-level failure with a structured code.
// Like the protocol errors in internal/resp, all of these are local and
// recoverable for the caller.
type TransportError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support: two TransportErrors match on Code.
func (e *TransportError) Is(target error) bool {
	t, ok := target.(*TransportError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *TransportError) WithCause(cause error) *TransportError {
	return &TransportError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
	}
}

var (
	// ErrNotConnected indicates the connection is gone; no I/O was
	// attempted.
	ErrNotConnected = &TransportError{Code: "RW-NET-3001", Message: "not connected"}

	// ErrTransport indicates a send or receive failure on the wire.
	ErrTransport = &TransportError{Code: "RW-NET-3002", Message: "transport error"}

	// ErrTimeout indicates the await step gave up before a reply landed.
	// The connection is closed afterwards, since a late reply would
	// otherwise desynchronize the request/reply pairing.
	ErrTimeout = &TransportError{Code: "RW-NET-3003", Message: "timeout awaiting reply"}
)

// IsTransportError reports whether err is a TransportError with the
// given code. An empty code matches any TransportError.
func IsTransportError(err error, code string) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return code == "" || te.Code == code
	}
	return false
}
