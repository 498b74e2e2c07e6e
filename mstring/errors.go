package mstring

import (
	"errors"
	"fmt"
)

// Error kinds returned by MString operations. Use errors.Is to test for them.
var (
	// ErrIndex reports an index or range outside the buffer.
	ErrIndex = errors.New("index out of range")
	// ErrType reports an argument of the wrong shape.
	ErrType = errors.New("wrong argument type")
	// ErrValue reports an argument of the right type with an invalid value.
	ErrValue = errors.New("invalid argument value")
	// ErrAllocation reports a failed storage allocation.
	ErrAllocation = errors.New("allocation failed")
	// ErrReleased reports use of a buffer whose storage was released.
	ErrReleased = errors.New("buffer released")
)

// Error describes a failed operation. Kind is one of the Err* values above.
type Error struct {
	Kind  error
	Op    string
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("mstring: %s: %s: %v", e.Op, msg, e.Cause)
	}
	return fmt.Sprintf("mstring: %s: %s", e.Op, msg)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func indexError(op string) *Error {
	return &Error{Kind: ErrIndex, Op: op, Msg: "index out of range"}
}

func releasedError(op string) *Error {
	return &Error{Kind: ErrReleased, Op: op}
}

// KindName returns the conventional exception name for err's kind, such as
// "IndexError", or "" when err is not an MString error.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrIndex):
		return "IndexError"
	case errors.Is(err, ErrType):
		return "TypeError"
	case errors.Is(err, ErrValue):
		return "ValueError"
	case errors.Is(err, ErrAllocation):
		return "MemoryError"
	case errors.Is(err, ErrReleased):
		return "ReferenceError"
	}
	return ""
}
