package history

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches a lookup
	ErrNotFound = errors.New("history record not found")

	// ErrClosed is returned when using a closed journal
	ErrClosed = errors.New("history journal is closed")

	// ErrUnknownDriver is returned by Open for an unsupported driver name
	ErrUnknownDriver = errors.New("unknown history driver")
)

// Error describes a failed journal operation.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("history %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("history %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, msg string, err error) error {
	return &Error{Op: op, Message: msg, Err: err}
}
