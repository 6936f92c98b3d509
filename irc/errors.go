package irc

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrConnect wraps a failure to establish the initial TCP connection.
type ErrConnect struct {
	Err error
}

func (e *ErrConnect) Error() string { return fmt.Sprintf("irc: connect error: %v", e.Err) }
func (e *ErrConnect) Unwrap() error { return e.Err }

// ErrIO wraps a socket failure that occurred while the connection was
// active (after a successful connect).
type ErrIO struct {
	Err error
}

func (e *ErrIO) Error() string { return fmt.Sprintf("irc: io error: %v", e.Err) }
func (e *ErrIO) Unwrap() error { return e.Err }

func wrapConnect(err error) error {
	return &ErrConnect{Err: errors.WithStack(err)}
}

func wrapIO(err error) error {
	return &ErrIO{Err: errors.WithStack(err)}
}
