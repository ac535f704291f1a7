// Package shellerr holds errors raised while interpreting shell input. Each
// carries a message meant for the person at the prompt along with the usual
// technical one.
package shellerr

import (
	"errors"
	"fmt"
)

// shellError is an error caused by attempting to interpret shell input. Either
// the input could not be understood or it asks for something that cannot be
// done right now.
type shellError struct {
	msg   string
	human string
	wrap  error
}

func (e *shellError) Error() string {
	return e.msg
}

// Human returns the message that should be shown at the prompt.
func (e *shellError) Human() string {
	return e.human
}

func (e *shellError) Unwrap() error {
	return e.wrap
}

// New returns a new error that has both the message to show at the prompt and
// the technical description of the error. If technical is empty, one is
// generated.
func New(human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("shell error: %s", human)
	}
	return &shellError{
		msg:   technical,
		human: human,
	}
}

// Newf returns a new error whose prompt message is built from the given format
// string and arguments.
func Newf(humanFormat string, a ...interface{}) error {
	return New(fmt.Sprintf(humanFormat, a...), "")
}

// Wrap returns a new error with a message to show at the prompt that wraps e.
// The technical message is that of e.
func Wrap(e error, human string) error {
	return &shellError{
		msg:   e.Error(),
		human: human,
		wrap:  e,
	}
}

// Wrapf is Wrap with a prompt message built from a format string.
func Wrapf(e error, humanFormat string, a ...interface{}) error {
	return Wrap(e, fmt.Sprintf(humanFormat, a...))
}

// Message gets the message to show at the prompt for err. If err is or wraps
// an error from this package, its human message is returned. Otherwise,
// err.Error() is.
func Message(err error) string {
	var shErr *shellError
	if errors.As(err, &shErr) {
		return shErr.Human()
	}
	return err.Error()
}
