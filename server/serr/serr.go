// Package serr has the errors returned by the gnorm service layer. An Error
// carries a message and any number of causes, and errors.Is matches it against
// each cause, so handlers decide on a response by checking for the sentinel
// values below.
package serr

import (
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("no result with that ID exists")
	ErrDB            = errors.New("result store failed")
	ErrBadArgument   = errors.New("invalid argument")
	ErrBodyUnmarshal = errors.New("malformed request body")
	ErrGrammar       = errors.New("grammar could not be normalized")
)

// Error is a failure in the service layer. Its text is its message followed by
// the text of its first cause; the remaining causes only serve errors.Is.
type Error struct {
	msg    string
	causes []error
}

func (e Error) Error() string {
	if len(e.causes) == 0 {
		return e.msg
	}

	var sb strings.Builder
	if e.msg != "" {
		sb.WriteString(e.msg)
		sb.WriteString(": ")
	}
	sb.WriteString(e.causes[0].Error())
	return sb.String()
}

// Unwrap returns every cause of e.
func (e Error) Unwrap() []error {
	return e.causes
}

// New returns an Error with the given message and causes. msg may be empty, in
// which case the text of the first cause is used alone.
func New(msg string, causes ...error) Error {
	e := Error{msg: msg}
	if len(causes) > 0 {
		e.causes = append([]error(nil), causes...)
	}
	return e
}

// WrapDB returns an Error for a store failure. It matches both err and ErrDB.
func WrapDB(msg string, err error) Error {
	return New(msg, err, ErrDB)
}

// Grammar returns an Error for grammar text that was rejected. It matches both
// err, and through it the grammar package sentinels, and ErrGrammar.
func Grammar(err error) Error {
	return New("", err, ErrGrammar)
}

// BadArgument returns an Error that matches ErrBadArgument.
func BadArgument(msg string) Error {
	return New(msg, ErrBadArgument)
}
