package grammar

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is a cause of every error produced due to malformed grammar
	// text, such as an invalid or reserved rule name or a missing start rule.
	ErrSyntax = errors.New("syntax error")

	// ErrStructure is a cause of every error produced because a grammar does
	// not hold to the structural rules a normalized grammar must follow.
	ErrStructure = errors.New("structural error")

	// ErrNonTermination is a cause of every error produced because a rewrite
	// went past the bound on how much work it may do.
	ErrNonTermination = errors.New("non-termination guard tripped")
)

// Error is returned by the functions in this package when processing a grammar
// fails. It holds a message along with the line or rule it is about, and
// errors.Is will return true when it is checked against any of ErrSyntax,
// ErrStructure, or ErrNonTermination that it was created with.
type Error struct {
	msg   string
	line  int
	rule  string
	cause []error
}

// Error returns the message of the Error prefixed by its category and by the
// line or rule it occurred in, if known.
func (e Error) Error() string {
	var prefix string
	if len(e.cause) > 0 {
		prefix = e.cause[0].Error() + ": "
	}

	if e.line > 0 {
		prefix += fmt.Sprintf("line %d: ", e.line)
	} else if e.rule != "" {
		prefix += fmt.Sprintf("rule %q: ", e.rule)
	}

	return prefix + e.msg
}

// Line returns the 1-indexed line of grammar text the error occurred on, or 0
// if it did not come from a particular line.
func (e Error) Line() int {
	return e.line
}

// Rule returns the name of the rule the error is about, or "" if it is not
// about a particular rule.
func (e Error) Rule() string {
	return e.rule
}

// Unwrap returns the causes of the Error.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether one of the causes of the Error is target.
func (e Error) Is(target error) bool {
	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

func syntaxErrorf(line int, format string, a ...interface{}) Error {
	return Error{msg: fmt.Sprintf(format, a...), line: line, cause: []error{ErrSyntax}}
}

func structureErrorf(rule string, format string, a ...interface{}) Error {
	return Error{msg: fmt.Sprintf(format, a...), rule: rule, cause: []error{ErrStructure}}
}

func nonTerminationErrorf(rule string, format string, a ...interface{}) Error {
	return Error{msg: fmt.Sprintf(format, a...), rule: rule, cause: []error{ErrNonTermination}}
}
