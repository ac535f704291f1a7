// Package command defines shell command data types and handles parsing of
// commands from input sources.
package command

// Verbs understood by the shell.
const (
	Define    = "DEFINE"
	Normalize = "NORMALIZE"
	Check     = "CHECK"
	First     = "FIRST"
	Follow    = "FOLLOW"
	Table     = "TABLE"
	Terminals = "TERMINALS"
	Show      = "SHOW"
	Undo      = "UNDO"
	Clear     = "CLEAR"
	Load      = "LOAD"
	Help      = "HELP"
	Quit      = "QUIT"
)

// Command is a valid command received from a shell input source.
type Command struct {

	// Verb is the canonical name of the command being invoked, such as
	// "NORMALIZE", "FIRST", or "QUIT". Some verbs have shorthand forms; "N"
	// could be typed instead of "NORMALIZE", and it would still result in a
	// Command with a verb of NORMALIZE.
	//
	// A line of grammar text results in a Command with a verb of DEFINE.
	Verb string

	// Args are the words given after the verb, in their original case. For a
	// DEFINE the only arg is the entire line.
	Args []string
}

// Arg returns the i-th argument of the command, or the empty string if there
// is none.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
