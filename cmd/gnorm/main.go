/*
Gnorm normalizes context-free grammars into a form that a recursive-descent
parser can use.

Usage:

	gnorm [command] [flags]

The commands are:

	normalize [FILE...]
		Normalize each grammar file, or stdin if none are given, and print
		the results.

	check [FILE...]
		Print the conflicts of each grammar as it is written. Exits with a
		non-zero status if any grammar has conflicts.

	shell [FILE]
		Start an interactive shell for writing grammars a line at a time.

	serve
		Start the HTTP REST server.

	version
		Give the current version of gnorm and then exit.

Settings are read from "gnorm.toml" in the current directory if it exists, or
from the file given with --config.
*/
package main

import (
	"os"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitError indicates an unsuccessful program execution.
	ExitError
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
