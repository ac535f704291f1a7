// Package version contains information on the current version of the program.
// It is split from the main program for easy use.
package version

// Current is the string representing the current version of gnorm.
const Current = "0.4.0"

// APICurrent is the string representing the current version of the gnorm HTTP
// API.
const APICurrent = "1.0.0"
