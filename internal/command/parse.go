package command

import (
	"strings"

	"github.com/dekarrin/gnorm/internal/shellerr"
)

var (
	// VerbAliases maps shorthand verbs (which must be the first words in a
	// command) to their canonical forms. They are all uppercase.
	VerbAliases map[string]string = map[string]string{
		"N":       Normalize,
		"NORM":    Normalize,
		"ANALYZE": Check,
		"LIST":    Show,
		"EXIT":    Quit,
		"BYE":     Quit,
		"?":       Help,
		"/?":      Help,
		"/H":      Help,
		"-H":      Help,
		"H":       Help,
	}
)

// IsDefinition returns whether the line is a rule definition rather than a
// command.
func IsDefinition(line string) bool {
	return strings.Contains(line, "->")
}

// ParseCommand parses a command from the given text. If it cannot, a non-nil
// error is returned.
//
// If an empty string or a string composed only of whitespace is passed in, nil
// error is returned and a zero value for Command will be returned.
func ParseCommand(toParse string) (Command, error) {
	if IsDefinition(toParse) {
		return Command{Verb: Define, Args: []string{strings.TrimSpace(toParse)}}, nil
	}

	var parsedCmd Command

	// tokenize our string, collapsing all whitespace. case is kept for args;
	// rule names and file paths care about it.
	originalTokens := strings.Fields(toParse)
	if len(originalTokens) < 1 {
		return parsedCmd, nil
	}

	verbTokens := ExpandAliases([]string{strings.ToUpper(originalTokens[0])}, 1)
	parsedCmd.Verb = verbTokens[0]
	args := originalTokens[1:]

	switch parsedCmd.Verb {
	case Normalize:
		if len(args) > 1 || (len(args) == 1 && strings.ToUpper(args[0]) != "BACKTRACK") {
			return parsedCmd, shellerr.Newf("%s takes only the optional word BACKTRACK", originalTokens[0])
		}
		if len(args) == 1 {
			parsedCmd.Args = []string{"BACKTRACK"}
		}
	case First, Follow:
		if len(args) != 1 {
			return parsedCmd, shellerr.Newf("%s needs exactly one rule name, such as %s start", originalTokens[0], originalTokens[0])
		}
		parsedCmd.Args = args
	case Load:
		if len(args) < 1 {
			return parsedCmd, shellerr.Newf("I don't know what file you want to load")
		}
		// paths may have spaces in them
		parsedCmd.Args = []string{strings.Join(args, " ")}
	case Check, Table, Terminals, Show, Undo, Clear, Help, Quit:
		// ensure there are no additional args
		if len(args) > 0 {
			errMsg := "You can't %s *something*; type %s by itself"
			return parsedCmd, shellerr.Newf(errMsg, originalTokens[0], originalTokens[0])
		}
	default:
		return parsedCmd, shellerr.Newf("I don't know what you mean by %q", originalTokens[0])
	}

	return parsedCmd, nil
}

// ExpandAliases takes a slice of tokens of user input and runs alias expansion
// on it. It expects all strings in the given slice to be upper case; failure to
// ensure this may cause the expansion to not work properly. The returned slice
// contains the same tokens but with aliases expanded.
//
// The unexpanded tokens slice is not modified during this operation.
//
// Aliases up to aliasLimit words long are supported. If it is less than 1, the
// given tokens will be returned unchanged.
func ExpandAliases(tokens []string, aliasLimit int) []string {
	expandedTokens := append([]string{}, tokens...)
	if aliasLimit < 1 {
		return expandedTokens
	}

	if aliasLimit > len(tokens) {
		aliasLimit = len(tokens)
	}

	for curLimit := 1; curLimit <= aliasLimit; curLimit++ {
		checkStr := strings.Join(tokens[:curLimit], " ")
		expansion, ok := VerbAliases[checkStr]
		if ok {
			replacementTokens := strings.Fields(expansion)

			// only one substitution is ever done
			return append(replacementTokens, tokens[curLimit:]...)
		}
	}

	return expandedTokens
}
