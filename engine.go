// Package gnorm contains a CLI-driven shell for writing grammars a line at a
// time and normalizing them until the user quits.
package gnorm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/internal/command"
	"github.com/dekarrin/gnorm/internal/input"
	"github.com/dekarrin/gnorm/internal/report"
	"github.com/dekarrin/gnorm/internal/shellerr"
	"github.com/dekarrin/rosed"
)

// Options changes how an Engine normalizes and shows grammars.
type Options struct {
	// Grammar is the options used by NORMALIZE. NORMALIZE BACKTRACK always
	// eliminates backtracking regardless of what is set here.
	Grammar grammar.Options

	// Width is the width that tables and messages are fit to. If less than 1,
	// 80 is used.
	Width int

	// ShowSets is whether TABLE includes FIRST and FOLLOW columns.
	ShowSets bool

	// HistoryFile is where interactive input history is kept. If empty, none
	// is kept.
	HistoryFile string
}

// Engine contains the things needed to run a grammar shell attached to an
// input stream and an output stream.
type Engine struct {
	in          command.Reader
	out         *bufio.Writer
	opts        Options
	forceDirect bool
	running     bool

	buffer  []string
	last    grammar.Grammar
	hasLast bool
}

const defaultWidth = 80

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. Readline is used for input only when both are
// the standard streams and forceDirectInput is false.
func New(inputStream io.Reader, outputStream io.Writer, opts Options, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if opts.Width < 1 {
		opts.Width = defaultWidth
	}

	eng := &Engine{
		out:         bufio.NewWriter(outputStream),
		opts:        opts,
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		var err error
		eng.in, err = input.NewInteractiveReader(opts.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close line reader: %w", err)
	}

	return nil
}

// Buffer returns the lines of grammar text entered so far.
func (eng *Engine) Buffer() []string {
	return append([]string{}, eng.buffer...)
}

// Load replaces the buffer with the non-blank lines of the file at path.
func (eng *Engine) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return shellerr.Wrapf(err, "Could not read %s: %v", path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	eng.buffer = lines
	return nil
}

// RunUntilQuit begins reading lines from the streams and applying them until
// the QUIT command is received or input ends.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "gnorm grammar shell\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "===================\n"
	introMsg += "Enter rules like \"start -> ( start ) | ID\", then NORMALIZE. HELP lists commands.\n"
	if len(eng.buffer) > 0 {
		introMsg += fmt.Sprintf("%d line(s) in buffer\n", len(eng.buffer))
	}

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for eng.running {
		cmd, err := command.Get(eng.in, eng.out)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("get user command: %w", err)
			}
			break
		}

		if cmd.Verb == command.Quit {
			eng.running = false
			break
		}

		output, err := eng.Exec(cmd)
		if err != nil {
			consoleMessage := shellerr.Message(err)
			consoleMessage = rosed.Edit(consoleMessage).Wrap(eng.opts.Width).String()
			output = consoleMessage
		}
		if output != "" {
			if err := eng.write(output + "\n"); err != nil {
				return err
			}
		}
	}

	return eng.write("Goodbye\n")
}

// Exec carries out a single command and returns the text to show for it. QUIT
// is not handled by Exec; it does nothing.
func (eng *Engine) Exec(cmd command.Command) (string, error) {
	switch cmd.Verb {
	case command.Define:
		eng.buffer = append(eng.buffer, cmd.Arg(0))
		return "", nil
	case command.Normalize:
		opts := eng.opts.Grammar
		if cmd.Arg(0) == "BACKTRACK" {
			opts.EliminateBacktracking = true
		}
		g, err := grammar.Normalize(eng.text(), opts)
		if err != nil {
			return "", err
		}
		eng.last = g
		eng.hasLast = true
		return report.Text(g), nil
	case command.Check:
		g, err := grammar.Analyze(eng.text())
		if err != nil {
			return "", err
		}
		conflicts := grammar.LL1Conflicts(g.Rules())
		msg := report.Conflicts(conflicts, eng.opts.Width)
		if g.IsBacktrackFree() {
			msg += "\nbacktrack-free: yes"
		} else {
			msg += "\nbacktrack-free: no"
		}
		return msg, nil
	case command.First, command.Follow:
		r, err := eng.lastRule(cmd.Arg(0))
		if err != nil {
			return "", err
		}
		set := r.First()
		if cmd.Verb == command.Follow {
			set = r.Follow()
		}
		strs := make([]string, len(set))
		for i := range set {
			strs[i] = set[i].String()
		}
		return fmt.Sprintf("%s(%s) = {%s}", cmd.Verb, r.Name(), strings.Join(strs, ", ")), nil
	case command.Table:
		if !eng.hasLast {
			return "", errNothingNormalized
		}
		return report.Table(eng.last, eng.opts.Width, eng.opts.ShowSets), nil
	case command.Terminals:
		if !eng.hasLast {
			return "", errNothingNormalized
		}
		var sb strings.Builder
		for i, k := range report.Terminals(eng.last) {
			if i > 0 {
				sb.WriteRune('\n')
			}
			sb.WriteString(k.String())
			if lit, ok := k.Literal(); ok {
				sb.WriteString(fmt.Sprintf(" %q", lit))
			}
		}
		return sb.String(), nil
	case command.Show:
		if len(eng.buffer) == 0 {
			return "(buffer is empty)", nil
		}
		var sb strings.Builder
		for i, line := range eng.buffer {
			if i > 0 {
				sb.WriteRune('\n')
			}
			sb.WriteString(fmt.Sprintf("%3d  %s", i+1, line))
		}
		return sb.String(), nil
	case command.Undo:
		if len(eng.buffer) == 0 {
			return "", shellerr.New("Nothing to undo; the buffer is empty", "")
		}
		dropped := eng.buffer[len(eng.buffer)-1]
		eng.buffer = eng.buffer[:len(eng.buffer)-1]
		return "Removed: " + dropped, nil
	case command.Clear:
		eng.buffer = nil
		return "Buffer cleared", nil
	case command.Load:
		if err := eng.Load(cmd.Arg(0)); err != nil {
			return "", err
		}
		return fmt.Sprintf("Loaded %d line(s) from %s", len(eng.buffer), cmd.Arg(0)), nil
	case command.Help:
		return helpText, nil
	case command.Quit:
		return "", nil
	default:
		return "", shellerr.Newf("I don't know how to %s", cmd.Verb)
	}
}

var errNothingNormalized = shellerr.New("Nothing has been normalized yet; use NORMALIZE first", "")

func (eng *Engine) lastRule(name string) (*grammar.Rule, error) {
	if !eng.hasLast {
		return nil, errNothingNormalized
	}
	r := eng.last.Rule(name)
	if r == nil {
		return nil, shellerr.Newf("There is no rule named %q in the last normalized grammar", name)
	}
	return r, nil
}

func (eng *Engine) text() string {
	return strings.Join(eng.buffer, "\n")
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

const helpText = `Lines containing "->" are added to the grammar buffer. Commands:
  NORMALIZE [BACKTRACK]  normalize the buffer and show the result (N)
  CHECK                  show LL(1) conflicts of the buffer as written (ANALYZE)
  FIRST <rule>           show FIRST of a rule in the last normalized grammar
  FOLLOW <rule>          show FOLLOW of a rule in the last normalized grammar
  TABLE                  show the last normalized grammar as a table
  TERMINALS              show the terminals the last normalized grammar uses
  SHOW                   show the buffer (LIST)
  UNDO                   remove the last line of the buffer
  CLEAR                  empty the buffer
  LOAD <file>            replace the buffer with the lines of a file
  HELP                   show this help (?)
  QUIT                   leave the shell (EXIT, BYE)`
