package gnorm

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dekarrin/gnorm/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, script string, opts Options) string {
	var out bytes.Buffer

	eng, err := New(strings.NewReader(script), &out, opts, true)
	require.NoError(t, err)

	require.NoError(t, eng.RunUntilQuit())
	require.NoError(t, eng.Close())

	return out.String()
}

func Test_Engine_RunUntilQuit(t *testing.T) {
	t.Run("normalize and inspect", func(t *testing.T) {
		assert := assert.New(t)

		script := strings.Join([]string{
			"start -> E",
			"E -> E + ID | ID",
			"SHOW",
			"NORMALIZE",
			"FOLLOW E_p0",
			"first E",
			"TERMINALS",
			"QUIT",
		}, "\n")

		out := runScript(t, script, Options{})

		assert.Contains(out, "(direct input mode)")
		assert.Contains(out, "  1  start -> E\n  2  E -> E + ID | ID")
		assert.Contains(out, "E_p0")
		assert.Contains(out, "+ ID E_p0 | ε")
		assert.Contains(out, "FOLLOW(E_p0) = {$}")
		assert.Contains(out, "FIRST(E) = {Id}")
		assert.Contains(out, "Id\nPlus \"+\"")
		assert.True(strings.HasSuffix(out, "Goodbye\n"))
	})

	t.Run("errors do not stop the shell", func(t *testing.T) {
		assert := assert.New(t)

		script := strings.Join([]string{
			"FIRST start",
			"dance",
			"UNDO",
			"expr -> fn",
			"NORMALIZE",
			"SHOW",
		}, "\n")

		out := runScript(t, script, Options{})

		assert.Contains(out, "Nothing has been normalized yet; use NORMALIZE first")
		assert.Contains(out, "I don't know what you mean by \"dance\"\nTry HELP for valid commands")
		assert.Contains(out, "Nothing to undo; the buffer is empty")
		assert.Contains(out, `no rule named "start" is defined`)
		assert.Contains(out, "  1  expr -> fn")
		assert.True(strings.HasSuffix(out, "Goodbye\n"), "end of input should quit")
	})
}

func Test_Engine_Exec(t *testing.T) {
	newEngine := func(t *testing.T) *Engine {
		eng, err := New(strings.NewReader(""), &bytes.Buffer{}, Options{Width: 60, ShowSets: true}, true)
		require.NoError(t, err)
		return eng
	}

	t.Run("undo and clear", func(t *testing.T) {
		assert := assert.New(t)
		eng := newEngine(t)

		eng.Exec(command.Command{Verb: command.Define, Args: []string{"start -> a"}})
		eng.Exec(command.Command{Verb: command.Define, Args: []string{"a -> fn"}})

		out, err := eng.Exec(command.Command{Verb: command.Undo})
		assert.NoError(err)
		assert.Equal("Removed: a -> fn", out)
		assert.Equal([]string{"start -> a"}, eng.Buffer())

		out, err = eng.Exec(command.Command{Verb: command.Clear})
		assert.NoError(err)
		assert.Equal("Buffer cleared", out)
		assert.Empty(eng.Buffer())
	})

	t.Run("check reports conflicts", func(t *testing.T) {
		assert := assert.New(t)
		eng := newEngine(t)

		eng.Exec(command.Command{Verb: command.Define, Args: []string{"start -> ( ID | ( INT"}})

		out, err := eng.Exec(command.Command{Verb: command.Check})
		assert.NoError(err)
		assert.Contains(out, "{(}")
		assert.Contains(out, "backtrack-free: no")

		out, err = eng.Exec(command.Command{Verb: command.Normalize, Args: []string{"BACKTRACK"}})
		assert.NoError(err)
		assert.Contains(out, "start_p0")

		out, err = eng.Exec(command.Command{Verb: command.Table})
		assert.NoError(err)
		assert.Contains(out, "FOLLOW")
		assert.Contains(out, "start_p0")
	})

	t.Run("load", func(t *testing.T) {
		assert := assert.New(t)
		eng := newEngine(t)

		path := filepath.Join(t.TempDir(), "g.txt")
		require.NoError(t, os.WriteFile(path, []byte("start -> ( start )\n\n  | ID\nstart -> fn\n"), 0644))

		out, err := eng.Exec(command.Command{Verb: command.Load, Args: []string{path}})
		assert.NoError(err)
		assert.Equal("Loaded 3 line(s) from "+path, out)
		assert.Equal([]string{"start -> ( start )", "| ID", "start -> fn"}, eng.Buffer())

		_, err = eng.Exec(command.Command{Verb: command.Load, Args: []string{filepath.Join(t.TempDir(), "missing.txt")}})
		assert.ErrorIs(err, os.ErrNotExist)
	})

	t.Run("unknown rule", func(t *testing.T) {
		assert := assert.New(t)
		eng := newEngine(t)

		eng.Exec(command.Command{Verb: command.Define, Args: []string{"start -> fn"}})
		_, err := eng.Exec(command.Command{Verb: command.Normalize})
		require.NoError(t, err)

		_, err = eng.Exec(command.Command{Verb: command.Follow, Args: []string{"nope"}})
		assert.Error(err)
	})
}
