package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/rezi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrammar(t *testing.T, name, text string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func Test_Normalize(t *testing.T) {
	exprFile := writeGrammar(t, "expr.txt", "start -> E\nE -> E + ID | ID\n")
	prefixFile := writeGrammar(t, "prefix.txt", "start -> ( ID | ( INT\n")

	t.Run("text output in argument order", func(t *testing.T) {
		assert := assert.New(t)

		out, err := execute("normalize", "-f", "text", "-b=false", prefixFile, exprFile)

		assert.NoError(err)
		assert.True(strings.HasPrefix(out, "# "+prefixFile+"\n"), out)
		assert.Contains(out, "# "+exprFile+"\n")
		assert.Less(strings.Index(out, prefixFile), strings.Index(out, exprFile))
		assert.Contains(out, "+ ID E_p0 | ε")
	})

	t.Run("backtracking to binary file", func(t *testing.T) {
		assert := assert.New(t)

		outFile := filepath.Join(t.TempDir(), "out.bin")
		_, err := execute("normalize", "-b", "-f", "binary", "-o", outFile, prefixFile)
		if !assert.NoError(err) {
			return
		}

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)

		var g grammar.Grammar
		_, err = rezi.DecBinary(data, &g)
		require.NoError(t, err)
		assert.NotNil(g.Rule("start_p0"))
		assert.True(g.IsBacktrackFree())
	})

	t.Run("bad grammar", func(t *testing.T) {
		badFile := writeGrammar(t, "bad.txt", "expr -> fn\n")

		_, err := execute("normalize", "-f", "text", "-o", "", badFile)

		assert.ErrorIs(t, err, grammar.ErrSyntax)
	})
}

func Test_Check(t *testing.T) {
	t.Run("conflicts fail", func(t *testing.T) {
		assert := assert.New(t)
		path := writeGrammar(t, "prefix.txt", "start -> ( ID | ( INT\n")

		out, err := execute("check", path)

		assert.Error(err)
		assert.Contains(out, "{(}")
	})

	t.Run("clean grammar passes", func(t *testing.T) {
		assert := assert.New(t)
		path := writeGrammar(t, "clean.txt", "start -> ( start ) | ID\n")

		out, err := execute("check", path)

		assert.NoError(err)
		assert.Contains(out, "no conflicts")
	})
}

func Test_Version(t *testing.T) {
	out, err := execute("version")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gnorm "))
}
