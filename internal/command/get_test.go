package command

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sliceReader struct {
	lines []string
}

func (sr *sliceReader) ReadLine() (string, error) {
	if len(sr.lines) == 0 {
		return "", io.EOF
	}
	line := sr.lines[0]
	sr.lines = sr.lines[1:]
	return line, nil
}

func (sr *sliceReader) Close() error {
	return nil
}

func Test_Get(t *testing.T) {
	t.Run("skips bad input", func(t *testing.T) {
		assert := assert.New(t)

		var out strings.Builder
		w := bufio.NewWriter(&out)
		r := &sliceReader{lines: []string{"dance", "table"}}

		cmd, err := Get(r, w)

		assert.NoError(err)
		assert.Equal(Command{Verb: Table}, cmd)
		assert.Equal("I don't know what you mean by \"dance\"\nTry HELP for valid commands\n", out.String())
	})

	t.Run("end of input", func(t *testing.T) {
		assert := assert.New(t)

		w := bufio.NewWriter(io.Discard)
		r := &sliceReader{}

		_, err := Get(r, w)

		assert.ErrorIs(err, io.EOF)
	})
}
