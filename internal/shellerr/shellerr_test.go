package shellerr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Message(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "plain error",
			err:    errors.New("bad thing"),
			expect: "bad thing",
		},
		{
			name:   "shell error",
			err:    New("Nothing to undo", "buffer empty"),
			expect: "Nothing to undo",
		},
		{
			name:   "formatted",
			err:    Newf("No rule named %q", "expr"),
			expect: `No rule named "expr"`,
		},
		{
			name:   "wrapped by fmt",
			err:    fmt.Errorf("outer: %w", New("inner human", "inner")),
			expect: "inner human",
		},
		{
			name:   "wrapping",
			err:    Wrapf(fs.ErrNotExist, "Could not open %s", "g.txt"),
			expect: "Could not open g.txt",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Message(tc.err))
		})
	}
}

func Test_Wrap(t *testing.T) {
	assert := assert.New(t)

	err := Wrap(fs.ErrNotExist, "That file does not exist")

	assert.ErrorIs(err, fs.ErrNotExist)
	assert.Equal(fs.ErrNotExist.Error(), err.Error())
}

func Test_New_GeneratesTechnical(t *testing.T) {
	err := New("Try again", "")
	assert.Equal(t, "shell error: Try again", err.Error())
}
