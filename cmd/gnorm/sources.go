package main

import (
	"fmt"
	"io"
	"os"
)

// source is grammar text and where it came from.
type source struct {
	name string
	text string
}

// readSources reads every file in paths. If paths is empty, stdin is read
// instead.
func readSources(stdin io.Reader, paths []string) ([]source, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []source{{name: "stdin", text: string(data)}}, nil
	}

	srcs := make([]source, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		srcs[i] = source{name: p, text: string(data)}
	}
	return srcs, nil
}
