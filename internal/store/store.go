// Package store provides persistence for normalized grammars. Results are
// keyed by the grammar text and options that produced them so that a repeated
// request can be answered without running the pipeline again.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cnf/structhash"
	"github.com/dekarrin/gnorm/grammar"
	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
)

// Store holds all the repositories.
type Store interface {
	Results() ResultRepository
	Close() error
}

// ResultRepository holds normalized grammars.
type ResultRepository interface {

	// Create creates a new Result. All attributes except for auto-generated
	// fields are taken from the provided Result. ID and Created are assigned
	// by the repository.
	Create(ctx context.Context, r Result) (Result, error)
	GetByID(ctx context.Context, id uuid.UUID) (Result, error)
	GetByKey(ctx context.Context, key string) (Result, error)

	// GetAll returns every stored Result ordered by creation time, with ties
	// broken by ID.
	GetAll(ctx context.Context) ([]Result, error)
	Delete(ctx context.Context, id uuid.UUID) (Result, error)
	Close() error
}

// Result is a grammar that has been normalized along with what it was
// normalized from.
type Result struct {
	ID uuid.UUID

	// Key identifies the source and options. Two results with the same Key
	// would have the same Grammar.
	Key string

	// Source is the grammar text as it was given.
	Source string

	// Backtracking is whether backtracking elimination was run.
	Backtracking bool

	Grammar grammar.Grammar
	Created time.Time
}

// Options returns the options the Result was normalized with.
func (r Result) Options() grammar.Options {
	return grammar.Options{EliminateBacktracking: r.Backtracking}
}

type keyFields struct {
	Lines        []string
	Backtracking bool
}

// Key returns the key that a Result for source normalized with opts is stored
// under. Whitespace at the ends of lines and blank lines do not affect it.
func Key(source string, opts grammar.Options) (string, error) {
	var lines []string
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return structhash.Hash(keyFields{Lines: lines, Backtracking: opts.EliminateBacktracking}, 1)
}

// Less orders results by creation time and then by ID. It is the order
// GetAll returns them in.
func Less(l, r Result) bool {
	if l.Created.Equal(r.Created) {
		return l.ID.String() < r.ID.String()
	}
	return l.Created.Before(r.Created)
}
