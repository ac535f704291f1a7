// Package inmem is a Store that keeps everything in memory. Nothing is kept
// once the process exits.
package inmem

import (
	"github.com/dekarrin/gnorm/internal/store"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gnorm.store'.
func tracer() tracing.Trace {
	return tracing.Select("gnorm.store")
}

type datastore struct {
	results *ResultsRepository
}

// NewDatastore creates a new, empty in-memory Store.
func NewDatastore() store.Store {
	return &datastore{
		results: NewResultsRepository(),
	}
}

func (s *datastore) Results() store.ResultRepository {
	return s.results
}

func (s *datastore) Close() error {
	return s.results.Close()
}
