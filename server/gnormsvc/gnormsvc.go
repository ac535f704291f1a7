// Package gnormsvc has services for normalizing grammars and managing stored
// results, decoupled from the API that accesses them.
package gnormsvc

import (
	"context"
	"errors"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/internal/store"
	"github.com/dekarrin/gnorm/server/serr"
	"github.com/google/uuid"
)

// Service is a service for normalizing grammars and keeping the results. It
// performs the actions requested and makes calls to persistence to preserve
// them.
//
// The zero-value of Service is not ready to be used; assign a valid store to
// DB before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB store.Store
}

// Analysis is a grammar as written along with its LL(1) conflicts.
type Analysis struct {
	Grammar   grammar.Grammar
	Conflicts []grammar.Conflict
}

// Normalize normalizes source with opts and stores the result. If the same
// source and options were already normalized, the stored result is returned
// instead and cached will be true.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the grammar could not be
// normalized, it will match serr.ErrGrammar as well as the grammar package
// sentinel for what went wrong. If the error occured due to an unexpected
// problem with the DB, it will match serr.ErrDB.
func (svc Service) Normalize(ctx context.Context, source string, opts grammar.Options) (r store.Result, cached bool, err error) {
	key, err := store.Key(source, opts)
	if err != nil {
		return store.Result{}, false, serr.New("could not compute result key", err)
	}

	existing, err := svc.DB.Results().GetByKey(ctx, key)
	if err == nil {
		return existing, true, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return store.Result{}, false, serr.WrapDB("could not check for existing result", err)
	}

	g, err := grammar.Normalize(source, opts)
	if err != nil {
		return store.Result{}, false, serr.Grammar(err)
	}

	r, err = svc.DB.Results().Create(ctx, store.Result{
		Key:          key,
		Source:       source,
		Backtracking: opts.EliminateBacktracking,
		Grammar:      g,
	})
	if err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			// normalized concurrently by another request; use theirs
			existing, getErr := svc.DB.Results().GetByKey(ctx, key)
			if getErr == nil {
				return existing, true, nil
			}
		}
		return store.Result{}, false, serr.WrapDB("could not store result", err)
	}

	return r, false, nil
}

// Analyze computes FIRST and FOLLOW sets for source as written and finds every
// LL(1) conflict in it. Nothing is stored.
//
// The returned error, if non-nil, will match serr.ErrGrammar.
func (svc Service) Analyze(ctx context.Context, source string) (Analysis, error) {
	g, err := grammar.Analyze(source)
	if err != nil {
		return Analysis{}, serr.Grammar(err)
	}

	return Analysis{
		Grammar:   g,
		Conflicts: grammar.LL1Conflicts(g.Rules()),
	}, nil
}

// GetAllResults returns all results currently in persistence.
func (svc Service) GetAllResults(ctx context.Context) ([]store.Result, error) {
	all, err := svc.DB.Results().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}

	return all, nil
}

// GetResult returns the result with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no result with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if there
// is an issue with one of the arguments, it will match serr.ErrBadArgument.
func (svc Service) GetResult(ctx context.Context, id string) (store.Result, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return store.Result{}, serr.BadArgument("ID is not valid")
	}

	r, err := svc.DB.Results().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Result{}, serr.ErrNotFound
		}
		return store.Result{}, serr.WrapDB("could not get result", err)
	}

	return r, nil
}

// DeleteResult deletes the result with the given ID. It returns the deleted
// result just after it was deleted.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no result with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if there
// is an issue with one of the arguments, it will match serr.ErrBadArgument.
func (svc Service) DeleteResult(ctx context.Context, id string) (store.Result, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return store.Result{}, serr.BadArgument("ID is not valid")
	}

	r, err := svc.DB.Results().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Result{}, serr.ErrNotFound
		}
		return store.Result{}, serr.WrapDB("could not delete result", err)
	}

	return r, nil
}
