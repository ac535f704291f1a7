package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/gnorm/internal/store"
	"github.com/dekarrin/gnorm/internal/util"
	"github.com/google/uuid"
)

func NewResultsRepository() *ResultsRepository {
	return &ResultsRepository{
		results:    make(map[uuid.UUID]store.Result),
		byKeyIndex: make(map[string]uuid.UUID),
	}
}

// ResultsRepository is a store.ResultRepository backed by maps. It is safe
// for concurrent use.
type ResultsRepository struct {
	mtx        sync.RWMutex
	results    map[uuid.UUID]store.Result
	byKeyIndex map[string]uuid.UUID
}

func (repo *ResultsRepository) Close() error {
	return nil
}

func (repo *ResultsRepository) Create(ctx context.Context, r store.Result) (store.Result, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return store.Result{}, fmt.Errorf("could not generate ID: %w", err)
	}

	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	if _, ok := repo.byKeyIndex[r.Key]; ok {
		return store.Result{}, store.ErrConstraintViolation
	}

	r.ID = newUUID
	r.Created = time.Now()

	repo.results[r.ID] = r
	repo.byKeyIndex[r.Key] = r.ID

	tracer().Debugf("inmem: created result %s", r.ID)
	return r, nil
}

func (repo *ResultsRepository) GetAll(ctx context.Context) ([]store.Result, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	all := make([]store.Result, 0, len(repo.results))
	for k := range repo.results {
		all = append(all, repo.results[k])
	}

	return util.SortBy(all, store.Less), nil
}

func (repo *ResultsRepository) GetByID(ctx context.Context, id uuid.UUID) (store.Result, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	r, ok := repo.results[id]
	if !ok {
		return store.Result{}, store.ErrNotFound
	}

	return r, nil
}

func (repo *ResultsRepository) GetByKey(ctx context.Context, key string) (store.Result, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	id, ok := repo.byKeyIndex[key]
	if !ok {
		return store.Result{}, store.ErrNotFound
	}

	return repo.results[id], nil
}

func (repo *ResultsRepository) Delete(ctx context.Context, id uuid.UUID) (store.Result, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	r, ok := repo.results[id]
	if !ok {
		return store.Result{}, store.ErrNotFound
	}

	delete(repo.byKeyIndex, r.Key)
	delete(repo.results, r.ID)

	tracer().Debugf("inmem: deleted result %s", r.ID)
	return r, nil
}
