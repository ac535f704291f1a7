// Package sqlite is a Store that persists results to SQLite database files in
// a data directory.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/gnorm/internal/store"
	"github.com/npillmayer/schuko/tracing"
	"modernc.org/sqlite"
)

// sqliteConstraint is the primary result code for constraint failures. The
// extended codes (such as for UNIQUE) keep it in their low byte.
const sqliteConstraint = 19

// tracer traces with key 'gnorm.store'.
func tracer() tracing.Trace {
	return tracing.Select("gnorm.store")
}

type datastore struct {
	dbFilename string
	db         *sql.DB

	results *ResultsDB
}

// NewDatastore opens (creating if needed) the database files in storageDir
// and returns a Store that uses them. The directory must already exist.
func NewDatastore(storageDir string) (store.Store, error) {
	st := &datastore{
		dbFilename: "results.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.results = &ResultsDB{db: st.db}
	if err := st.results.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("%s: %w", st.dbFilename, err)
	}

	tracer().Infof("sqlite: opened %s", fileName)
	return st, nil
}

func (s *datastore) Results() store.ResultRepository {
	return s.results
}

func (s *datastore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code()&0xff == sqliteConstraint {
			return store.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
