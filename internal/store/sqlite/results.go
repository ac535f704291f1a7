package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/gnorm/internal/store"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// NewResultsDBConn opens a ResultsDB on its own connection to file.
func NewResultsDBConn(file string) (*ResultsDB, error) {
	repo := &ResultsDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return repo, repo.init()
}

type ResultsDB struct {
	db *sql.DB
}

func (repo *ResultsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS results (
		id TEXT NOT NULL PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		backtracking INTEGER NOT NULL,
		grammar TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *ResultsDB) Create(ctx context.Context, r store.Result) (store.Result, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return store.Result{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO results (id, key, source, backtracking, grammar, created) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return store.Result{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()

	gramData := rezi.EncBinary(r.Grammar)
	encGram := base64.StdEncoding.EncodeToString(gramData)
	_, err = stmt.ExecContext(ctx, newUUID.String(), r.Key, r.Source, r.Backtracking, encGram, now.Unix())
	if err != nil {
		return store.Result{}, wrapDBError(err)
	}

	tracer().Debugf("sqlite: created result %s", newUUID)
	return repo.GetByID(ctx, newUUID)
}

func (repo *ResultsDB) GetAll(ctx context.Context) ([]store.Result, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, key, source, backtracking, grammar, created FROM results ORDER BY created, id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []store.Result

	for rows.Next() {
		var r store.Result
		var id string
		var encGram string
		var created int64
		err = rows.Scan(
			&id,
			&r.Key,
			&r.Source,
			&r.Backtracking,
			&encGram,
			&created,
		)

		if err != nil {
			return nil, wrapDBError(err)
		}

		r.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", id)
		}
		if err := decodeGrammar(encGram, &r); err != nil {
			return all, err
		}
		r.Created = time.Unix(created, 0)

		all = append(all, r)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *ResultsDB) GetByID(ctx context.Context, id uuid.UUID) (store.Result, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, key, source, backtracking, grammar, created FROM results WHERE id = ?;`,
		id.String(),
	)
	return scanResult(row)
}

func (repo *ResultsDB) GetByKey(ctx context.Context, key string) (store.Result, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, key, source, backtracking, grammar, created FROM results WHERE key = ?;`,
		key,
	)
	return scanResult(row)
}

func (repo *ResultsDB) Delete(ctx context.Context, id uuid.UUID) (store.Result, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM results WHERE id = ?`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, store.ErrNotFound
	}

	tracer().Debugf("sqlite: deleted result %s", id)
	return curVal, nil
}

func (repo *ResultsDB) Close() error {
	return repo.db.Close()
}

func scanResult(row *sql.Row) (store.Result, error) {
	var r store.Result
	var id string
	var encGram string
	var created int64

	err := row.Scan(
		&id,
		&r.Key,
		&r.Source,
		&r.Backtracking,
		&encGram,
		&created,
	)
	if err != nil {
		return store.Result{}, wrapDBError(err)
	}

	r.ID, err = uuid.Parse(id)
	if err != nil {
		return store.Result{}, fmt.Errorf("stored UUID %q is invalid", id)
	}
	if err := decodeGrammar(encGram, &r); err != nil {
		return store.Result{}, err
	}
	r.Created = time.Unix(created, 0)

	return r, nil
}

func decodeGrammar(encGram string, r *store.Result) error {
	gramData, err := base64.StdEncoding.DecodeString(encGram)
	if err != nil {
		return fmt.Errorf("stored grammar for %s is not valid base64: %w", r.ID, err)
	}

	_, err = rezi.DecBinary(gramData, &r.Grammar)
	if err != nil {
		return fmt.Errorf("stored grammar for %s is invalid: %w", r.ID, err)
	}
	return nil
}
