package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/gnorm/internal/store"
	"github.com/dekarrin/gnorm/internal/store/inmem"
	"github.com/dekarrin/gnorm/internal/store/sqlite"
)

// StoreKind is a backend that normalization results can be kept in.
type StoreKind string

const (
	StoreNone   StoreKind = "none"
	StoreMemory StoreKind = "inmem"
	StoreSQLite StoreKind = "sqlite"
)

// storeKinds maps each known kind to whether its connection string must give a
// data directory after the colon.
var storeKinds = map[StoreKind]bool{
	StoreNone:   false,
	StoreMemory: false,
	StoreSQLite: true,
}

// StoreConn is a parsed store.db setting. A StoreConn returned by
// ParseStoreConn is always usable.
type StoreConn struct {
	Kind StoreKind

	// Dir is where an SQLite store keeps its files. It is empty for every
	// other kind.
	Dir string
}

// ParseStoreConn parses a connection string of the form "kind" or
// "kind:dir". The kind is case-insensitive. Only "sqlite" takes a dir, and it
// requires one; everything after the first colon is the dir, so "sqlite:C:/x"
// is kept in "C:/x".
func ParseStoreConn(s string) (StoreConn, error) {
	kindStr, dir, hasDir := strings.Cut(s, ":")
	kind := StoreKind(strings.ToLower(strings.TrimSpace(kindStr)))
	dir = strings.TrimSpace(dir)

	needsDir, known := storeKinds[kind]
	if !known {
		return StoreConn{}, fmt.Errorf("store kind not one of 'sqlite', 'inmem', or 'none': %q", kindStr)
	}

	if needsDir && dir == "" {
		return StoreConn{}, fmt.Errorf("%s store needs a data directory, as in \"%s:./data\"", kind, kind)
	}
	if !needsDir && hasDir {
		return StoreConn{}, fmt.Errorf("%s store does not take anything after ':' but got %q", kind, dir)
	}

	return StoreConn{Kind: kind, Dir: dir}, nil
}

// Enabled returns whether conn names a store that results are kept in.
func (conn StoreConn) Enabled() bool {
	return conn.Kind != StoreNone && conn.Kind != ""
}

// Open opens the store. The data directory of an SQLite store is created if
// it does not yet exist.
func (conn StoreConn) Open() (store.Store, error) {
	switch conn.Kind {
	case StoreMemory:
		return inmem.NewDatastore(), nil
	case StoreSQLite:
		if err := os.MkdirAll(conn.Dir, 0770); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		st, err := sqlite.NewDatastore(conn.Dir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("no store to open for %q", conn.String())
	}
}

// String returns the connection string that ParseStoreConn parses into conn.
func (conn StoreConn) String() string {
	if conn.Dir != "" {
		return string(conn.Kind) + ":" + conn.Dir
	}
	return string(conn.Kind)
}
