// Package server provides an HTTP REST server that normalizes grammars and
// keeps the results.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dekarrin/gnorm/internal/config"
	"github.com/dekarrin/gnorm/internal/store"
	"github.com/dekarrin/gnorm/internal/store/inmem"
	"github.com/dekarrin/gnorm/server/api"
	"github.com/dekarrin/gnorm/server/gnormsvc"
	"github.com/go-chi/chi/v5"
	"github.com/npillmayer/schuko/tracing"
)

// server:
//  - POST   /grammars       - normalize a grammar and store the result
//  - GET    /grammars       - get info on all stored results
//  - GET    /grammars/{id}  - get a stored result with its rules
//  - DELETE /grammars/{id}  - delete a stored result
//  - POST   /analyses       - find LL(1) conflicts in a grammar as written
//  - GET    /info           - get version info on the API and engine

// shutdownTimeout is how long ServeForever waits for in-flight requests once
// its context is done.
const shutdownTimeout = 5 * time.Second

func tracer() tracing.Trace {
	return tracing.Select("gnorm.server")
}

// Server is an HTTP REST server that normalizes grammars. The zero-value of a
// Server should not be used directly; call New() to get one ready for use.
type Server struct {
	router http.Handler
	db     store.Store
	addr   string
}

// New creates a new Server from cfg. cfg should already have had defaults
// filled in. If cfg does not configure a store, results are kept in memory.
func New(cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var db store.Store
	dbCfg := cfg.DB()
	if dbCfg.Enabled() {
		var err error
		db, err = dbCfg.Open()
		if err != nil {
			return nil, err
		}
	} else {
		db = inmem.NewDatastore()
	}

	s := &Server{
		db:   db,
		addr: cfg.Server.Listen,
	}

	a := api.API{
		Backend:    gnormsvc.Service{DB: db},
		ErrorDelay: cfg.ErrorDelay(),
	}

	r := chi.NewRouter()
	r.Mount(api.PathPrefix, a.Routes())
	s.router = r

	return s, nil
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the store of the server.
func (s *Server) Close() error {
	return s.db.Close()
}

// ServeForever listens on the configured address until ctx is done, then
// shuts down gracefully and closes the store. A nil error is returned on a
// clean shutdown.
func (s *Server) ServeForever(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		tracer().Infof("Listening on %s", s.addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		tracer().Infof("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		serveErr = httpSrv.Shutdown(shutdownCtx)
		if serveErr == nil {
			serveErr = <-errCh
		}
	}

	if errors.Is(serveErr, http.ErrServerClosed) {
		serveErr = nil
	}

	if err := s.Close(); err != nil && serveErr == nil {
		serveErr = fmt.Errorf("close store: %w", err)
	}

	return serveErr
}
