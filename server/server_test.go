package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dekarrin/gnorm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New(t *testing.T) {
	t.Run("no store configured falls back to memory", func(t *testing.T) {
		assert := assert.New(t)

		cfg := config.Config{}.FillDefaults()
		s, err := New(cfg)
		require.NoError(t, err)
		defer s.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/grammars", strings.NewReader(`{"grammar": "start -> ( start ) | ID"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("sqlite store", func(t *testing.T) {
		cfg := config.Config{}
		cfg.Store.DB = "sqlite:" + t.TempDir()
		cfg = cfg.FillDefaults()

		s, err := New(cfg)
		require.NoError(t, err)
		assert.NoError(t, s.Close())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Config{}.FillDefaults()
		cfg.Store.DB = "mongo"

		_, err := New(cfg)
		assert.Error(t, err)
	})
}

func Test_ServeForever_ShutsDownOnCancel(t *testing.T) {
	cfg := config.Config{}.FillDefaults()
	cfg.Server.Listen = "127.0.0.1:0"

	s, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.ServeForever(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
