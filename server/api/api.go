// Package api provides HTTP API endpoints for the gnorm server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/gnorm/server/gnormsvc"
	"github.com/dekarrin/gnorm/server/result"
	"github.com/dekarrin/gnorm/server/serr"
	"github.com/go-chi/chi/v5"
	"github.com/npillmayer/schuko/tracing"
)

const (
	// PathPrefix is the prefix of all paths in the API. Routers should mount
	// a sub-router that routes all requests to the API at this path.
	PathPrefix = "/api/v1"
)

// tracer traces with key 'gnorm.server'.
func tracer() tracing.Trace {
	return tracing.Select("gnorm.server")
}

// API holds parameters for endpoints needed to run and a service layer that
// will perform most of the actual logic. To use API, create one and then
// assign the result of its HTTP* methods as handlers to a router or some other
// kind of server mux.
//
// This is exclusively an API for serving external requests. For direct
// programmatic access into the backend via Go code, see [gnormsvc.Service].
type API struct {
	// Backend is the service that the API calls to perform the requested
	// actions.
	Backend gnormsvc.Service

	// ErrorDelay is how long a request that fails with an HTTP-500 waits
	// before the response is sent. This slows down clients that keep sending
	// requests that break the server.
	ErrorDelay time.Duration
}

// Routes returns a router with every endpoint of the API on it, relative to
// PathPrefix.
func (api API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/grammars", func(r chi.Router) {
		r.Post("/", api.HTTPCreateGrammar())
		r.Get("/", api.HTTPGetAllGrammars())
		r.Get("/{id}", api.HTTPGetGrammar())
		r.Delete("/{id}", api.HTTPDeleteGrammar())
	})
	r.Post("/analyses", api.HTTPCreateAnalysis())
	r.Get("/info", api.HTTPGetInfo())

	r.MethodNotAllowed(httpEndpoint(api.ErrorDelay, func(req *http.Request) result.Result {
		return result.MethodNotAllowed(req)
	}))
	r.NotFound(httpEndpoint(api.ErrorDelay, func(req *http.Request) result.Result {
		return result.NotFound("no route for %s", req.URL.Path)
	}))

	return r
}

// v must be a pointer to a type. Will return error such that
// errors.Is(err, serr.ErrBodyUnmarshal) returns true if it is problem decoding
// the JSON itself.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if strings.ToLower(mediaType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	err = json.Unmarshal(bodyData, v)
	if err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}

	return nil
}

type EndpointFunc func(req *http.Request) result.Result

func httpEndpoint(errDelay time.Duration, ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		r := ep(req)

		// if this hasn't been properly created, output error directly and do not
		// try to read properties
		if r.Status == 0 {
			logHttpResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		// pre-call PrepareMarshaledResponse bc if it fails in call to
		// WriteResponse, it will panic.
		if err := r.PrepareMarshaledResponse(); err != nil {
			r = result.Err(http.StatusInternalServerError, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
		}

		if r.IsErr {
			logHttpResponse("ERROR", req, r.Status, r.InternalMsg)
		} else {
			logHttpResponse("INFO", req, r.Status, r.InternalMsg)
		}

		if r.Status == http.StatusInternalServerError {
			time.Sleep(errDelay)
		}

		r.WriteResponse(w)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			"panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack()),
		)
		logHttpResponse("ERROR", req, r.Status, r.InternalMsg)
		r.WriteResponse(w)
		return true
	}
	return false
}

func logHttpResponse(level string, req *http.Request, respStatus int, msg string) {
	// we don't really care about the ephemeral port from the client end
	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]

	if level == "ERROR" {
		tracer().Errorf("%s %s %s: HTTP-%d %s", remoteIP, req.Method, req.URL.Path, respStatus, msg)
	} else {
		tracer().Infof("%s %s %s: HTTP-%d %s", remoteIP, req.Method, req.URL.Path, respStatus, msg)
	}
}
