package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/server/result"
	"github.com/dekarrin/gnorm/server/serr"
	"github.com/go-chi/chi/v5"
)

// HTTPCreateGrammar returns a HandlerFunc that normalizes a grammar and stores
// the result.
func (api API) HTTPCreateGrammar() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epCreateGrammar)
}

func (api API) epCreateGrammar(req *http.Request) result.Result {
	var body GrammarRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), "%s", err.Error())
	}
	if strings.TrimSpace(body.Grammar) == "" {
		return result.BadRequest("grammar: property is empty or missing from request", "empty grammar")
	}

	opts := grammar.Options{EliminateBacktracking: body.EliminateBacktracking}
	r, cached, err := api.Backend.Normalize(req.Context(), body.Grammar, opts)
	if err != nil {
		if errors.Is(err, serr.ErrGrammar) {
			return result.UnprocessableEntity(err.Error(), "grammar rejected: %s", err.Error())
		}
		return result.InternalServerError("%s", err.Error())
	}

	resp := resultModel(r, true)
	loc := PathPrefix + "/grammars/" + resp.ID
	if cached {
		resp.Cached = true
		return result.OK(resp, "found cached result %s", resp.ID).WithHeader("Location", loc)
	}
	return result.Created(resp, "normalized grammar into result %s", resp.ID).WithHeader("Location", loc)
}

// HTTPGetAllGrammars returns a HandlerFunc that lists all stored results.
func (api API) HTTPGetAllGrammars() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epGetAllGrammars)
}

func (api API) epGetAllGrammars(req *http.Request) result.Result {
	all, err := api.Backend.GetAllResults(req.Context())
	if err != nil {
		return result.InternalServerError("%s", err.Error())
	}

	resp := make([]ResultModel, len(all))
	for i := range all {
		resp[i] = resultModel(all[i], false)
	}

	return result.OK(resp, "got all results (%d)", len(resp))
}

// HTTPGetGrammar returns a HandlerFunc that gets a single stored result.
func (api API) HTTPGetGrammar() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epGetGrammar)
}

func (api API) epGetGrammar(req *http.Request) result.Result {
	id := chi.URLParam(req, "id")

	r, err := api.Backend.GetResult(req.Context(), id)
	if err != nil {
		return idErrResult(id, err)
	}

	return result.OK(resultModel(r, true), "got result %s", id)
}

// HTTPDeleteGrammar returns a HandlerFunc that deletes a stored result.
func (api API) HTTPDeleteGrammar() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epDeleteGrammar)
}

func (api API) epDeleteGrammar(req *http.Request) result.Result {
	id := chi.URLParam(req, "id")

	r, err := api.Backend.DeleteResult(req.Context(), id)
	if err != nil {
		return idErrResult(id, err)
	}

	return result.OK(resultModel(r, true), "deleted result %s", id)
}

// HTTPCreateAnalysis returns a HandlerFunc that analyzes a grammar for LL(1)
// conflicts without normalizing or storing it.
func (api API) HTTPCreateAnalysis() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epCreateAnalysis)
}

func (api API) epCreateAnalysis(req *http.Request) result.Result {
	var body GrammarRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), "%s", err.Error())
	}
	if strings.TrimSpace(body.Grammar) == "" {
		return result.BadRequest("grammar: property is empty or missing from request", "empty grammar")
	}

	a, err := api.Backend.Analyze(req.Context(), body.Grammar)
	if err != nil {
		if errors.Is(err, serr.ErrGrammar) {
			return result.UnprocessableEntity(err.Error(), "grammar rejected: %s", err.Error())
		}
		return result.InternalServerError("%s", err.Error())
	}

	return result.OK(analysisModel(a), "analyzed grammar with %d conflict(s)", len(a.Conflicts))
}

func idErrResult(id string, err error) result.Result {
	if errors.Is(err, serr.ErrNotFound) {
		return result.NotFound("no result with ID %s", id)
	} else if errors.Is(err, serr.ErrBadArgument) {
		return result.BadRequest(err.Error(), "%s", err.Error())
	}
	return result.InternalServerError("%s", err.Error())
}
