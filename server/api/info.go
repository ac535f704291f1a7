package api

import (
	"net/http"

	"github.com/dekarrin/gnorm/internal/version"
	"github.com/dekarrin/gnorm/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.API = version.APICurrent
	resp.Version.Gnorm = version.Current

	return result.OK(resp, "got API info")
}
