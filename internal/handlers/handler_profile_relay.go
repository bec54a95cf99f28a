package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"threadgems/internal/middlewares"

	"github.com/go-chi/chi/v5"
)

var relayedHeaders = []string{"Content-Type", "Cache-Control", "Last-Modified"}

// GETProfileRelayHandler forwards a profile request to the backend with the
// user's bearer token.
func GETProfileRelayHandler(ctx *middlewares.AppContext) {
	username, err := normalizeUsername(chi.URLParam(ctx.Request, "username"))
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid username")
		return
	}

	authorization, ok := ctx.Flows.Manager(ctx).AuthHeader(ctx)
	if !ok {
		ctx.SetJSONError(http.StatusUnauthorized, "Authentication required")
		return
	}

	target := strings.TrimSuffix(ctx.Flows.BackendURL(), "/") + "/api/threads/profile/" + url.PathEscape(username)
	if limit := ctx.Request.URL.Query().Get("limit"); limit != "" {
		target += "?" + url.Values{"limit": {limit}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		ctx.Logger.Error("failed to build backend request", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := ctx.Flows.Client(ctx).Do(req)
	if err != nil {
		ctx.Logger.Error("backend profile request failed", "error", err, "username", username)
		ctx.SetJSONError(http.StatusBadGateway, "Failed to fetch profile")
		return
	}
	defer resp.Body.Close()

	for _, header := range relayedHeaders {
		if value := resp.Header.Get(header); value != "" {
			ctx.Response.Header().Set(header, value)
		}
	}
	ctx.Response.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(ctx.Response, resp.Body); err != nil {
		ctx.Logger.Warn("failed to relay profile response", "error", err)
	}
}
