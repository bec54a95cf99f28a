package handlers

import (
	"errors"
	"net/http"
	"threadgems/internal/data"
	"threadgems/internal/middlewares"
	"threadgems/internal/models"
	"threadgems/internal/threads"
	"time"

	"github.com/go-chi/chi/v5"
)

// GETProfileThreadsHandler fetches a profile's posts with the caller's own
// token. RequireAuth must run first.
func GETProfileThreadsHandler(ctx *middlewares.AppContext) {
	if ctx.Credentials == nil {
		ctx.SetJSONError(http.StatusUnauthorized, "Authentication required")
		return
	}

	username, err := normalizeUsername(chi.URLParam(ctx.Request, "username"))
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid username")
		return
	}

	limit, err := parseLimit(ctx.Request.URL.Query().Get("limit"))
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid limit")
		return
	}

	media, err := ctx.ThreadsProvider.ProfilePosts(ctx, ctx.Credentials.AccessToken, username, threads.PostsOptions{Limit: limit})
	if err != nil {
		ctx.Logger.Error("failed to fetch profile threads", "error", err, "username", username)

		var apiErr *threads.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			ctx.SetJSONError(http.StatusNotFound, "Profile not found")
			return
		}
		ctx.SetJSONError(http.StatusBadGateway, "Failed to fetch threads")
		return
	}

	now := time.Now()
	result := make([]models.Thread, 0, len(media))
	for _, m := range media {
		result = append(result, threads.ToThread(m, now))
	}

	ctx.WriteJSON(http.StatusOK, ProfileThreadsResponse{
		Username: username,
		Count:    len(result),
		Data:     result,
	})
}

// GETThreadsHandler serves a curated dataset straight from the cache.
func GETThreadsHandler(ctx *middlewares.AppContext) {
	name := ctx.Request.URL.Query().Get("type")
	if name == "" {
		name = data.DatasetAll
	}

	if !data.IsDataset(name) {
		ctx.SetJSONError(http.StatusBadRequest, "Unknown dataset: "+name)
		return
	}

	serveCached(ctx, name)
}

func GETManifestHandler(ctx *middlewares.AppContext) {
	serveCached(ctx, data.KeyManifest)
}

func serveCached(ctx *middlewares.AppContext, name string) {
	entry, ok := ctx.Cache.Get(ctx, name)
	if !ok {
		ctx.Logger.Debug("dataset not yet available", "name", name)
		ctx.SetJSONError(http.StatusServiceUnavailable, "Data is not available yet")
		return
	}

	ctx.Response.Header().Set("Last-Modified", entry.Timestamp.UTC().Format(http.TimeFormat))
	ctx.WriteRawJSON(http.StatusOK, entry.JSONBytes)
}
