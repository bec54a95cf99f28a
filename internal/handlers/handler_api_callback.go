package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"threadgems/internal/metrics"
	"threadgems/internal/middlewares"
	"threadgems/internal/models"
	"threadgems/internal/threads"
)

// POSTAuthCallbackHandler finishes the code exchange on behalf of the shell
// and keeps the resulting token in the backend session.
func POSTAuthCallbackHandler(ctx *middlewares.AppContext) {
	var req AuthCallbackRequest
	if err := json.NewDecoder(io.LimitReader(ctx.Request.Body, maxRequestBodyBytes)).Decode(&req); err != nil || req.Code == "" {
		ctx.Logger.Warn("malformed auth callback request", "error", err)
		metrics.AuthCallbacks.WithLabelValues(metrics.AuthOutcomeFailure, "bad_request").Inc()
		ctx.SetJSONError(http.StatusBadRequest, "Request body must contain an authorization code")
		return
	}

	redirectURI := req.RedirectURI
	if redirectURI == "" {
		redirectURI = ctx.Config.Threads.RedirectURI
	}

	session, profile, err := ctx.ThreadsProvider.ExchangeCode(ctx, req.Code, redirectURI)
	if err != nil {
		ctx.Logger.Error("failed to exchange authorization code", "error", err)
		metrics.AuthCallbacks.WithLabelValues(metrics.AuthOutcomeFailure, "exchange").Inc()
		ctx.SetJSONError(http.StatusBadRequest, "Failed to exchange authorization code")
		return
	}

	if ctx.Storage != nil {
		storeUser(ctx, session, profile)
	}

	if err := ctx.SessionManager.CreateSession(ctx, session); err != nil {
		ctx.Logger.Error("failed to create session", "error", err, "user_id", session.UserID)
		metrics.AuthCallbacks.WithLabelValues(metrics.AuthOutcomeFailure, "session").Inc()
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to create session")
		return
	}

	metrics.AuthCallbacks.WithLabelValues(metrics.AuthOutcomeSuccess, "").Inc()
	ctx.Logger.Info("user authenticated", "user_id", session.UserID, "username", session.Username)

	ctx.WriteJSON(http.StatusOK, AuthCallbackResponse{
		Success:  true,
		UserID:   session.UserID,
		Username: session.Username,
		Message:  "Authentication successful",
	})
}

// storeUser keeps a server-side record of the login. Failures do not block
// the login itself.
func storeUser(ctx *middlewares.AppContext, session *models.TokenSession, profile *threads.Profile) {
	user := &models.StoredUser{
		UserID:         session.UserID,
		Username:       session.Username,
		AccessToken:    session.AccessToken,
		TokenExpiresAt: session.ExpiresAt,
	}

	if profile != nil {
		raw, err := json.Marshal(profile)
		if err != nil {
			ctx.Logger.Warn("failed to encode profile", "error", err)
		} else {
			user.Profile = raw
		}
	}

	if _, err := ctx.Storage.UpsertUser(ctx, user); err != nil {
		ctx.Logger.Warn("failed to store user", "error", err, "user_id", session.UserID)
	}
}
