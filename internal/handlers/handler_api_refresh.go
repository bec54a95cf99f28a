package handlers

import (
	"errors"
	"net/http"
	"threadgems/internal/middlewares"
	"threadgems/internal/storage"
	"time"
)

func POSTAuthRefreshHandler(ctx *middlewares.AppContext) {
	session, ok := ctx.SessionManager.GetSession(ctx)
	if !ok || session.AccessToken == "" {
		ctx.SetJSONError(http.StatusUnauthorized, "No active session")
		return
	}

	token, err := ctx.ThreadsProvider.Refresh(ctx, session.AccessToken)
	if err != nil {
		ctx.Logger.Error("failed to refresh access token", "error", err, "user_id", session.UserID)
		ctx.SetJSONError(http.StatusBadGateway, "Failed to refresh access token")
		return
	}

	expiresAt := token.ExpiresAt(time.Now())
	ctx.SessionManager.UpdateToken(ctx, token.AccessToken, expiresAt)

	if ctx.Storage != nil {
		err := ctx.Storage.UpdateUserToken(ctx, session.UserID, token.AccessToken, expiresAt)
		if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
			ctx.Logger.Warn("failed to store refreshed token", "error", err, "user_id", session.UserID)
		}
	}

	ctx.Logger.Info("access token refreshed", "user_id", session.UserID, "expires_at", expiresAt)

	ctx.WriteJSON(http.StatusOK, RefreshResponse{
		Success:  true,
		UserID:   session.UserID,
		Username: session.Username,
	})
}
