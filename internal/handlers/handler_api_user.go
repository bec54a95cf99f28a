package handlers

import (
	"net/http"
	"threadgems/internal/middlewares"
)

func GETAuthUserHandler(ctx *middlewares.AppContext) {
	creds, ok := middlewares.SessionCredentials(ctx)
	if !ok {
		ctx.SetJSONError(http.StatusUnauthorized, "Not authenticated")
		return
	}

	profile, err := ctx.ThreadsProvider.Me(ctx, creds.AccessToken)
	if err != nil {
		ctx.Logger.Error("failed to get user profile", "error", err, "user_id", creds.UserID)
		ctx.SetJSONError(http.StatusBadGateway, "Failed to get user profile")
		return
	}

	ctx.WriteJSON(http.StatusOK, profile)
}
