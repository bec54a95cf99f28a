package handlers

import (
	"net/http"
	"threadgems/internal/middlewares"
)

// POSTAuthLogoutHandler destroys the backend session. Calling it without a
// session is not an error.
func POSTAuthLogoutHandler(ctx *middlewares.AppContext) {
	logger := ctx.Logger

	session, ok := ctx.SessionManager.GetSession(ctx)

	if err := ctx.SessionManager.Logout(ctx); err != nil {
		logger.Error("failed to logout user", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to logout")
		return
	}

	if ok && session != nil {
		logger.Info("user logged out", "user_id", session.UserID, "username", session.Username)
	}

	ctx.WriteJSON(http.StatusOK, LogoutResponse{Success: true, Message: "Logged out successfully"})
}

// LogoutHandler clears the shell's login state and tells the backend.
func LogoutHandler(ctx *middlewares.AppContext) {
	manager := ctx.Flows.Manager(ctx)

	user, ok := manager.CurrentUser(ctx)
	manager.Logout(ctx)

	if ok {
		ctx.Logger.Info("user logged out", "user_id", user.ID, "username", user.Username)
	}

	ctx.SetJSONStatus(http.StatusOK, "OK")
}
