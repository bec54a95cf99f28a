package handlers

import (
	"errors"
	"net/http"
	"threadgems/internal/authflow"
	"threadgems/internal/middlewares"
)

// GETLoginHandler starts the authorization-code flow for the browser.
func GETLoginHandler(ctx *middlewares.AppContext) {
	manager := ctx.Flows.Manager(ctx)

	if manager.IsAuthenticated(ctx) {
		ctx.SetJSONStatus(http.StatusOK, "ok")
		return
	}

	scopes := splitScopes(ctx.Request.URL.Query().Get("scope"))
	if len(scopes) == 0 {
		scopes = ctx.Config.Threads.Scopes
	}

	if err := manager.InitiateAuth(ctx, scopes); err != nil {
		ctx.Logger.Error("failed to start login", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to start login")
		return
	}
}

// GETLoginCallbackHandler validates the provider redirect and finishes the
// login through the backend.
func GETLoginCallbackHandler(ctx *middlewares.AppContext) {
	manager := ctx.Flows.Manager(ctx)

	result, err := manager.HandleCallback(ctx, ctx.Request.URL.Query())
	if err != nil {
		var cbErr *authflow.CallbackError
		if !errors.As(err, &cbErr) {
			cbErr = &authflow.CallbackError{Kind: authflow.ErrTokenExchangeFailed, Err: err}
		}

		status := http.StatusBadRequest
		if errors.Is(cbErr, authflow.ErrTokenExchangeFailed) {
			status = http.StatusBadGateway
		}

		ctx.Logger.Warn("login callback failed", "error", err, "kind", cbErr.Code())
		ctx.WriteJSON(status, CallbackErrorResponse{
			Error:    cbErr.Code(),
			Message:  cbErr.Message(),
			RetryURL: loginRetryURL,
		})
		return
	}

	if err := ctx.Flows.Renew(ctx); err != nil {
		ctx.Logger.Error("failed to renew local session", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to complete login")
		return
	}

	ctx.Logger.Info("login completed", "user_id", result.Identity.ID, "username", result.Identity.Username)
	ctx.Redirect(ctx.Config.Frontend.LoginSuccessURL, http.StatusFound)
}
