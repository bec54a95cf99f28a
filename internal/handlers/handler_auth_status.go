package handlers

import (
	"net/http"
	"threadgems/internal/middlewares"
)

// AuthStatusHandler answers from the shell's durable store only.
func AuthStatusHandler(ctx *middlewares.AppContext) {
	response := AuthStatusResponse{
		Authenticated: false,
	}

	if user, ok := ctx.Flows.Manager(ctx).CurrentUser(ctx); ok {
		response.Authenticated = true
		response.User = user
	}

	ctx.WriteJSON(http.StatusOK, response)
}
