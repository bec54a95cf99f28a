package handlers

import (
	"context"
	"net/http"
	"threadgems/internal/middlewares"
	"threadgems/internal/version"
	"time"
)

const healthPingTimeout = 2 * time.Second

func HandlerHealth(ctx *middlewares.AppContext) {
	response := HealthResponse{
		Status:    "healthy",
		Version:   version.GetVersion(),
		Timestamp: time.Now().UTC(),
	}

	if ctx.Storage != nil {
		pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()

		if err := ctx.Storage.Ping(pingCtx); err != nil {
			ctx.Logger.Warn("storage ping failed", "error", err)
		} else {
			response.StorageConnected = true
		}
	}

	ctx.WriteJSON(http.StatusOK, response)
}
