package handlers

import (
	"net/http"
	"threadgems/internal/middlewares"
)

// AuthVerifyHandler checks the caller's token against /me and hands it to
// the shell for direct API calls.
func AuthVerifyHandler(ctx *middlewares.AppContext) {
	creds, err := middlewares.Authenticate(ctx)
	if err != nil {
		ctx.Logger.Debug("verify without valid credentials", "error", err)
		ctx.WriteJSON(http.StatusUnauthorized, VerifyResponse{Valid: false})
		return
	}

	response := VerifyResponse{
		Valid:       true,
		UserID:      creds.UserID,
		Username:    creds.Username,
		AccessToken: creds.AccessToken,
	}

	// bearer tokens were already checked by Authenticate
	if creds.Source == middlewares.CredentialSourceSession {
		profile, err := ctx.ThreadsProvider.Me(ctx, creds.AccessToken)
		if err != nil {
			ctx.Logger.Warn("session token rejected by threads", "error", err, "user_id", creds.UserID)
			ctx.WriteJSON(http.StatusUnauthorized, VerifyResponse{Valid: false})
			return
		}
		if profile.ID != "" {
			response.UserID = profile.ID
		}
		if profile.Username != "" {
			response.Username = profile.Username
		}
	}

	ctx.Logger.Debug("token verified", "user_id", response.UserID, "source", creds.Source, "token", RedactToken(creds.AccessToken))
	ctx.WriteJSON(http.StatusOK, response)
}
