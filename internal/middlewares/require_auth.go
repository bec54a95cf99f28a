package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"threadgems/internal/utils"
)

const (
	CredentialSourceSession = "session"
	CredentialSourceBearer  = "bearer"
)

var ErrNoCredentials = errors.New("no session or bearer token")

// Credentials identify the caller of a backend endpoint.
type Credentials struct {
	UserID      string
	Username    string
	AccessToken string
	Source      string
}

// SessionCredentials reads the caller from a valid backend session.
func SessionCredentials(ctx *AppContext) (*Credentials, bool) {
	if ctx.SessionManager == nil || !ctx.SessionManager.IsSessionValid(ctx) {
		return nil, false
	}

	session, ok := ctx.SessionManager.GetSession(ctx)
	if !ok || session == nil || session.AccessToken == "" {
		return nil, false
	}

	return &Credentials{
		UserID:      session.UserID,
		Username:    session.Username,
		AccessToken: session.AccessToken,
		Source:      CredentialSourceSession,
	}, true
}

// BearerCredentials checks an Authorization bearer token against /me.
func BearerCredentials(ctx *AppContext) (*Credentials, error) {
	token, err := utils.ExtractAuthorizationHeader(ctx.Request)
	if err != nil {
		return nil, err
	}

	profile, err := ctx.ThreadsProvider.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("bearer token rejected: %w", err)
	}

	return &Credentials{
		UserID:      profile.ID,
		Username:    profile.Username,
		AccessToken: token,
		Source:      CredentialSourceBearer,
	}, nil
}

// Authenticate prefers the session and falls back to a bearer token.
func Authenticate(ctx *AppContext) (*Credentials, error) {
	if creds, ok := SessionCredentials(ctx); ok {
		return creds, nil
	}

	creds, err := BearerCredentials(ctx)
	if err != nil {
		if errors.Is(err, utils.ErrMissingAuthzHeader) {
			return nil, ErrNoCredentials
		}
		return nil, err
	}
	return creds, nil
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := GetAppContext(r)
		if ctx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		ctx.Request = r
		ctx.Context = r.Context()

		creds, err := Authenticate(ctx)
		if err != nil {
			ctx.Logger.Debug("rejecting unauthenticated request", "path", r.URL.Path, "error", err)
			ctx.SetJSONError(http.StatusUnauthorized, "Authentication required")
			return
		}

		ctx.Credentials = creds
		next.ServeHTTP(w, r)
	})
}
