package middlewares

import (
	"net/http"
	"threadgems/internal/models"
	"time"
)

//go:generate mockgen -source=session_provider.go -destination=../mocks/session.go -package=mocks

// SessionProvider is the backend session that keeps the Threads token out of
// the browser.
type SessionProvider interface {
	CreateSession(ctx *AppContext, session *models.TokenSession) error
	GetSession(ctx *AppContext) (*models.TokenSession, bool)
	UpdateToken(ctx *AppContext, accessToken string, expiresAt time.Time)
	IsSessionValid(ctx *AppContext) bool
	Logout(ctx *AppContext) error

	LoadAndSave(next http.Handler) http.Handler
}
