package auth

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"net/http"
	"threadgems/internal/config"
	"threadgems/internal/middlewares"
	"threadgems/internal/models"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"
)

type SessionManager struct {
	*scs.SessionManager
	clock func() time.Time
}

// NewSessionManager builds the backend session. client is required for the
// redis store and ignored otherwise.
func NewSessionManager(logger *slog.Logger, cfg *config.Config, client *redis.Client) (*SessionManager, error) {
	gob.Register(&models.TokenSession{})
	sessionManager := scs.New()

	switch cfg.Sessions.Store {
	case "memory", "":
		sessionManager.Store = memstore.New()
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis session store requires a redis client")
		}
		logger.Debug("using redis session store", "prefix", redisSessionPrefix)
		sessionManager.Store = goredisstore.NewWithPrefix(client, redisSessionPrefix)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Sessions.Store)
	}

	sessionManager.Lifetime = cfg.Sessions.Lifetime

	sessionManager.Cookie.Name = cfg.Sessions.Name
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Sessions.Secure
	sessionManager.Cookie.Path = "/"
	sessionManager.Cookie.Persist = true

	return &SessionManager{SessionManager: sessionManager, clock: time.Now}, nil
}

func (s *SessionManager) LoadAndSave(next http.Handler) http.Handler {
	return s.SessionManager.LoadAndSave(next)
}

// CreateSession stores session under a fresh session token.
func (s *SessionManager) CreateSession(ctx *middlewares.AppContext, session *models.TokenSession) error {
	if session == nil || session.AccessToken == "" {
		return fmt.Errorf("session has no access token")
	}
	if session.Expired(s.clock()) {
		return fmt.Errorf("token already expired")
	}

	if err := s.RenewToken(ctx); err != nil {
		return fmt.Errorf("failed to renew session token: %w", err)
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.clock()
	}
	s.Put(ctx, string(SessionKeyTokenSession), session)

	return nil
}

func (s *SessionManager) GetSession(ctx *middlewares.AppContext) (*models.TokenSession, bool) {
	data := s.Get(ctx, string(SessionKeyTokenSession))
	if data == nil {
		return nil, false
	}

	if session, ok := data.(*models.TokenSession); ok && session != nil {
		return session, true
	}

	return nil, false
}

// UpdateToken swaps the access token of the current session, if any.
func (s *SessionManager) UpdateToken(ctx *middlewares.AppContext, accessToken string, expiresAt time.Time) {
	session, ok := s.GetSession(ctx)
	if !ok {
		return
	}

	updated := *session
	updated.AccessToken = accessToken
	updated.ExpiresAt = expiresAt
	s.Put(ctx, string(SessionKeyTokenSession), &updated)
}

func (s *SessionManager) IsSessionValid(ctx *middlewares.AppContext) bool {
	session, ok := s.GetSession(ctx)
	if !ok || session.AccessToken == "" {
		return false
	}

	return !session.Expired(s.clock())
}

func (s *SessionManager) Logout(ctx *middlewares.AppContext) error {
	return s.Destroy(ctx)
}
