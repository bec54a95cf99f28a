package authflow

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"threadgems/internal/models"
	"time"

	"github.com/google/go-querystring/query"
)

const (
	stateBytes     = 16
	defaultTimeout = 10 * time.Second
	authorizePath  = "/oauth/authorize"
)

type Options struct {
	ClientID    string
	RedirectURI string
	AuthBaseURL string

	// Timeout bounds each Backend call.
	Timeout time.Duration
	Random  io.Reader
	Clock   func() time.Time
	Logger  *slog.Logger
}

// Result is the outcome of a successful callback.
type Result struct {
	Identity        models.Identity
	State           State
	AuthenticatedAt time.Time
}

// Manager drives the authorization-code login for one user agent. It is not
// safe for concurrent use; build one per request.
type Manager struct {
	opts      Options
	durable   Store
	session   Store
	backend   Backend
	navigator Navigator
	state     State
}

func NewManager(opts Options, durable, session Store, backend Backend, navigator Navigator) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Random == nil {
		opts.Random = rand.Reader
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.AuthBaseURL == "" {
		opts.AuthBaseURL = "https://threads.net"
	}
	opts.AuthBaseURL = strings.TrimSuffix(opts.AuthBaseURL, "/")

	return &Manager{
		opts:      opts,
		durable:   durable,
		session:   session,
		backend:   backend,
		navigator: navigator,
		state:     StateIdle,
	}
}

// State returns the last state the manager reached.
func (m *Manager) State() State {
	return m.state
}

type authorizeQuery struct {
	ClientID     string `url:"client_id"`
	RedirectURI  string `url:"redirect_uri"`
	Scope        string `url:"scope"`
	ResponseType string `url:"response_type"`
	State        string `url:"state"`
}

// AuthorizationURL builds the provider authorize URL for state and scopes.
func (m *Manager) AuthorizationURL(state string, scopes []string) (string, error) {
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}

	values, err := query.Values(authorizeQuery{
		ClientID:     m.opts.ClientID,
		RedirectURI:  m.opts.RedirectURI,
		Scope:        strings.Join(scopes, ","),
		ResponseType: "code",
		State:        state,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode authorize query: %w", err)
	}

	return m.opts.AuthBaseURL + authorizePath + "?" + values.Encode(), nil
}

func (m *Manager) generateState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := io.ReadFull(m.opts.Random, b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// InitiateAuth stores a fresh state token and navigates to the provider.
// Starting again overwrites any earlier token.
func (m *Manager) InitiateAuth(ctx context.Context, scopes []string) error {
	state, err := m.generateState()
	if err != nil {
		m.state = StateError
		return err
	}

	target, err := m.AuthorizationURL(state, scopes)
	if err != nil {
		m.state = StateError
		return err
	}

	m.session.Set(ctx, KeyOAuthState, state)
	m.state = StateRedirecting

	m.opts.Logger.Debug("redirecting to threads authorization", "scopes", scopes)

	if err := m.navigator.Navigate(ctx, target); err != nil {
		m.state = StateError
		return fmt.Errorf("failed to navigate to authorization url: %w", err)
	}
	return nil
}

// HandleCallback validates the provider redirect and exchanges the code.
func (m *Manager) HandleCallback(ctx context.Context, q url.Values) (*Result, error) {
	m.state = StateCallbackReceived

	if providerErr := q.Get("error"); providerErr != "" {
		m.state = StateError
		m.opts.Logger.Warn("threads authorization denied", "error", providerErr, "description", q.Get("error_description"))
		return nil, &CallbackError{
			Kind:          ErrAuthorizationDenied,
			ProviderError: providerErr,
			Description:   q.Get("error_description"),
		}
	}

	code := q.Get("code")
	if code == "" {
		m.state = StateError
		return nil, newCallbackError(ErrMissingAuthorizationCode, nil)
	}

	m.state = StateValidatingState
	expected, ok := m.session.Get(ctx, KeyOAuthState)
	received := q.Get("state")
	if !ok || expected == "" || received == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		m.session.Remove(ctx, KeyOAuthState)
		m.state = StateError
		m.opts.Logger.Warn("oauth state mismatch", "state_present", received != "", "stored_present", ok)
		return nil, newCallbackError(ErrCsrfValidationFailed, nil)
	}
	m.session.Remove(ctx, KeyOAuthState)

	m.state = StateExchanging
	start := m.opts.Clock()

	callCtx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	res, err := m.backend.Exchange(callCtx, code, m.opts.RedirectURI)
	if err != nil {
		m.state = StateError
		m.opts.Logger.Error("token exchange failed", "error", err)
		return nil, newCallbackError(ErrTokenExchangeFailed, err)
	}
	if res == nil || res.UserID == "" {
		m.state = StateError
		return nil, newCallbackError(ErrTokenExchangeFailed, fmt.Errorf("exchange response has no user id"))
	}

	m.durable.Set(ctx, KeyUserID, res.UserID)
	if res.Username != "" {
		m.durable.Set(ctx, KeyUsername, res.Username)
	} else {
		m.durable.Remove(ctx, KeyUsername)
	}

	now := m.opts.Clock()
	m.state = StateAuthenticated
	m.opts.Logger.Info("threads login completed", "user_id", res.UserID, "elapsed", now.Sub(start))

	return &Result{
		Identity:        models.Identity{ID: res.UserID, Username: res.Username},
		State:           StateAuthenticated,
		AuthenticatedAt: now,
	}, nil
}

func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	id, ok := m.durable.Get(ctx, KeyUserID)
	return ok && id != ""
}

func (m *Manager) CurrentUser(ctx context.Context) (*models.Identity, bool) {
	id, ok := m.durable.Get(ctx, KeyUserID)
	if !ok || id == "" {
		return nil, false
	}

	username, _ := m.durable.Get(ctx, KeyUsername)
	return &models.Identity{ID: id, Username: username}, true
}

// Logout clears local state and then tells the backend. The remote call is
// best effort and its failure is only logged.
func (m *Manager) Logout(ctx context.Context) {
	m.durable.Remove(ctx, KeyUserID)
	m.durable.Remove(ctx, KeyUsername)
	m.session.Remove(ctx, KeyOAuthState)
	m.state = StateIdle

	callCtx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	if err := m.backend.Logout(callCtx); err != nil {
		m.opts.Logger.Warn("backend logout failed", "error", err)
	}
}

// AuthHeader returns an Authorization header value for calls made on the
// user's behalf. A failed verification logs the user out.
func (m *Manager) AuthHeader(ctx context.Context) (string, bool) {
	if !m.IsAuthenticated(ctx) {
		return "", false
	}

	callCtx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	res, err := m.backend.Verify(callCtx)
	if err == nil && (res == nil || res.AccessToken == "") {
		err = fmt.Errorf("verify response has no access token")
	}
	if err != nil {
		m.opts.Logger.Warn("session verification failed, logging out", "error", fmt.Errorf("%w: %w", ErrVerificationFailed, err))
		m.Logout(ctx)
		return "", false
	}

	return "Bearer " + res.AccessToken, true
}

// RefreshToken asks the backend to extend the session. On failure nothing
// local changes.
func (m *Manager) RefreshToken(ctx context.Context) bool {
	callCtx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	res, err := m.backend.Refresh(callCtx)
	if err != nil || res == nil {
		m.opts.Logger.Warn("session refresh failed", "error", fmt.Errorf("%w: %v", ErrRefreshFailed, err))
		return false
	}

	if res.UserID != "" {
		m.durable.Set(ctx, KeyUserID, res.UserID)
	}
	if res.Username != "" {
		m.durable.Set(ctx, KeyUsername, res.Username)
	}
	return true
}
