package web

import (
	"crypto/rand"
	"io"
	"net/http"
	"threadgems/internal/authflow"
	"threadgems/internal/config"
	"threadgems/internal/middlewares"
	"time"

	"github.com/alexedwards/scs/v2"
)

// sessionScopedLifetime bounds how long an abandoned login attempt keeps its
// state server-side. The cookie itself ends with the browser session.
const sessionScopedLifetime = time.Hour

// FlowFactory builds an authflow.Manager per request. The durable store lives
// in a persistent cookie and the session-scoped store in a browser-session
// cookie.
type FlowFactory struct {
	cfg       *config.Config
	durable   *scs.SessionManager
	session   *scs.SessionManager
	transport http.RoundTripper
	random    io.Reader
	clock     func() time.Time
}

// NewFlowFactory wires the two browser stores. transport carries backend
// calls; nil means http.DefaultTransport.
func NewFlowFactory(cfg *config.Config, durableStore, sessionStore scs.Store, transport http.RoundTripper) *FlowFactory {
	durable := scs.New()
	durable.Store = durableStore
	durable.Lifetime = cfg.Frontend.DurableLifetime
	durable.Cookie.Name = cfg.Frontend.DurableCookieName
	durable.Cookie.Persist = true

	session := scs.New()
	session.Store = sessionStore
	session.Lifetime = sessionScopedLifetime
	session.Cookie.Name = cfg.Frontend.SessionCookieName
	session.Cookie.Persist = false

	for _, m := range []*scs.SessionManager{durable, session} {
		m.Cookie.HttpOnly = true
		m.Cookie.SameSite = http.SameSiteLaxMode
		m.Cookie.Secure = cfg.Sessions.Secure
		m.Cookie.Path = "/"
	}

	return &FlowFactory{
		cfg:       cfg,
		durable:   durable,
		session:   session,
		transport: transport,
		random:    rand.Reader,
		clock:     time.Now,
	}
}

// WithRandom replaces the state token source.
func (f *FlowFactory) WithRandom(random io.Reader) *FlowFactory {
	f.random = random
	return f
}

func (f *FlowFactory) WithClock(clock func() time.Time) *FlowFactory {
	f.clock = clock
	return f
}

func (f *FlowFactory) BackendURL() string {
	return f.cfg.Frontend.BackendURL
}

func (f *FlowFactory) Client(ctx *middlewares.AppContext) *http.Client {
	return &http.Client{
		Timeout: f.cfg.Frontend.CallTimeout,
		Transport: &CookieRelay{
			Base:       f.transport,
			CookieName: f.cfg.Sessions.Name,
			Incoming:   ctx.Request,
			Outgoing:   ctx.Response,
		},
	}
}

func (f *FlowFactory) Manager(ctx *middlewares.AppContext) *authflow.Manager {
	opts := authflow.Options{
		ClientID:    f.cfg.Threads.ClientID,
		RedirectURI: f.cfg.Threads.RedirectURI,
		AuthBaseURL: f.cfg.Threads.AuthBaseURL,
		Timeout:     f.cfg.Frontend.CallTimeout,
		Random:      f.random,
		Clock:       f.clock,
		Logger:      ctx.Logger,
	}

	return authflow.NewManager(opts,
		NewSessionStore(f.durable),
		NewSessionStore(f.session),
		authflow.NewHTTPBackend(f.BackendURL(), f.Client(ctx)),
		NewRedirectNavigator(ctx.Response, ctx.Request),
	)
}

func (f *FlowFactory) Renew(ctx *middlewares.AppContext) error {
	return f.durable.RenewToken(ctx)
}

func (f *FlowFactory) LoadAndSave(next http.Handler) http.Handler {
	return f.durable.LoadAndSave(f.session.LoadAndSave(next))
}
