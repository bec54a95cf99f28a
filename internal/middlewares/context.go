package middlewares

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"threadgems/internal/config"
	"threadgems/internal/data"
	"threadgems/internal/storage"

	"github.com/go-chi/chi/v5/middleware"
)

type AppContext struct {
	context.Context
	Config          *config.Config
	Logger          *slog.Logger
	SessionManager  SessionProvider
	ThreadsProvider ThreadsProvider
	Flows           FlowProvider
	Cache           data.CacheProvider
	Storage         storage.StorageProvider

	// Credentials is set by RequireAuth.
	Credentials *Credentials

	Request  *http.Request
	Response http.ResponseWriter
}

type contextKey string

const appContextKey contextKey = "appContext"

func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCtx := &AppContext{
				Context:         r.Context(),
				Config:          baseCtx.Config,
				Logger:          requestLogger(baseCtx.Logger, r),
				SessionManager:  baseCtx.SessionManager,
				ThreadsProvider: baseCtx.ThreadsProvider,
				Flows:           baseCtx.Flows,
				Cache:           baseCtx.Cache,
				Storage:         baseCtx.Storage,
				Request:         r,
				Response:        w,
			}

			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			requestCtx.Context = ctx
			requestCtx.Request = r.WithContext(ctx)
			next.ServeHTTP(w, requestCtx.Request)
		})
	}
}

func requestLogger(logger *slog.Logger, r *http.Request) *slog.Logger {
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	return logger.With("client_ip", ClientIP(r))
}

type AppHandler func(*AppContext)

// HandlerFunc converts AppHandler to a http.HandlerFunc
func (ctx *AppContext) HandlerFunc(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// chi adds route params to the request after the app context was built
		appCtx.Request = r
		appCtx.Context = r.Context()
		h(appCtx)
	}
}

func (ctx *AppContext) Redirect(url string, status int) {
	http.Redirect(ctx.Response, ctx.Request, url, status)
}

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, cache data.CacheProvider, sessionManager SessionProvider, threadsProvider ThreadsProvider, flows FlowProvider, storage storage.StorageProvider) *AppContext {
	return &AppContext{
		Context:         ctx,
		Config:          cfg,
		Logger:          logger,
		SessionManager:  sessionManager,
		ThreadsProvider: threadsProvider,
		Flows:           flows,
		Cache:           cache,
		Storage:         storage,
	}
}

func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}

	return nil
}

func GetLogger(r *http.Request) *slog.Logger {
	if appCtx := GetAppContext(r); appCtx != nil {
		return appCtx.Logger
	}

	return nil
}

func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to marshal json", "error", err)
	}
}

// WriteRawJSON writes an already encoded JSON body.
func (ctx *AppContext) WriteRawJSON(status int, body []byte) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if _, err := ctx.Response.Write(body); err != nil {
		ctx.Logger.Error("failed to write response", "error", err)
	}
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}

func (ctx *AppContext) SetJSONStatus(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"status": message,
	})
}
