package server

import (
	"threadgems/internal/handlers"
	"threadgems/internal/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRouter(ctx *middlewares.AppContext) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middlewares.ClientIPMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.MetricsMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(ctx.SessionManager.LoadAndSave)
	r.Use(ctx.Flows.LoadAndSave)

	r.Use(middlewares.AppContextMiddleware(ctx))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ctx.Config.CORS.AllowedOrigins,
		AllowedMethods:   ctx.Config.CORS.AllowedMethods,
		AllowedHeaders:   ctx.Config.CORS.AllowedHeaders,
		ExposedHeaders:   ctx.Config.CORS.ExposedHeaders,
		AllowCredentials: ctx.Config.CORS.AllowCredentials,
		MaxAge:           ctx.Config.CORS.MaxAgeSeconds,
	}))

	r.Use(middleware.Compress(5))

	// browser-facing login flow, driven server-side
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", ctx.HandlerFunc(handlers.GETLoginHandler))
		r.Get("/callback", ctx.HandlerFunc(handlers.GETLoginCallbackHandler))
		r.Post("/logout", ctx.HandlerFunc(handlers.LogoutHandler))
		r.Get("/status", ctx.HandlerFunc(handlers.AuthStatusHandler))
		r.Get("/profile/{username}", ctx.HandlerFunc(handlers.GETProfileRelayHandler))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/callback", ctx.HandlerFunc(handlers.POSTAuthCallbackHandler))
			r.Get("/verify", ctx.HandlerFunc(handlers.AuthVerifyHandler))
			r.Post("/verify", ctx.HandlerFunc(handlers.AuthVerifyHandler))
			r.Post("/refresh", ctx.HandlerFunc(handlers.POSTAuthRefreshHandler))
			r.Post("/logout", ctx.HandlerFunc(handlers.POSTAuthLogoutHandler))
			r.Get("/user", ctx.HandlerFunc(handlers.GETAuthUserHandler))
		})

		r.Route("/threads", func(r chi.Router) {
			r.Get("/", ctx.HandlerFunc(handlers.GETThreadsHandler))
			r.Get("/manifest", ctx.HandlerFunc(handlers.GETManifestHandler))

			r.Group(func(r chi.Router) {
				r.Use(middlewares.RequireAuth)
				r.Get("/profile/{username}", ctx.HandlerFunc(handlers.GETProfileThreadsHandler))
			})
		})

		r.Route("/v1", func(r chi.Router) {
			r.Get("/health", ctx.HandlerFunc(handlers.HandlerHealth))
		})
	})

	return r
}

func setupDebugRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/debug", middleware.Profiler())

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
