package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"threadgems/internal/auth"
	"threadgems/internal/config"
	"threadgems/internal/data"
	"threadgems/internal/distributed"
	"threadgems/internal/jobs"
	"threadgems/internal/middlewares"
	"threadgems/internal/storage"
	"threadgems/internal/threads"
	"threadgems/internal/web"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"
)

const (
	redisDurablePrefix = "threadgems:local:"
	redisFlowPrefix    = "threadgems:flow:"
)

type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	appCtx      *middlewares.AppContext
	httpServer  *http.Server
	debugServer *http.Server
	database    *storage.DatabaseProvider
	election    *distributed.Election
	resigned    chan struct{}
	jobManager  *jobs.JobManager
	redis       []*redis.Client
	cancel      context.CancelFunc
}

func New(cfg *config.Config) (*Server, error) {
	logger := setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		cfg:    cfg,
		logger: logger,
		cancel: cancel,
	}

	if err := s.setup(ctx); err != nil {
		s.closeResources()
		cancel()
		return nil, err
	}

	return s, nil
}

func (s *Server) setup(ctx context.Context) error {
	cfg, logger := s.cfg, s.logger

	var sessionClient, cacheClient, leaderClient *redis.Client
	var err error

	if cfg.Sessions.Store == "redis" {
		if sessionClient, err = s.redisClient(ctx, cfg.Redis.SessionIndex, "session"); err != nil {
			return err
		}
	}

	if cfg.Cache.Type == "redis" || cfg.Cache.Type == "hybrid" {
		if cacheClient, err = s.redisClient(ctx, cfg.Redis.CacheIndex, "cache"); err != nil {
			return err
		}
	}

	if cfg.Distributed != nil && cfg.Distributed.Enabled {
		if leaderClient, err = s.redisClient(ctx, cfg.Redis.LeaderIndex, "election"); err != nil {
			return err
		}
		s.election = distributed.NewElection(leaderClient, cfg.Distributed.TTL, logger)
	}

	sessionManager, err := auth.NewSessionManager(logger, cfg, sessionClient)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	cache, err := data.NewCacheProvider(cfg, cacheClient, logger)
	if err != nil {
		return fmt.Errorf("failed to create cache provider: %w", err)
	}

	// a nil *DatabaseProvider must not reach the interfaces below
	var store storage.StorageProvider
	var threadStore data.ThreadStore
	if cfg.Storage != nil && cfg.Storage.Enabled {
		database, err := storage.NewDatabaseProvider(ctx, cfg)
		if err != nil {
			logger.Error("failed to initialize database provider", "error", err)
			return err
		}
		s.database = database

		logger.Debug("running database migrations")
		if err := database.RunMigrations(ctx); err != nil {
			logger.Error("failed to run database migrations", "error", err)
			return err
		}
		logger.Debug("database migrations completed")

		store = database
		threadStore = database
	}

	httpClient := &http.Client{Timeout: cfg.Threads.RequestTimeout}
	oauth := threads.NewOAuth(cfg.Threads, httpClient)
	threadsClient := threads.NewClient(cfg.Threads, httpClient)
	threadsProvider := auth.NewThreadsProvider(oauth, threadsClient, logger)

	flows := web.NewFlowFactory(cfg, frontendStore(sessionClient, redisDurablePrefix), frontendStore(sessionClient, redisFlowPrefix), nil)

	s.appCtx = middlewares.NewAppContext(ctx, cfg, logger, cache, sessionManager, threadsProvider, flows, store)

	var leadership jobs.Leadership
	if s.election != nil {
		leadership = s.election
	}
	s.jobManager = jobs.NewJobManager(leadership, 0, logger)

	if cfg.Feed.Enabled {
		aggregator := threads.NewAggregator(threadsClient, cfg.Feed, cfg.Threads.RequestTimeout, logger)
		service := data.NewService(aggregator, cache, threadStore, cfg.Feed, logger)
		s.jobManager.Register(jobs.NewFeedRefreshJob(service, cfg.Feed.FetchInterval, logger))
	} else {
		logger.Info("feed refresh disabled")
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           setupRouter(s.appCtx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		s.debugServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler:           setupDebugRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return nil
}

func (s *Server) redisClient(ctx context.Context, db int, subsystem string) (*redis.Client, error) {
	client, err := data.NewRedisClient(ctx, s.cfg.Redis, db, subsystem, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s redis: %w", subsystem, err)
	}
	s.redis = append(s.redis, client)
	return client, nil
}

// frontendStore keeps browser state in redis when sessions are shared
// between instances, and in memory otherwise.
func frontendStore(client *redis.Client, prefix string) scs.Store {
	if client == nil {
		return memstore.New()
	}
	return goredisstore.NewWithPrefix(client, prefix)
}

func (s *Server) Start() error {
	if s.election != nil {
		s.resigned = make(chan struct{})
		go func() {
			defer close(s.resigned)
			s.election.Start(s.appCtx)
		}()
	}

	s.jobManager.Start(s.appCtx)

	go func() {
		if s.election != nil {
			s.logger.Info("server started", "port", s.cfg.Server.Port, "instance", s.election.InstanceID)
		} else {
			s.logger.Info("server started", "port", s.cfg.Server.Port)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("debug server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("debug server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		s.logger.Info("shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("context canceled")
	}

	return s.Shutdown()
}

func (s *Server) Shutdown() error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info("shutting down server")

	// stops the election and every job context
	s.cancel()
	s.jobManager.Shutdown(shutdownCtx)

	if s.resigned != nil {
		select {
		case <-s.resigned:
		case <-shutdownCtx.Done():
			s.logger.Warn("election did not resign in time")
		}
	}

	var shutdownErr error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server forced to shutdown", "error", err)
		shutdownErr = err
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("debug server forced to shutdown", "error", err)
		}
	}

	s.closeResources()

	s.logger.Info("server exited")
	return shutdownErr
}

func (s *Server) closeResources() {
	if s.database != nil {
		if err := s.database.Close(); err != nil {
			s.logger.Warn("failed to close database", "error", err)
		}
	}

	for _, client := range s.redis {
		if err := client.Close(); err != nil {
			s.logger.Warn("failed to close redis client", "error", err)
		}
	}
}
