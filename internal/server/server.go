package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/cache"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/config"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	httpserver "github.com/preston-bernstein/nba-leaders-dashboard/internal/http"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/http/handlers"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/http/middleware"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/http/ws"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/metrics"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/poller"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
)

// redisClient is what the server needs from *redis.Client.
type redisClient interface {
	cache.Client
	Close() error
}

var (
	metricsSetup   = metrics.Setup
	newRedisClient = func(cfg config.CacheConfig) redisClient {
		return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	}
)

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	controller    *dashboard.Controller
	hub           *ws.Hub
	cache         *cache.Publisher
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	unsubscribe   []func()
	closers       []func() error
}

// New constructs a server with default provider and poller wiring. It fails
// when the category to column table is inconsistent.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if err := leaders.CheckColumns(); err != nil {
		return nil, err
	}
	return newServerWithMetrics(cfg, logger, nil, nil), nil
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.StatsProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.StatsProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg.Provider)
	} else {
		provider = factory.wrap(cfg.Provider, provider)
	}

	controller := dashboard.NewController(logger, recorder)
	hub := ws.NewHub(controller, logger, recorder, cfg.CORSOrigins)
	plr := poller.New(provider, controller, logger, recorder, cfg.PollInterval)

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		controller:    controller,
		hub:           hub,
		httpServer:    buildHTTPServer(cfg, controller, hub, plr, logger, recorder),
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
	s.unsubscribe = append(s.unsubscribe, controller.Subscribe(hub.Publish))
	s.wireCache(cfg.Cache)
	return s
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, controller *dashboard.Controller, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		controller: controller,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func (s *Server) wireCache(cfg config.CacheConfig) {
	if !cfg.Enabled() {
		return
	}
	client := newRedisClient(cfg)
	s.cache = cache.NewPublisher(client, cache.Options{Key: cfg.Key, Channel: cfg.Channel, TTL: cfg.TTL}, s.logger, s.metrics)
	s.unsubscribe = append(s.unsubscribe, s.controller.Subscribe(s.cache.Observe))
	s.closers = append(s.closers, client.Close)
	logging.Info(s.logger, "cache publisher enabled", slog.String("addr", cfg.Addr), slog.String("key", cfg.Key))
}

func buildHTTPServer(cfg config.Config, controller *dashboard.Controller, hub *ws.Hub, plr Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	routes := httpserver.Routes{
		Handler: handlers.NewHandler(controller, logger, statusFn),
		Origins: cfg.CORSOrigins,
	}
	// The admin endpoint is only mounted when a token is configured.
	if cfg.AdminToken != "" && plr != nil {
		routes.Admin = handlers.NewAdminHandler(plr, controller, cfg.AdminToken, logger)
	}
	if hub != nil {
		routes.WS = hub
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, httpserver.NewRouter(routes))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.warmCache(ctx)
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) warmCache(ctx context.Context) {
	if s.cache == nil || s.controller == nil {
		return
	}
	warmCtx, cancel := context.WithTimeout(ctx, cacheWarmTimeout)
	defer cancel()
	s.cache.Warm(warmCtx, s.controller)
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	if s.hub != nil {
		s.hub.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && s.logger != nil {
			s.logger.Warn("close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = defaultMetricsPath
		}
		mux := http.NewServeMux()
		mux.Handle(path, handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           mux,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
