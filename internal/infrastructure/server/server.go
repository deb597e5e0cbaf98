package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/Undanomi/OSINT-GAME-sub000/internal/api/http"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/api/middleware"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/api/ws"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/config"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/monitoring"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/resilience"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/store"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/tracing"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/providers"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/providers/browser"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	app      *browser.App
	registry *service.Registry
	store    store.KV
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics

	cancelHydration context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.FromConfig(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing browser server",
		zap.String("port", cfg.Server.Port),
		zap.String("search_host", cfg.Browser.SearchHost),
		zap.String("archive_host", cfg.Browser.ArchiveHost),
		zap.String("store_backend", cfg.Store.Backend),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(reg)

	kv, err := store.Open(store.Config{
		Backend:  cfg.Store.Backend,
		Path:     cfg.Store.Path,
		InMemory: cfg.Store.InMemory,
		Logger:   logger.Named("store"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	kv = resilience.GuardKV(kv, resilience.New("cache-store", resilience.Settings{
		FailureThreshold: cfg.Store.BreakerThreshold,
		Cooldown:         cfg.Store.BreakerCooldown,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	}))

	synthetic, err := cfg.Browser.Synthetic()
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	app := browser.NewApp(browser.Config{
		SearchHost:         cfg.Browser.SearchHost,
		ArchiveHost:        cfg.Browser.ArchiveHost,
		Brand:              cfg.Browser.Brand,
		TabCapacity:        cfg.Browser.TabCapacity,
		PageSize:           cfg.Browser.PageSize,
		DefaultArchiveDate: cfg.Browser.DefaultArchiveDate,
		Synthetic:          synthetic,
		CacheTTL:           cfg.Cache.TTL,
		MinResults:         cfg.Search.MinResults,
		MaxDistance:        cfg.Search.MaxDistance,
		SeedPath:           cfg.Seed.Path,
	}, browser.Deps{
		Store:   kv,
		Logger:  logger,
		Metrics: metrics,
	})

	registry := service.NewRegistry().WithMetrics(metrics)
	registerProviders(registry, app, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.Middleware(tracing.Options{SlowThreshold: time.Second, Logger: logger}))
	router.Use(monitoring.Middleware(metrics))
	cors := middleware.DefaultCORSConfig().WithOrigins(cfg.Server.CORSOrigins)
	router.Use(middleware.CORS(cors))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}

	api.NewHandlers(app, registry, logger.Named("http")).Register(router)
	router.GET("/ws", ws.NewHandler(app, logger, metrics, originChecker(cors)).HandleConnection)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Requests are served while the cache fills; early searches see
	// cache_unavailable and are reloaded once hydration finishes.
	ctx, cancel := context.WithCancel(context.Background())
	app.StartHydration(ctx)

	logger.Info("Server initialized successfully")

	return &Server{
		router:          router,
		app:             app,
		registry:        registry,
		store:           kv,
		logger:          logger,
		config:          cfg,
		metrics:         metrics,
		cancelHydration: cancel,
	}, nil
}

// Router exposes the gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.http = &http.Server{Addr: addr, Handler: s.router}
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.cancelHydration()

	var errs []error
	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
		}
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close cache store", zap.Error(err))
		errs = append(errs, fmt.Errorf("failed to close cache store: %w", err))
	}

	_ = s.logger.Sync()
	return errors.Join(errs...)
}

func registerProviders(registry *service.Registry, app *browser.App, logger *logging.Logger) {
	if err := registry.Register(browser.NewProvider(app)); err != nil {
		logger.Warn("Failed to register browser provider", zap.Error(err))
	}
	if err := registry.Register(providers.NewSystem(app.Cache(), app)); err != nil {
		logger.Warn("Failed to register system provider", zap.Error(err))
	}
}

// originChecker applies the CORS origin list to websocket upgrades
func originChecker(cfg middleware.CORSConfig) func(*http.Request) bool {
	if cfg.AllowsAll() {
		return nil
	}
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
