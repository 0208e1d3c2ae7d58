package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/ai"
	api "github.com/GriffinCanCode/ChimeraOS/backend/internal/api/http"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/search"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/session"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/settings"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

// StreamPath is the WebSocket endpoint. It bypasses compression.
const StreamPath = "/stream"

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	http     *http.Server
	shell    *shell.Shell
	sessions *session.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics

	cancel context.CancelFunc
}

// NewServer creates a new server instance. A nil logger is built from cfg.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		l, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPaths: []string{"stdout"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
	}

	logger.Info("Initializing ChimeraOS Server",
		zap.String("port", cfg.Server.Port),
		zap.Bool("ai_enabled", cfg.AI.Enabled()),
	)

	metrics := monitoring.NewMetrics()

	var assistant *ai.Assistant
	if client, err := ai.NewGeminiClient(cfg.AI, logger); err == nil {
		assistant = ai.NewAssistant(client, logger, metrics)
		logger.Info("Assistant connected", zap.String("model", cfg.AI.Model))
	} else {
		assistant = ai.NewAssistant(nil, logger, metrics)
		logger.Warn("Assistant unavailable, using fallback replies", zap.Error(err))
	}

	fs, err := vfs.NewSeeded()
	if err != nil {
		return nil, fmt.Errorf("failed to seed file system: %w", err)
	}
	catalog := apps.Default()

	sh := shell.New(shell.Deps{
		Catalog:   catalog,
		FS:        fs,
		Settings:  settings.NewStore(logger),
		Assistant: assistant,
		Desktop:   cfg.Desktop,
		Logger:    logger,
		Metrics:   metrics,
	})
	sessions := session.NewManager(sh, logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitFromConfig(cfg.RateLimit)))
	}

	handlers := api.NewHandlers(sh, sessions, search.NewService(catalog, fs, assistant, logger), assistant, metrics, logger)
	handlers.Register(router)

	wsHandler := ws.NewHandler(sh, ws.Options{
		ClockInterval: cfg.Desktop.ClockInterval,
		Logger:        logger,
		Metrics:       metrics,
	})
	router.GET(StreamPath, wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s := &Server{
		router:   router,
		shell:    sh,
		sessions: sessions,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}
	s.handler = compress(router)

	logger.Info("Server initialized successfully")
	return s, nil
}

// compress gzips every response except the WebSocket upgrade, which needs
// the raw connection.
func compress(router http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == StreamPath || strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			router.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Shell returns the desktop served by s.
func (s *Server) Shell() *shell.Shell {
	return s.shell
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
}

// Run starts the background samplers and serves HTTP until Shutdown is
// called or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.shell.Sampler().Run(ctx)

	s.http = &http.Server{
		Addr:    s.Addr(),
		Handler: s.handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.cancel != nil {
		s.cancel()
	}

	var err error
	if s.http != nil {
		ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()
		if err = s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			err = fmt.Errorf("failed to shut down http server: %w", err)
		}
	}

	_ = s.logger.Sync()
	return err
}
