package storeapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/job-finder/pkg/logging"
)

// RouterConfig holds HTTP surface settings for the record store
type RouterConfig struct {
	AllowedOrigins []string // empty allows every origin
}

// NewRouter builds the gin engine serving /api/formdata and /healthz
func NewRouter(h *Handler, cfg RouterConfig, logger *logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	h.Register(r.Group("/api"))

	return r
}

func requestLogger(logger *logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Nop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_ip", c.ClientIP(),
		)
	}
}

// Server wraps the record store router with an HTTP listener
type Server struct {
	logger  *logging.Logger
	srv     *http.Server
	started atomic.Bool
}

// NewServer constructs the record store HTTP server
func NewServer(logger *logging.Logger, host, port string, handler http.Handler) *Server {
	return &Server{
		logger: logger,
		srv: &http.Server{
			Addr:              net.JoinHostPort(host, port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("record store listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for record store")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("record store shutdown with error", "err", err)
		return err
	}

	s.logger.Info("record store shutdown complete")
	return nil
}
