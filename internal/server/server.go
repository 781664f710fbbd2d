// Package server exposes the career path scoring endpoint consumed by the interactive session.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/career"
	"github.com/spigell/career-navigator/internal/filtering"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Listen string
	Debug  bool
}

// Server answers scoring requests from a career source and serves the demo fixture.
type Server struct {
	cfg     Config
	source  career.Source
	filters *filtering.Filtering
	metrics *Metrics
	logger  *zap.Logger
	router  *gin.Engine
}

func New(cfg Config, source career.Source, filters *filtering.Filtering, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if filters == nil {
		filters = filtering.New(nil, logger)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		source:  source,
		filters: filters,
		metrics: NewMetrics(),
		logger:  logger,
	}
	s.router = s.routes()

	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.metrics.Middleware(), s.accessLog())

	router.POST("/navigate", s.navigate)
	router.GET("/static/mock_data.json", s.fixture)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", s.metrics.Handler())

	return router
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("address", s.cfg.Listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", zap.String("reason", ctx.Err().Error()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
