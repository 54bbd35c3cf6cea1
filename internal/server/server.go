package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loykin/pagesbadge/internal/common"
	"github.com/loykin/pagesbadge/internal/constants"
	"github.com/loykin/pagesbadge/internal/resolve"
)

// Resolver produces a badge for a query.
type Resolver interface {
	Resolve(ctx context.Context, q resolve.Query) resolve.Result
}

// Options configures the HTTP surface.
type Options struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	// Metrics exposes /metrics when true.
	Metrics bool
}

// Server serves badge descriptors over HTTP.
type Server struct {
	opts     Options
	resolver Resolver
	engine   *gin.Engine
	metrics  *Metrics
	logger   *common.Logger
}

// New wires routes and middleware. Badge routes answer GET and HEAD on "/" and "/badge".
func New(resolver Resolver, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = constants.DefaultListenAddr
	}
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	}
	s := &Server{
		opts:     opts,
		resolver: resolver,
		engine:   gin.New(),
		metrics:  NewMetrics(),
		logger:   common.GetLogger().WithComponent("server"),
	}

	s.engine.Use(gin.Recovery(), s.metrics.middleware(), s.requestLogger())
	for _, path := range []string{"/", "/badge"} {
		s.engine.GET(path, s.handleBadge)
		s.engine.HEAD(path, s.handleBadge)
	}
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	return s
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleBadge(c *gin.Context) {
	q := resolve.QueryFromValues(c.Request.URL.Query())
	res := s.resolver.Resolve(c.Request.Context(), q)
	s.metrics.recordOutcome(res.Outcome)
	c.Set("outcome", string(res.Outcome))
	c.JSON(res.StatusCode, res.Badge)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		attrs := []any{
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if o, ok := c.Get("outcome"); ok {
			attrs = append(attrs, "outcome", o)
		}
		s.logger.WithRequest(c.Request.Method, c.Request.URL.String()).Info("request served", attrs...)
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr, "metrics", s.opts.Metrics)
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

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
