package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/realitycheck/internal/factcheck"
	"github.com/ppiankov/realitycheck/internal/model"
	"github.com/ppiankov/realitycheck/internal/render"
)

// Server is the fact-check HTTP endpoint and web page
type Server struct {
	cfg       model.ServerConfig
	minLength int
	checker   *factcheck.Checker
	logger    *slog.Logger
	engine    *gin.Engine
}

// New creates a server around checker
func New(cfg *model.Config, checker *factcheck.Checker, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := render.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	s := &Server{
		cfg:       cfg.Server,
		minLength: cfg.Client.MinTextLength,
		checker:   checker,
		logger:    logger,
		engine:    gin.New(),
	}
	s.engine.SetHTMLTemplate(tmpl)
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.engine.Use(requestLogger(s.logger), recovery(s.logger), cors())

	for _, path := range []string{"/fact-check", "/functions/v1/fact-check", "/api/v1/fact-check"} {
		s.engine.POST(path, s.handleFactCheck)
	}

	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/health/upstream", s.handleUpstreamHealth)

	s.engine.GET("/", s.handlePage)
	s.engine.POST("/", s.handlePageSubmit)
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.engine,
		ReadTimeout:  seconds(s.cfg.ReadTimeout),
		WriteTimeout: seconds(s.cfg.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", httpSrv.Addr, "provider", s.checker.ProviderName())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutCtx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutCtx, cancel = context.WithTimeout(shutCtx, seconds(s.cfg.ShutdownTimeout))
		defer cancel()
	}

	if err := httpSrv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
