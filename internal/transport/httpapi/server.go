// Package httpapi exposes the live feed and refresh controls over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"HackerNews/internal/livefeed"
	"HackerNews/internal/usecase"
)

const (
	shutdownTimeout   = 10 * time.Second
	heartbeatInterval = 15 * time.Second
	streamBuffer      = 64
)

// RefreshController is the part of the refresher the HTTP layer drives.
type RefreshController interface {
	IsRefreshing() bool
	LastReport() (usecase.Report, bool)
	RequestRefresh(ctx context.Context) bool
	Cancel() bool
}

// Deps wires the server.
type Deps struct {
	Refresher RefreshController
	Feed      *livefeed.Feed
	Logger    *slog.Logger
	// BaseContext outlives single requests. Refreshes triggered over HTTP run
	// under it and open streams end when it is cancelled.
	BaseContext context.Context
}

// Server is the echo based HTTP adapter.
type Server struct {
	echo      *echo.Echo
	refresher RefreshController
	feed      *livefeed.Feed
	logger    *slog.Logger
	base      context.Context
	heartbeat time.Duration
}

// New builds the server and registers its routes.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	base := deps.BaseContext
	if base == nil {
		base = context.Background()
	}

	s := &Server{
		echo:      echo.New(),
		refresher: deps.Refresher,
		feed:      deps.Feed,
		logger:    logger,
		base:      base,
		heartbeat: heartbeatInterval,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/healthz" || path == "/metrics"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				logger.DebugContext(ctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				logger.WarnContext(ctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/stories", s.handleStories)
	s.echo.GET("/stories/stream", s.handleStream)

	s.echo.GET("/refresh", s.handleRefreshStatus)
	s.echo.POST("/refresh", s.handleRefreshStart)
	s.echo.DELETE("/refresh", s.handleRefreshCancel)
}

// Handler returns the routed http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("http server listening", "addr", addr)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("start http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
