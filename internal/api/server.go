// Package api owns the HTTP server aggregate: configuration, the echo
// instance, route groups and the domain services handlers dispatch into.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lyralabs/watermark-service/internal/config"
	"github.com/lyralabs/watermark-service/internal/metrics"
	"github.com/lyralabs/watermark-service/internal/watermark"
	"github.com/lyralabs/watermark-service/internal/watermark/provenance"
)

// Router bundles the route groups handlers attach to.
type Router struct {
	Routes []*echo.Route
	Root   *echo.Group
	API    *echo.Group
}

// Server is the wired application aggregate.
type Server struct {
	Config     config.Server
	Echo       *echo.Echo
	Router     *Router
	Watermark  *watermark.Service
	Provenance *provenance.Service
	Metrics    *metrics.Service
}

func newServerWithComponents(
	cfg config.Server,
	wm *watermark.Service,
	prov *provenance.Service,
	m *metrics.Service,
) *Server {
	return &Server{
		Config:     cfg,
		Watermark:  wm,
		Provenance: prov,
		Metrics:    m,
	}
}

// Ready reports whether the router has been initialized.
func (s *Server) Ready() bool {
	return s.Echo != nil && s.Router != nil
}

// Start serves HTTP on the configured listen address, blocking until the
// server shuts down.
func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready, router was not initialized")
	}
	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.Echo == nil {
		return nil
	}
	return s.Echo.Shutdown(ctx)
}
