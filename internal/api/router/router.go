// Package router initializes the echo instance, middlewares and routes of
// an api.Server.
package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/api/handlers"
	"github.com/lyralabs/watermark-service/internal/api/httperrors"
	"github.com/lyralabs/watermark-service/internal/api/middleware"
)

// Init attaches middlewares, route groups and all handlers to the server's
// echo instance.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HTTPErrorHandler = httperrors.HandlerWithConfig(s.Config.Echo.HideInternalServerErrorDetails)

	s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())

	s.Echo.Use(echoMiddleware.Recover())
	s.Echo.Use(echoMiddleware.RequestID())
	s.Echo.Use(middleware.Logger())
	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "watermark_http",
		Registerer: s.Metrics.Registry,
	}))

	s.Echo.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Metrics.Registry,
	}))

	s.Router = &api.Router{
		Root: s.Echo.Group(""),
		API:  s.Echo.Group("/api"),
	}

	handlers.AttachAllRoutes(s)
}
