package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/types"
	"github.com/lyralabs/watermark-service/internal/util"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/health", getHealthyHandler(s))
}

// getHealthyHandler reports liveness. The service carries no database or
// registry, so readiness is implied by the process being up with a loaded
// keyring.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		response := &types.HealthResponse{
			Status:   "ok",
			Mode:     "stateless",
			Registry: "none",
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
