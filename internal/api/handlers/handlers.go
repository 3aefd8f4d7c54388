// Package handlers registers every route of the service.
package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/api/handlers/common"
	"github.com/lyralabs/watermark-service/internal/api/handlers/provenance"
	"github.com/lyralabs/watermark-service/internal/api/handlers/watermark"
)

// AttachAllRoutes binds the full route table to the server.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		watermark.PostWatermarkRoute(s),
		watermark.PostVerifyRoute(s),
		provenance.PostProvenanceRoute(s),
		provenance.PostProvenanceVerifyRoute(s),
	}
}
