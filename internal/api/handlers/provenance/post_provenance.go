// Package provenance holds the certificate issue and verify route handlers.
package provenance

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/types"
	"github.com/lyralabs/watermark-service/internal/util"
)

func PostProvenanceRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/provenance", postProvenanceHandler(s))
}

func postProvenanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostProvenancePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		cert := s.Provenance.Issue(
			swag.StringValue(body.WatermarkID),
			swag.StringValue(body.FingerprintHash),
			body.ModelName,
		)

		response := &types.ProvenanceCertificate{
			CertificateID:   swag.String(cert.ID),
			WatermarkID:     swag.String(cert.WatermarkID),
			FingerprintHash: swag.String(cert.Fingerprint),
			ModelName:       cert.ModelName,
			IssuedAt:        strfmt.DateTime(cert.IssuedAt),
			KeyEpoch:        int64(cert.KeyEpoch),
			ChainHash:       swag.String(cert.ChainHash),
			Signature:       swag.String(cert.Signature),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
