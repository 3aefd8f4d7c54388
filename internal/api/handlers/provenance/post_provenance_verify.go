package provenance

import (
	"net/http"
	"time"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/api/httperrors"
	"github.com/lyralabs/watermark-service/internal/types"
	"github.com/lyralabs/watermark-service/internal/util"
	"github.com/lyralabs/watermark-service/internal/watermark/provenance"
)

func PostProvenanceVerifyRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/provenance/verify", postProvenanceVerifyHandler(s))
}

func postProvenanceVerifyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.ProvenanceCertificate
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		cert := provenance.Certificate{
			ID:          swag.StringValue(body.CertificateID),
			WatermarkID: swag.StringValue(body.WatermarkID),
			Fingerprint: swag.StringValue(body.FingerprintHash),
			ModelName:   body.ModelName,
			IssuedAt:    time.Time(body.IssuedAt),
			KeyEpoch:    int(body.KeyEpoch),
			ChainHash:   swag.StringValue(body.ChainHash),
			Signature:   swag.StringValue(body.Signature),
		}

		epoch, err := s.Provenance.Verify(cert)
		if err != nil {
			log.Debug().Err(err).Str("certificate_id", cert.ID).Msg("Certificate rejected")
			return httperrors.ErrBadRequestInvalidCertificate
		}

		response := &types.ProvenanceVerifyResponse{
			Valid:    swag.Bool(true),
			KeyEpoch: int64(epoch),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
