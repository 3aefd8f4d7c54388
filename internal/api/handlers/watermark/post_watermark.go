// Package watermark holds the embed and verify route handlers.
package watermark

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/api/httperrors"
	"github.com/lyralabs/watermark-service/internal/types"
	"github.com/lyralabs/watermark-service/internal/util"
	"github.com/lyralabs/watermark-service/internal/watermark"
)

func PostWatermarkRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/watermark", postWatermarkHandler(s))
}

func postWatermarkHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostWatermarkPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		req := watermark.EmbedRequest{
			DataType:  watermark.DataType(swag.StringValue(body.DataType)),
			Data:      swag.StringValue(body.Data),
			Strength:  body.WatermarkStrength,
			ModelName: body.ModelName,
		}

		start := time.Now()
		result, err := s.Watermark.Embed(ctx, req)
		s.Metrics.ObserveEmbed(string(req.DataType), start, err)
		if err != nil {
			if httpErr := mapCodecError(err); httpErr != nil {
				return httpErr
			}
			log.Error().Err(err).Str("data_type", string(req.DataType)).Msg("Failed to embed watermark")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to embed watermark")
		}

		response := &types.WatermarkResponse{
			WatermarkedData: swag.String(result.WatermarkedData),
			WatermarkMetadata: &types.WatermarkMetadata{
				WatermarkID:            swag.String(result.WatermarkID),
				EmbeddingMethod:        swag.String(result.Method),
				CryptographicSignature: swag.String(result.Signature),
				FingerprintHash:        swag.String(result.Fingerprint),
				ModelName:              result.ModelName,
			},
			IntegrityProof: &types.IntegrityProof{
				Algorithm: swag.String("HMAC-SHA256"),
				Timestamp: strfmt.DateTime(result.IssuedAt),
			},
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

// mapCodecError translates the codec sentinels into their public 4xx shape.
// Unknown errors stay internal.
func mapCodecError(err error) *httperrors.HTTPError {
	switch {
	case errors.Is(err, watermark.ErrUnsupportedDataType):
		return httperrors.ErrBadRequestUnsupportedDataType
	case errors.Is(err, watermark.ErrUnsupportedEncoding):
		return httperrors.ErrBadRequestUnsupportedEncoding
	case errors.Is(err, watermark.ErrContentTooSmall):
		return httperrors.ErrBadRequestContentTooSmall
	case errors.Is(err, watermark.ErrContentTooLarge):
		return httperrors.ErrBadRequestContentTooLarge
	}
	return nil
}
