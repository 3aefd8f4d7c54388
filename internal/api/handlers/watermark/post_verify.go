package watermark

import (
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

func PostVerifyRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/verify", postVerifyHandler(s))
}

func postVerifyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostVerifyPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		req := watermark.VerifyRequest{
			DataType: watermark.DataType(swag.StringValue(body.DataType)),
			Data:     swag.StringValue(body.Data),
		}

		start := time.Now()
		result, err := s.Watermark.Verify(ctx, req)
		s.Metrics.ObserveVerify(string(req.DataType), start, result.Detected, result.TamperDetected, err)
		if err != nil {
			if httpErr := mapCodecError(err); httpErr != nil {
				return httpErr
			}
			log.Error().Err(err).Str("data_type", string(req.DataType)).Msg("Failed to verify content")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to verify content")
		}

		// An authenticated payload carries the model name; without one the
		// caller's hint is echoed back unverified.
		modelName := result.ModelName
		if modelName == "" {
			modelName = body.ModelName
		}

		response := &types.VerifyResponse{
			VerificationResult: &types.VerificationResult{
				WatermarkDetected:  swag.Bool(result.Detected),
				ConfidenceScore:    swag.Float64(result.Confidence),
				MatchedWatermarkID: result.WatermarkID,
				ModelName:          modelName,
			},
			ForensicDetails: &types.ForensicDetails{
				SignatureValid:   swag.Bool(result.SignatureValid),
				TamperDetected:   swag.Bool(result.TamperDetected),
				StatisticalScore: swag.Float64(result.StatisticalScore),
			},
			AnalysisTimestamp: strfmt.DateTime(time.Now().UTC()),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
