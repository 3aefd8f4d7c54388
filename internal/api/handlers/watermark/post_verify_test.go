package watermark_test

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/test"
	"github.com/lyralabs/watermark-service/internal/types"
)

func embedText(t *testing.T, s *api.Server, text, model string) string {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/watermark", &types.PostWatermarkPayload{
		DataType:          swag.String("text"),
		Data:              swag.String(text),
		WatermarkStrength: swag.Float64(0.8),
		ModelName:         model,
	}, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var response types.WatermarkResponse
	test.ParseResponseAndValidate(t, res, &response)
	return *response.WatermarkedData
}

func TestPostVerifyWatermarkedText(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		marked := embedText(t, s, "The quick brown fox jumps over the lazy dog", "claude-sonnet-4-6")

		res := test.PerformRequest(t, s, "POST", "/api/verify", &types.PostVerifyPayload{
			DataType: swag.String("text"),
			Data:     swag.String(marked),
		}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var response types.VerifyResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.True(t, *response.VerificationResult.WatermarkDetected)
		assert.Greater(t, *response.VerificationResult.ConfidenceScore, 0.85)
		assert.Len(t, response.VerificationResult.MatchedWatermarkID, 64)
		assert.Equal(t, "claude-sonnet-4-6", response.VerificationResult.ModelName)
		assert.True(t, *response.ForensicDetails.SignatureValid)
		assert.False(t, *response.ForensicDetails.TamperDetected)
	})
}

func TestPostVerifyCleanText(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/verify", &types.PostVerifyPayload{
			DataType: swag.String("text"),
			Data:     swag.String("perfectly ordinary prose nobody watermarked at all"),
		}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var response types.VerifyResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.False(t, *response.VerificationResult.WatermarkDetected)
		assert.False(t, *response.ForensicDetails.SignatureValid)
		assert.False(t, *response.ForensicDetails.TamperDetected)
		assert.Empty(t, response.VerificationResult.MatchedWatermarkID)
	})
}

func TestPostVerifyScrubbedTextLosesSignature(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		marked := embedText(t, s, "The quick brown fox jumps over the lazy dog", "m")

		scrubbed := strings.Map(func(r rune) rune {
			switch r {
			case '\u200b', '\u200c', '\u200d', '\u2060':
				return -1
			}
			return r
		}, marked)

		res := test.PerformRequest(t, s, "POST", "/api/verify", &types.PostVerifyPayload{
			DataType: swag.String("text"),
			Data:     swag.String(scrubbed),
		}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var response types.VerifyResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.False(t, *response.ForensicDetails.SignatureValid)
	})
}

func TestPostVerifyImageRoundTrip(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/watermark", &types.PostWatermarkPayload{
			DataType:  swag.String("image"),
			Data:      swag.String(base64.StdEncoding.EncodeToString(test.GradientPNG(t, 64, 64))),
			ModelName: "image-model",
		}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var embedded types.WatermarkResponse
		test.ParseResponseAndValidate(t, res, &embedded)

		verify := test.PerformRequest(t, s, "POST", "/api/verify", &types.PostVerifyPayload{
			DataType: swag.String("image"),
			Data:     embedded.WatermarkedData,
		}, nil)
		require.Equal(t, http.StatusOK, verify.Code)

		var response types.VerifyResponse
		test.ParseResponseAndValidate(t, verify, &response)

		assert.True(t, *response.VerificationResult.WatermarkDetected)
		assert.True(t, *response.ForensicDetails.SignatureValid)
		assert.Equal(t, *embedded.WatermarkMetadata.WatermarkID, response.VerificationResult.MatchedWatermarkID)
		assert.Equal(t, "image-model", response.VerificationResult.ModelName)
	})
}

func TestPostVerifyImageBitFlipBreaksSignature(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/watermark", &types.PostWatermarkPayload{
			DataType:  swag.String("image"),
			Data:      swag.String(base64.StdEncoding.EncodeToString(test.GradientPNG(t, 64, 64))),
			ModelName: "image-model",
		}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var embedded types.WatermarkResponse
		test.ParseResponseAndValidate(t, res, &embedded)

		marked, err := base64.StdEncoding.DecodeString(*embedded.WatermarkedData)
		require.NoError(t, err)

		verify := test.PerformRequest(t, s, "POST", "/api/verify", &types.PostVerifyPayload{
			DataType: swag.String("image"),
			Data:     swag.String(base64.StdEncoding.EncodeToString(test.FlipImageLSB(t, marked))),
		}, nil)
		require.Equal(t, http.StatusOK, verify.Code)

		var response types.VerifyResponse
		test.ParseResponseAndValidate(t, verify, &response)

		// The DCT channel still fires but the payload no longer authenticates.
		assert.True(t, *response.VerificationResult.WatermarkDetected)
		assert.False(t, *response.ForensicDetails.SignatureValid)
		assert.True(t, *response.ForensicDetails.TamperDetected)
	})
}

func TestPostVerifyAudioRoundTrip(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/watermark", &types.PostWatermarkPayload{
			DataType:  swag.String("audio"),
			Data:      swag.String(base64.StdEncoding.EncodeToString(test.SineWAV(t, 8192, 440))),
			ModelName: "audio-model",
		}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var embedded types.WatermarkResponse
		test.ParseResponseAndValidate(t, res, &embedded)

		verify := test.PerformRequest(t, s, "POST", "/api/verify", &types.PostVerifyPayload{
			DataType: swag.String("audio"),
			Data:     embedded.WatermarkedData,
		}, nil)
		require.Equal(t, http.StatusOK, verify.Code)

		var response types.VerifyResponse
		test.ParseResponseAndValidate(t, verify, &response)

		assert.True(t, *response.VerificationResult.WatermarkDetected)
		assert.True(t, *response.ForensicDetails.SignatureValid)
		assert.Equal(t, "audio-model", response.VerificationResult.ModelName)
	})
}

func TestPostVerifyAudioBitFlipBreaksSignature(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/watermark", &types.PostWatermarkPayload{
			DataType:  swag.String("audio"),
			Data:      swag.String(base64.StdEncoding.EncodeToString(test.SineWAV(t, 8192, 440))),
			ModelName: "audio-model",
		}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var embedded types.WatermarkResponse
		test.ParseResponseAndValidate(t, res, &embedded)

		marked, err := base64.StdEncoding.DecodeString(*embedded.WatermarkedData)
		require.NoError(t, err)

		verify := test.PerformRequest(t, s, "POST", "/api/verify", &types.PostVerifyPayload{
			DataType: swag.String("audio"),
			Data:     swag.String(base64.StdEncoding.EncodeToString(test.FlipAudioLSB(t, marked))),
		}, nil)
		require.Equal(t, http.StatusOK, verify.Code)

		var response types.VerifyResponse
		test.ParseResponseAndValidate(t, verify, &response)

		// The spectral channel still fires but the payload no longer
		// authenticates.
		assert.True(t, *response.VerificationResult.WatermarkDetected)
		assert.False(t, *response.ForensicDetails.SignatureValid)
		assert.True(t, *response.ForensicDetails.TamperDetected)
	})
}
