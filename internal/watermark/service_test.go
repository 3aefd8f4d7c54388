package watermark_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyralabs/watermark-service/internal/watermark"
	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
	"github.com/lyralabs/watermark-service/internal/watermark/textwm"
)

const (
	hexKeyA = "8f7d0a52c4b0e6a1d93f5c7b2e84a6d0f1b3c5d7e9a0b2c4d6e8f0a1b3c5d7e9"
	hexKeyB = "3a9e1c5f7b2d4e6a8c0f1d3b5a7e9c2f4d6b8a0e1c3f5d7b9a2c4e6f8d0b1a3c"
)

func newTextService(t *testing.T, maxBytes int, active string, previous ...string) *watermark.Service {
	t.Helper()

	ring, err := keyring.NewFromHex(active, previous...)
	require.NoError(t, err)

	codecs := map[watermark.DataType]watermark.Codec{
		watermark.DataTypeText: textwm.New(4.0),
	}
	return watermark.NewService(ring, codecs, maxBytes)
}

func TestEmbedVerifyRoundTrip(t *testing.T) {
	svc := newTextService(t, 0, hexKeyA)
	ctx := context.Background()

	embedded, err := svc.Embed(ctx, watermark.EmbedRequest{
		DataType:  watermark.DataTypeText,
		Data:      "The quick brown fox jumps over the lazy dog",
		Strength:  swag.Float64(0.8),
		ModelName: "claude-sonnet-4-6",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, embedded.WatermarkedData)
	assert.Len(t, embedded.WatermarkID, 64)
	assert.Len(t, embedded.Signature, 64)
	assert.Len(t, embedded.Fingerprint, 64)
	assert.Equal(t, "kgw_statistical_payload_steganography", embedded.Method)

	verified, err := svc.Verify(ctx, watermark.VerifyRequest{
		DataType: watermark.DataTypeText,
		Data:     embedded.WatermarkedData,
	})
	require.NoError(t, err)

	assert.True(t, verified.Detected)
	assert.True(t, verified.SignatureValid)
	assert.False(t, verified.TamperDetected)
	assert.Greater(t, verified.Confidence, 0.85)
	assert.Equal(t, "claude-sonnet-4-6", verified.ModelName)
	assert.Equal(t, embedded.WatermarkID, verified.WatermarkID)
	assert.Equal(t, 0, verified.KeyEpoch)
}

func TestVerifyCleanContent(t *testing.T) {
	svc := newTextService(t, 0, hexKeyA)

	verified, err := svc.Verify(context.Background(), watermark.VerifyRequest{
		DataType: watermark.DataTypeText,
		Data:     "completely unwatermarked prose with nothing hidden in it",
	})
	require.NoError(t, err)

	assert.False(t, verified.Detected)
	assert.False(t, verified.SignatureValid)
	assert.False(t, verified.TamperDetected)
	assert.Equal(t, -1, verified.KeyEpoch)
	assert.Empty(t, verified.WatermarkID)
}

func TestVerifyAfterKeyRotation(t *testing.T) {
	// Content watermarked under the old deployment key stays verifiable
	// once that key is moved to the historical list.
	oldSvc := newTextService(t, 0, hexKeyB)
	embedded, err := oldSvc.Embed(context.Background(), watermark.EmbedRequest{
		DataType:  watermark.DataTypeText,
		Data:      "text issued before the key rotation happened here",
		ModelName: "legacy-model",
	})
	require.NoError(t, err)

	rotated := newTextService(t, 0, hexKeyA, hexKeyB)
	verified, err := rotated.Verify(context.Background(), watermark.VerifyRequest{
		DataType: watermark.DataTypeText,
		Data:     embedded.WatermarkedData,
	})
	require.NoError(t, err)

	assert.True(t, verified.SignatureValid)
	assert.Equal(t, "legacy-model", verified.ModelName)
	assert.Equal(t, 0, verified.KeyEpoch)
}

func TestEmbedIsDeterministicUnderFixedClock(t *testing.T) {
	svc := newTextService(t, 0, hexKeyA)
	svc.Now = func() time.Time { return time.Unix(1700000000, 0) }

	req := watermark.EmbedRequest{
		DataType:  watermark.DataTypeText,
		Data:      "identical input must give identical output",
		Strength:  swag.Float64(0.8),
		ModelName: "m",
	}

	a, err := svc.Embed(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Embed(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.WatermarkedData, b.WatermarkedData)
	assert.Equal(t, a.WatermarkID, b.WatermarkID)
	assert.Equal(t, a.Signature, b.Signature)
}

func TestEmbedDefaultsStrength(t *testing.T) {
	svc := newTextService(t, 0, hexKeyA)

	_, err := svc.Embed(context.Background(), watermark.EmbedRequest{
		DataType: watermark.DataTypeText,
		Data:     "no strength given",
	})
	require.NoError(t, err)
}

func TestExplicitZeroStrengthDisablesBias(t *testing.T) {
	// An explicit 0.0 is a valid request, not an omission: the payload
	// channel is still embedded, but no word may be substituted.
	svc := newTextService(t, 0, hexKeyA)

	text := "The big fast important system shows good results so people buy it"
	embedded, err := svc.Embed(context.Background(), watermark.EmbedRequest{
		DataType:  watermark.DataTypeText,
		Data:      text,
		Strength:  swag.Float64(0.0),
		ModelName: "m",
	})
	require.NoError(t, err)

	visible := strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\u2060':
			return -1
		}
		return r
	}, embedded.WatermarkedData)
	assert.Equal(t, text, visible)

	verified, err := svc.Verify(context.Background(), watermark.VerifyRequest{
		DataType: watermark.DataTypeText,
		Data:     embedded.WatermarkedData,
	})
	require.NoError(t, err)
	assert.True(t, verified.SignatureValid)
}

func TestUnsupportedDataType(t *testing.T) {
	svc := newTextService(t, 0, hexKeyA)

	_, err := svc.Embed(context.Background(), watermark.EmbedRequest{
		DataType: "video",
		Data:     "x",
	})
	require.ErrorIs(t, err, watermark.ErrUnsupportedDataType)

	_, err = svc.Verify(context.Background(), watermark.VerifyRequest{
		DataType: "video",
		Data:     "x",
	})
	require.ErrorIs(t, err, watermark.ErrUnsupportedDataType)
}

func TestContentTooLarge(t *testing.T) {
	svc := newTextService(t, 16, hexKeyA)

	_, err := svc.Embed(context.Background(), watermark.EmbedRequest{
		DataType: watermark.DataTypeText,
		Data:     "this text is comfortably longer than sixteen bytes",
	})
	require.ErrorIs(t, err, watermark.ErrContentTooLarge)
}
