package imagewm_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyralabs/watermark-service/internal/watermark"
	"github.com/lyralabs/watermark-service/internal/watermark/imagewm"
	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
	"github.com/lyralabs/watermark-service/internal/watermark/payload"
)

const (
	hexKeyA = "8f7d0a52c4b0e6a1d93f5c7b2e84a6d0f1b3c5d7e9a0b2c4d6e8f0a1b3c5d7e9"
	hexKeyB = "3a9e1c5f7b2d4e6a8c0f1d3b5a7e9c2f4d6b8a0e1c3f5d7b9a2c4e6f8d0b1a3c"
)

func testKeys(t *testing.T) (active, old keyring.Key) {
	t.Helper()
	ring, err := keyring.NewFromHex(hexKeyA, hexKeyB)
	require.NoError(t, err)
	return ring.Active(), ring.Keys()[1]
}

func gradientPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: uint8(((x + y) * 255) / (width + height)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	key, _ := testKeys(t)
	codec := imagewm.New(0.04)

	pl := payload.Pack(1700000000, "claude-sonnet-4-6", key)
	raw := gradientPNG(t, 64, 64)

	marked, err := codec.Embed(raw, pl[:], key, 0.8)
	require.NoError(t, err)
	assert.NotEqual(t, raw, marked)

	ext, err := codec.Extract(marked, key)
	require.NoError(t, err)

	assert.Greater(t, ext.Score, codec.Threshold())
	assert.Equal(t, 64*64, ext.Units)

	require.NotNil(t, ext.Payload)
	assert.Equal(t, pl[:], ext.Payload)

	hdr, err := payload.Unpack(ext.Payload)
	require.NoError(t, err)
	assert.True(t, key.VerifyTag(payload.SignedPrefix(ext.Payload), hdr.Tag))
}

func TestExtractWithWrongKey(t *testing.T) {
	key, old := testKeys(t)
	codec := imagewm.New(0.04)

	pl := payload.Pack(1700000000, "m", key)
	marked, err := codec.Embed(gradientPNG(t, 64, 64), pl[:], key, 0.8)
	require.NoError(t, err)

	right, err := codec.Extract(marked, key)
	require.NoError(t, err)
	wrong, err := codec.Extract(marked, old)
	require.NoError(t, err)

	// The mask under the wrong key is uncorrelated with the embedded one.
	assert.Less(t, math.Abs(wrong.Score), right.Score/2)

	// LSB positions are deterministic, so the payload bytes still extract;
	// only the tag refuses to authenticate.
	require.NotNil(t, wrong.Payload)
	hdr, err := payload.Unpack(wrong.Payload)
	require.NoError(t, err)
	assert.False(t, old.VerifyTag(payload.SignedPrefix(wrong.Payload), hdr.Tag))
}

func TestEmbedRejectsTooSmallImage(t *testing.T) {
	key, _ := testKeys(t)
	codec := imagewm.New(0.04)

	pl := payload.Pack(1700000000, "m", key)

	// 10x10 = 100 pixels, not enough for 240 payload bits.
	_, err := codec.Embed(gradientPNG(t, 10, 10), pl[:], key, 0.8)
	require.ErrorIs(t, err, watermark.ErrContentTooSmall)
}

func TestEmbedRejectsNonPNG(t *testing.T) {
	key, _ := testKeys(t)
	codec := imagewm.New(0.04)

	pl := payload.Pack(1700000000, "m", key)

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	_, err := codec.Embed(jpeg, pl[:], key, 0.8)
	require.ErrorIs(t, err, watermark.ErrUnsupportedEncoding)

	_, err = codec.Embed([]byte("definitely not an image"), pl[:], key, 0.8)
	require.ErrorIs(t, err, watermark.ErrUnsupportedEncoding)
}

func TestCleanImageScoresLow(t *testing.T) {
	key, _ := testKeys(t)
	codec := imagewm.New(0.04)

	marked, err := codec.Embed(gradientPNG(t, 64, 64), payloadFor(t, key), key, 0.8)
	require.NoError(t, err)
	right, err := codec.Extract(marked, key)
	require.NoError(t, err)

	clean, err := codec.Extract(gradientPNG(t, 64, 64), key)
	require.NoError(t, err)

	assert.Less(t, math.Abs(clean.Score), right.Score/2)
}

func payloadFor(t *testing.T, key keyring.Key) []byte {
	t.Helper()
	pl := payload.Pack(1700000000, "m", key)
	return pl[:]
}

func TestStrengthScalesScore(t *testing.T) {
	key, _ := testKeys(t)
	codec := imagewm.New(0.04)
	raw := gradientPNG(t, 64, 64)

	weak, err := codec.Embed(raw, payloadFor(t, key), key, 0.2)
	require.NoError(t, err)
	strong, err := codec.Embed(raw, payloadFor(t, key), key, 1.0)
	require.NoError(t, err)

	weakExt, err := codec.Extract(weak, key)
	require.NoError(t, err)
	strongExt, err := codec.Extract(strong, key)
	require.NoError(t, err)

	assert.Greater(t, strongExt.Score, weakExt.Score)
}
