// Package watermark defines the codec contract and the stateless service
// that dispatches embed and verify calls to the per-modality codecs. All
// verifiable proof travels inside the content itself; nothing here persists
// state beyond the immutable key material.
package watermark

import (
	"time"

	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
)

// DataType selects the modality codec for a request.
type DataType string

const (
	DataTypeText  DataType = "text"
	DataTypeImage DataType = "image"
	DataTypeAudio DataType = "audio"
)

// DefaultStrength is applied when a request does not specify one.
const DefaultStrength = 0.8

// Codec is the two-method capability every modality implements. Raw content
// is the decoded form (UTF-8 bytes for text, container bytes for binary
// modalities); pl is the packed 30-byte payload to hide.
type Codec interface {
	// Method names the embedding scheme for response metadata.
	Method() string

	// Threshold is the calibrated detection threshold for this modality's
	// statistical score.
	Threshold() float64

	// Embed fuses the statistical bias and the payload bits into content.
	Embed(raw []byte, pl []byte, key keyring.Key, strength float64) ([]byte, error)

	// Extract recovers the statistical score and, when intact, the raw
	// payload bytes. A missing payload channel is reported with a nil
	// Payload, not an error.
	Extract(raw []byte, key keyring.Key) (Extraction, error)
}

// Extraction is the per-key output of a modality extractor.
type Extraction struct {
	// Score is the modality's detection statistic: z-score for text,
	// correlation for image and audio.
	Score float64

	// Payload holds the recovered 30-byte block, nil when the channel is
	// absent or truncated.
	Payload []byte

	// Units is the number of carrier units observed (tokens, pixels,
	// samples).
	Units int
}

// EmbedRequest is one stateless embed call. A nil Strength means the caller
// omitted it and DefaultStrength applies; an explicit 0.0 disables the bias
// channel entirely.
type EmbedRequest struct {
	DataType  DataType
	Data      string // raw text, or base64 for binary modalities
	Strength  *float64
	ModelName string
}

// EmbedResult carries the watermarked content and the payload metadata
// surfaced to callers. Nothing is stored server-side; the watermarked
// content is the only durable record.
type EmbedResult struct {
	WatermarkedData string
	WatermarkID     string
	Method          string
	Signature       string // HMAC-SHA256 over the watermarked bytes, hex
	Fingerprint     string // SHA-256 over the watermarked bytes, hex
	ModelName       string
	IssuedAt        time.Time
}

// VerifyRequest is one stateless verification call.
type VerifyRequest struct {
	DataType DataType
	Data     string
}

// VerifyResult is the fused outcome of both channels.
type VerifyResult struct {
	Detected         bool
	Confidence       float64
	WatermarkID      string
	ModelName        string
	SignatureValid   bool
	TamperDetected   bool
	StatisticalScore float64
	KeyEpoch         int // epoch of the key that validated, -1 otherwise
	Timestamp        uint32
}
