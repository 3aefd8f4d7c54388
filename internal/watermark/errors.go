package watermark

import (
	"errors"

	"github.com/lyralabs/watermark-service/internal/watermark/payload"
)

// Error taxonomy of the codec core. The API layer maps these onto 4xx
// responses; anything else surfaces as a 500.
var (
	// ErrMalformedPayload means no authenticated payload block could be
	// decoded from the content. Not fatal on verification: the statistical
	// channel may still fire.
	ErrMalformedPayload = payload.ErrMalformed

	// ErrContentTooSmall means the content cannot carry the full 240-bit
	// payload channel. Embedding fails fast rather than truncating.
	ErrContentTooSmall = errors.New("content too small to carry watermark payload")

	// ErrUnsupportedDataType is returned for modalities without a codec.
	ErrUnsupportedDataType = errors.New("unsupported data type")

	// ErrUnsupportedEncoding is returned when content is not in the single
	// lossless encoding the modality supports (PNG, PCM WAV) or cannot be
	// decoded at all.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")

	// ErrContentTooLarge guards worst-case latency: content over the
	// configured limit is rejected before any transform begins.
	ErrContentTooLarge = errors.New("content exceeds size limit")
)
