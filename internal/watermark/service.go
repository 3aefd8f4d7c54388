package watermark

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lyralabs/watermark-service/internal/watermark/forensic"
	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
	"github.com/lyralabs/watermark-service/internal/watermark/payload"
)

// Service dispatches embed/verify calls across the registered modality
// codecs. It is safe for concurrent use: every call is an independent pure
// transform over the immutable keyring.
type Service struct {
	keys     *keyring.Keyring
	codecs   map[DataType]Codec
	maxBytes int

	// Now is the embed clock, swappable for deterministic tests.
	Now func() time.Time
}

// NewService wires the keyring and modality codecs together. maxBytes bounds
// content size before any transform begins.
func NewService(keys *keyring.Keyring, codecs map[DataType]Codec, maxBytes int) *Service {
	return &Service{
		keys:     keys,
		codecs:   codecs,
		maxBytes: maxBytes,
		Now:      time.Now,
	}
}

// Keys exposes the keyring for collaborators that consume codec outputs
// (provenance certificates).
func (s *Service) Keys() *keyring.Keyring {
	return s.keys
}

func (s *Service) codec(dt DataType) (Codec, error) {
	c, ok := s.codecs[dt]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDataType, dt)
	}
	return c, nil
}

func (s *Service) decode(dt DataType, data string) ([]byte, error) {
	var raw []byte
	if dt == DataTypeText {
		raw = []byte(data)
	} else {
		var err error
		raw, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("%w: data is not valid base64", ErrUnsupportedEncoding)
		}
	}

	if s.maxBytes > 0 && len(raw) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes over limit %d", ErrContentTooLarge, len(raw), s.maxBytes)
	}

	return raw, nil
}

func (s *Service) encode(dt DataType, raw []byte) string {
	if dt == DataTypeText {
		return string(raw)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// Embed builds and signs the payload header, hands both channels to the
// modality codec and returns the watermarked content with its metadata.
// Identical inputs under a fixed clock produce byte-identical output.
func (s *Service) Embed(ctx context.Context, req EmbedRequest) (EmbedResult, error) {
	codec, err := s.codec(req.DataType)
	if err != nil {
		return EmbedResult{}, err
	}

	raw, err := s.decode(req.DataType, req.Data)
	if err != nil {
		return EmbedResult{}, err
	}

	strength := DefaultStrength
	if req.Strength != nil {
		strength = *req.Strength
	}

	issuedAt := s.Now().UTC()
	ts := uint32(issuedAt.Unix())
	key := s.keys.Active()

	pl := payload.Pack(ts, req.ModelName, key)

	watermarked, err := codec.Embed(raw, pl[:], key, strength)
	if err != nil {
		return EmbedResult{}, err
	}

	log.Ctx(ctx).Debug().
		Str("data_type", string(req.DataType)).
		Str("method", codec.Method()).
		Int("content_bytes", len(raw)).
		Float64("strength", strength).
		Msg("Embedded watermark")

	return EmbedResult{
		WatermarkedData: s.encode(req.DataType, watermarked),
		WatermarkID:     key.WatermarkID(ts, req.ModelName),
		Method:          codec.Method(),
		Signature:       key.ContentSignature(watermarked),
		Fingerprint:     keyring.Fingerprint(watermarked),
		ModelName:       req.ModelName,
		IssuedAt:        issuedAt,
	}, nil
}

// Verify runs the modality extractor against every configured key, newest
// first. The first key whose payload tag authenticates wins; if none does,
// the key with the strongest statistical score is reported. Verification is
// completely stateless: the content and the keyring are the only inputs.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	codec, err := s.codec(req.DataType)
	if err != nil {
		return VerifyResult{}, err
	}

	raw, err := s.decode(req.DataType, req.Data)
	if err != nil {
		return VerifyResult{}, err
	}

	best := VerifyResult{KeyEpoch: -1}
	haveBest := false

	for _, key := range s.keys.Keys() {
		ext, err := codec.Extract(raw, key)
		if err != nil {
			return VerifyResult{}, err
		}

		res := s.assess(codec, key, ext)
		if res.SignatureValid {
			best = res
			break
		}
		if !haveBest || res.StatisticalScore > best.StatisticalScore {
			best = res
			haveBest = true
		}
	}

	log.Ctx(ctx).Debug().
		Str("data_type", string(req.DataType)).
		Bool("detected", best.Detected).
		Bool("signature_valid", best.SignatureValid).
		Float64("statistical_score", best.StatisticalScore).
		Msg("Verified content")

	return best, nil
}

func (s *Service) assess(codec Codec, key keyring.Key, ext Extraction) VerifyResult {
	res := VerifyResult{
		StatisticalScore: ext.Score,
		KeyEpoch:         -1,
	}

	if ext.Payload != nil {
		if hdr, err := payload.Unpack(ext.Payload); err == nil {
			if key.VerifyTag(payload.SignedPrefix(ext.Payload), hdr.Tag) {
				res.SignatureValid = true
				res.ModelName = hdr.ModelName
				res.Timestamp = hdr.Timestamp
				res.WatermarkID = key.WatermarkID(hdr.Timestamp, hdr.ModelName)
				res.KeyEpoch = key.Epoch()
			}
		}
	}

	a := forensic.Assess(ext.Score, codec.Threshold(), res.SignatureValid)
	res.Detected = a.Detected
	res.TamperDetected = a.TamperDetected
	res.Confidence = a.Confidence

	return res
}
