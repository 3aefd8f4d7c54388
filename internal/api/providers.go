package api

// PROVIDERS - define here only providers that for various reasons (e.g.
// cyclic dependency) can't live in their corresponding packages, or that
// wrap constructors which only accept sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

import (
	"fmt"

	"github.com/lyralabs/watermark-service/internal/config"
	"github.com/lyralabs/watermark-service/internal/watermark"
	"github.com/lyralabs/watermark-service/internal/watermark/audiowm"
	"github.com/lyralabs/watermark-service/internal/watermark/imagewm"
	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
	"github.com/lyralabs/watermark-service/internal/watermark/provenance"
	"github.com/lyralabs/watermark-service/internal/watermark/textwm"
)

// NewKeyring parses the configured secret key material. A missing, short or
// non-hex key is a fatal startup condition: the process must refuse to
// serve rather than issue unverifiable watermarks.
func NewKeyring(cfg config.Server) (*keyring.Keyring, error) {
	if cfg.Watermark.SecretKey == "" {
		return nil, fmt.Errorf("invalid key configuration: WATERMARK_SECRET_KEY is not set")
	}

	keys, err := keyring.NewFromHex(cfg.Watermark.SecretKey, cfg.Watermark.PreviousKeys...)
	if err != nil {
		return nil, fmt.Errorf("invalid key configuration: %w", err)
	}

	return keys, nil
}

// NewCodecs assembles the modality codec registry with the configured
// detection thresholds.
func NewCodecs(cfg config.Server) map[watermark.DataType]watermark.Codec {
	return map[watermark.DataType]watermark.Codec{
		watermark.DataTypeText:  textwm.New(cfg.Watermark.TextZThreshold),
		watermark.DataTypeImage: imagewm.New(cfg.Watermark.ImageRhoThreshold),
		watermark.DataTypeAudio: audiowm.New(cfg.Watermark.AudioRhoThreshold),
	}
}

// NewWatermarkService wires the stateless codec service.
func NewWatermarkService(cfg config.Server, keys *keyring.Keyring, codecs map[watermark.DataType]watermark.Codec) *watermark.Service {
	return watermark.NewService(keys, codecs, cfg.Watermark.MaxContentBytes)
}

// NewProvenanceService wires the certificate issuer over the same keyring.
func NewProvenanceService(keys *keyring.Keyring) *provenance.Service {
	return provenance.NewService(keys)
}
