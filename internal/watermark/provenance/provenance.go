// Package provenance issues and verifies stateless provenance certificates
// on top of the watermark codec. A certificate binds a content fingerprint
// to its watermark ID, origin model and key epoch through a chain hash and
// an HMAC signature; verification recomputes both from the certificate
// fields and the keyring, so no certificate store exists.
package provenance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
)

// Certificate is the issued proof of origin.
type Certificate struct {
	ID          string    `json:"certificate_id"`
	WatermarkID string    `json:"watermark_id"`
	Fingerprint string    `json:"fingerprint_hash"`
	ModelName   string    `json:"model_name,omitempty"`
	IssuedAt    time.Time `json:"issued_at"`
	KeyEpoch    int       `json:"key_epoch"`
	ChainHash   string    `json:"chain_hash"`
	Signature   string    `json:"signature"`
}

// Service issues and checks certificates against the deployment keyring.
type Service struct {
	keys *keyring.Keyring

	// Now is swappable for deterministic tests.
	Now func() time.Time
}

// NewService builds the certificate service.
func NewService(keys *keyring.Keyring) *Service {
	return &Service{keys: keys, Now: time.Now}
}

// Issue creates a certificate for a watermarked artifact, signed by the
// active key.
func (s *Service) Issue(watermarkID, fingerprint, modelName string) Certificate {
	key := s.keys.Active()
	issuedAt := s.Now().UTC().Truncate(time.Second)

	cert := Certificate{
		ID:          uuid.NewString(),
		WatermarkID: watermarkID,
		Fingerprint: fingerprint,
		ModelName:   modelName,
		IssuedAt:    issuedAt,
		KeyEpoch:    key.Epoch(),
		ChainHash:   chainHash(fingerprint, watermarkID, modelName),
	}
	cert.Signature = sign(key, cert)

	return cert
}

// Verify recomputes the chain hash and checks the signature against every
// configured key, newest first. It returns the epoch of the validating key.
func (s *Service) Verify(cert Certificate) (int, error) {
	if cert.ChainHash != chainHash(cert.Fingerprint, cert.WatermarkID, cert.ModelName) {
		return -1, fmt.Errorf("certificate chain hash does not match its fields")
	}

	for _, key := range s.keys.Keys() {
		if hmac.Equal([]byte(sign(key, cert)), []byte(cert.Signature)) {
			return key.Epoch(), nil
		}
	}

	return -1, fmt.Errorf("certificate signature does not verify under any configured key")
}

// chainHash links the content fingerprint to its origin claim:
// SHA-256(fingerprint || watermark_id || model).
func chainHash(fingerprint, watermarkID, modelName string) string {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte(watermarkID))
	h.Write([]byte(modelName))
	return hex.EncodeToString(h.Sum(nil))
}

// sign computes the certificate HMAC over a canonical field string. The
// random certificate ID is deliberately excluded so re-issuing the same
// claim yields certificates that authenticate identically.
func sign(key keyring.Key, cert Certificate) string {
	canonical := strings.Join([]string{
		cert.WatermarkID,
		cert.Fingerprint,
		cert.ModelName,
		cert.IssuedAt.UTC().Format(time.RFC3339),
		fmt.Sprintf("%d", cert.KeyEpoch),
		cert.ChainHash,
	}, "\n")

	return key.ContentSignature([]byte(canonical))
}
