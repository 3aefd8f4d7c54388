package provenance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
	"github.com/lyralabs/watermark-service/internal/watermark/provenance"
)

const (
	hexKeyA = "8f7d0a52c4b0e6a1d93f5c7b2e84a6d0f1b3c5d7e9a0b2c4d6e8f0a1b3c5d7e9"
	hexKeyB = "3a9e1c5f7b2d4e6a8c0f1d3b5a7e9c2f4d6b8a0e1c3f5d7b9a2c4e6f8d0b1a3c"
)

func newService(t *testing.T, active string, previous ...string) *provenance.Service {
	t.Helper()
	ring, err := keyring.NewFromHex(active, previous...)
	require.NoError(t, err)
	return provenance.NewService(ring)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := newService(t, hexKeyA, hexKeyB)

	cert := svc.Issue("wm-id-hex", "fingerprint-hex", "claude-sonnet-4-6")

	assert.NotEmpty(t, cert.ID)
	assert.Equal(t, 1, cert.KeyEpoch)
	assert.Len(t, cert.ChainHash, 64)
	assert.Len(t, cert.Signature, 64)

	epoch, err := svc.Verify(cert)
	require.NoError(t, err)
	assert.Equal(t, 1, epoch)
}

func TestVerifyRejectsFingerprintSwap(t *testing.T) {
	svc := newService(t, hexKeyA)

	cert := svc.Issue("wm-id-hex", "fingerprint-hex", "m")
	cert.Fingerprint = "a-different-fingerprint"

	_, err := svc.Verify(cert)
	require.Error(t, err)
}

func TestVerifyRejectsForgedSignature(t *testing.T) {
	svc := newService(t, hexKeyA)

	cert := svc.Issue("wm-id-hex", "fingerprint-hex", "m")
	cert.Signature = cert.Signature[:62] + "00"

	_, err := svc.Verify(cert)
	require.Error(t, err)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer := newService(t, hexKeyB)
	verifier := newService(t, hexKeyA)

	cert := issuer.Issue("wm-id-hex", "fingerprint-hex", "m")

	_, err := verifier.Verify(cert)
	require.Error(t, err)
}

func TestVerifySurvivesKeyRotation(t *testing.T) {
	// Certificate issued before a rotation stays valid afterwards, reported
	// at the historical epoch.
	issuer := newService(t, hexKeyB)
	cert := issuer.Issue("wm-id-hex", "fingerprint-hex", "m")

	rotated := newService(t, hexKeyA, hexKeyB)
	epoch, err := rotated.Verify(cert)
	require.NoError(t, err)
	assert.Equal(t, 0, epoch)
}

func TestIssueIsDeterministicUpToID(t *testing.T) {
	svc := newService(t, hexKeyA)
	svc.Now = func() time.Time { return time.Unix(1700000000, 0) }

	a := svc.Issue("wm", "fp", "m")
	b := svc.Issue("wm", "fp", "m")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.ChainHash, b.ChainHash)
	assert.Equal(t, a.Signature, b.Signature)
}
