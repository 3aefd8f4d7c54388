// Package keyring holds the deployment secret key material and every keyed
// primitive in the codec: the truncated HMAC payload tag, the deterministic
// watermark ID, content signatures/fingerprints and the keyed PRF streams
// that drive vocabulary partitioning and coefficient sign masks.
//
// Key rotation is modeled as an ordered list of keys, newest first. The
// active key signs; verification walks the whole list so previously issued
// watermarks stay verifiable after a rotation.
package keyring

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/lyralabs/watermark-service/internal/watermark/payload"
)

// MinKeyLen is the minimum accepted secret length in bytes (256 bits).
const MinKeyLen = 32

const prfSalt = "lyra-watermark/prf/v1"

// Key is one deployment secret with its rotation epoch.
type Key struct {
	secret []byte
	epoch  int
}

// Epoch returns the rotation epoch this key belongs to. The active key has
// the highest epoch; epoch 0 is the oldest configured key.
func (k Key) Epoch() int {
	return k.epoch
}

// SignTag computes the truncated payload authentication tag:
// HMAC-SHA256(key, signed)[:4].
func (k Key) SignTag(signed []byte) [payload.TagLen]byte {
	mac := hmac.New(sha256.New, k.secret)
	mac.Write(signed)

	var tag [payload.TagLen]byte
	copy(tag[:], mac.Sum(nil))
	return tag
}

// VerifyTag checks a claimed tag in constant time.
func (k Key) VerifyTag(signed []byte, claimed [payload.TagLen]byte) bool {
	expected := k.SignTag(signed)
	return hmac.Equal(expected[:], claimed[:])
}

// WatermarkID derives the deterministic content-addressed identifier:
// hex(SHA-256(key || timestamp_be || model_20)). It deliberately does not
// reuse the MAC construction, so disclosing an ID leaks no tag material.
func (k Key) WatermarkID(timestamp uint32, modelName string) string {
	h := sha256.New()
	h.Write(k.secret)

	var ts [4]byte
	binary.BigEndian.PutUint32(ts[:], timestamp)
	h.Write(ts[:])
	h.Write(payload.TruncateModelName(modelName))

	return hex.EncodeToString(h.Sum(nil))
}

// ContentSignature computes the outer HMAC-SHA256 over a complete
// watermarked artifact, hex encoded. Surfaced as cryptographic_signature in
// embed responses.
func (k Key) ContentSignature(data []byte) string {
	mac := hmac.New(sha256.New, k.secret)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// Fingerprint is the plain SHA-256 content hash, hex encoded.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SubKey derives a 32-byte PRF subkey bound to a context label via
// HKDF-SHA256. Identical (key, context) pairs always yield the same subkey,
// which makes every pseudo-random mask reproducible at verify time.
func (k Key) SubKey(context string) []byte {
	sub := make([]byte, 32)
	r := hkdf.New(sha256.New, k.secret, []byte(prfSalt), []byte(context))
	if _, err := io.ReadFull(r, sub); err != nil {
		// HKDF cannot fail for a 32-byte read with SHA-256.
		panic(err)
	}
	return sub
}

// MaskBit is the random-access form of the PRF: one keyed bit per index.
// Used for green/red vocabulary membership (gamma = 0.5).
func MaskBit(subKey []byte, index uint32) bool {
	mac := hmac.New(sha256.New, subKey)

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], index)
	mac.Write(buf[:])

	return mac.Sum(nil)[0]&1 == 1
}

// Stream is a sequential counter-mode HMAC bitstream over a context subkey.
// Not safe for concurrent use; create one per operation.
type Stream struct {
	subKey  []byte
	counter uint64
	block   []byte
	off     int
}

// PRF opens a deterministic stream for the given context label.
func (k Key) PRF(context string) *Stream {
	return &Stream{subKey: k.SubKey(context)}
}

func (s *Stream) next() byte {
	if s.off == len(s.block) {
		mac := hmac.New(sha256.New, s.subKey)

		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], s.counter)
		mac.Write(ctr[:])

		s.block = mac.Sum(nil)
		s.counter++
		s.off = 0
	}

	b := s.block[s.off]
	s.off++
	return b
}

// Uint64 returns the next 64 pseudo-random bits.
func (s *Stream) Uint64() uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(s.next())
	}
	return v
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision.
func (s *Stream) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// SignMask returns n keyed ±1.0 values, the perturbation pattern for the
// DCT/FFT statistical channels.
func (s *Stream) SignMask(n int) []float64 {
	mask := make([]float64, n)
	for i := range mask {
		if s.next()&1 == 1 {
			mask[i] = 1.0
		} else {
			mask[i] = -1.0
		}
	}
	return mask
}

// Keyring is the ordered key list, newest first.
type Keyring struct {
	keys []Key
}

// New builds a keyring from the active secret and optional historical
// secrets ordered newest first. Every secret must be at least MinKeyLen
// bytes.
func New(active []byte, previous ...[]byte) (*Keyring, error) {
	secrets := append([][]byte{active}, previous...)

	keys := make([]Key, len(secrets))
	top := len(secrets) - 1
	for i, secret := range secrets {
		if len(secret) < MinKeyLen {
			return nil, fmt.Errorf("secret key %d is %d bytes, need at least %d", i, len(secret), MinKeyLen)
		}
		keys[i] = Key{secret: append([]byte(nil), secret...), epoch: top - i}
	}

	return &Keyring{keys: keys}, nil
}

// NewFromHex builds a keyring from hex-encoded secrets, the form they take
// in the environment.
func NewFromHex(active string, previous ...string) (*Keyring, error) {
	decode := func(s string) ([]byte, error) {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("secret key is not valid hex: %w", err)
		}
		return b, nil
	}

	activeRaw, err := decode(active)
	if err != nil {
		return nil, err
	}

	previousRaw := make([][]byte, 0, len(previous))
	for _, p := range previous {
		raw, err := decode(p)
		if err != nil {
			return nil, err
		}
		previousRaw = append(previousRaw, raw)
	}

	return New(activeRaw, previousRaw...)
}

// Active returns the signing key.
func (r *Keyring) Active() Key {
	return r.keys[0]
}

// Keys returns every key, newest first. Verification iterates this slice
// until a signature validates or it is exhausted.
func (r *Keyring) Keys() []Key {
	return r.keys
}

// Len reports how many keys are configured.
func (r *Keyring) Len() int {
	return len(r.keys)
}
