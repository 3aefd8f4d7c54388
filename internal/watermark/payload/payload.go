// Package payload implements the fixed 30-byte authenticated metadata block
// that every watermarked artifact carries, plus the MSB-first bit codec used
// by the steganographic channels.
//
// Layout (big-endian):
//
//	[0:2]   magic      0x57 0x4d ("WM")
//	[2:6]   timestamp  unix seconds, uint32
//	[6:26]  model name UTF-8, zero-padded to 20 bytes
//	[26:30] auth tag   HMAC-SHA256(key, bytes[0:26])[:4]
package payload

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrMalformed reports bytes that are not a decodable payload block. It lives
// here rather than in the parent package to keep the import direction
// one-way; the parent re-exports it as ErrMalformedPayload.
var ErrMalformed = errors.New("malformed watermark payload")

const (
	// Magic identifies this codec's payloads.
	Magic uint16 = 0x574D

	// ModelNameLen is the fixed byte width reserved for the model name.
	ModelNameLen = 20

	// Size is the total payload length in bytes.
	Size = 2 + 4 + ModelNameLen + 4

	// Bits is the payload length in bits as carried by the steganographic
	// channels (240).
	Bits = Size * 8

	// SignedLen is the length of the authenticated prefix (everything
	// before the tag).
	SignedLen = Size - TagLen

	// TagLen is the truncated HMAC tag length.
	TagLen = 4
)

// Signer produces the truncated authentication tag over the payload prefix.
// Implemented by keyring.Key.
type Signer interface {
	SignTag(signed []byte) [TagLen]byte
}

// Header is the decoded form of a payload block. The tag is kept verbatim so
// callers can authenticate it against any number of historical keys.
type Header struct {
	Timestamp uint32
	ModelName string
	Tag       [TagLen]byte
}

// Pack builds the 30-byte payload for the given embed metadata. The model
// name is UTF-8 encoded and truncated at a rune boundary so a decoded header
// never contains a split code point; names longer than 20 bytes are lossy by
// design.
func Pack(timestamp uint32, modelName string, signer Signer) [Size]byte {
	var out [Size]byte
	binary.BigEndian.PutUint16(out[0:2], Magic)
	binary.BigEndian.PutUint32(out[2:6], timestamp)
	copy(out[6:6+ModelNameLen], TruncateModelName(modelName))

	tag := signer.SignTag(out[:SignedLen])
	copy(out[SignedLen:], tag[:])

	return out
}

// Unpack parses a payload block. It fails if fewer than 30 bytes are
// supplied or the magic does not match; the tag is NOT verified here.
func Unpack(raw []byte) (Header, error) {
	if len(raw) < Size {
		return Header{}, fmt.Errorf("%w: requires %d bytes, got %d", ErrMalformed, Size, len(raw))
	}
	if binary.BigEndian.Uint16(raw[0:2]) != Magic {
		return Header{}, fmt.Errorf("%w: magic mismatch %#04x", ErrMalformed, binary.BigEndian.Uint16(raw[0:2]))
	}

	h := Header{
		Timestamp: binary.BigEndian.Uint32(raw[2:6]),
		ModelName: trimModelName(raw[6 : 6+ModelNameLen]),
	}
	copy(h.Tag[:], raw[SignedLen:Size])

	return h, nil
}

// SignedPrefix returns the authenticated portion of a packed payload.
func SignedPrefix(raw []byte) []byte {
	return raw[:SignedLen]
}

// TruncateModelName encodes a model name into exactly ModelNameLen bytes,
// zero-padded, never splitting a multi-byte code point.
func TruncateModelName(name string) []byte {
	out := make([]byte, ModelNameLen)
	if len(name) <= ModelNameLen {
		copy(out, name)
		return out
	}

	cut := ModelNameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	copy(out, name[:cut])
	return out
}

func trimModelName(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}

// ToBits expands bytes into individual bits, most significant bit first.
func ToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1)
		}
	}
	return bits
}

// FromBits packs MSB-first bits back into bytes, zero-padding to the next
// byte boundary.
func FromBits(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
