// Package textwm watermarks existing text with two independent channels: a
// KGW-style statistical bias over a keyed green/red vocabulary partition,
// and the 30-byte authenticated payload hidden as invisible zero-width code
// points.
//
// The statistical channel survives removal of the invisible characters; the
// payload channel is recoverable bit-exact as long as the text is not
// scrubbed. Whitespace or Unicode normalization that strips zero-width
// characters destroys the payload channel; the statistical channel is the
// fallback there.
package textwm

import (
	"hash/fnv"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/lyralabs/watermark-service/internal/watermark"
	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
	"github.com/lyralabs/watermark-service/internal/watermark/payload"
)

const (
	// VocabSize is the hashed token vocabulary the green/red split is
	// defined over.
	VocabSize = 50000

	// Gamma is the expected green fraction under the null hypothesis.
	Gamma = 0.5

	greenContext = "text/green"
	substContext = "text/subst"
)

// Zero-width alphabet: one rune per 2-bit symbol.
var zwAlphabet = [4]rune{
	'\u200b', // 00 zero-width space
	'\u200c', // 01 zero-width non-joiner
	'\u200d', // 10 zero-width joiner
	'\u2060', // 11 word joiner
}

var zwDecode = map[rune][2]byte{
	'\u200b': {0, 0},
	'\u200c': {0, 1},
	'\u200d': {1, 0},
	'\u2060': {1, 1},
}

const tokenPunct = ".,!?;:\"'()[]{}"

// Codec implements watermark.Codec for plain text.
type Codec struct {
	zThreshold float64
	synonyms   map[string]string
}

// New builds a text codec with the given z-score detection threshold.
func New(zThreshold float64) *Codec {
	return &Codec{
		zThreshold: zThreshold,
		synonyms:   defaultSynonyms,
	}
}

func (c *Codec) Method() string {
	return "kgw_statistical_payload_steganography"
}

func (c *Codec) Threshold() float64 {
	return c.zThreshold
}

// TokenID maps a word onto the hashed vocabulary. Words are
// NFC-normalized, punctuation-stripped and lowercased first, so token
// identity survives case edits and Unicode normalization.
func TokenID(word string) uint32 {
	cleaned := norm.NFC.String(strings.ToLower(strings.Trim(word, tokenPunct)))

	h := fnv.New32a()
	h.Write([]byte(cleaned))
	return h.Sum32() % VocabSize
}

// Embed rewrites red-listed words toward keyed green synonyms with
// probability strength, then interleaves the payload as zero-width runes.
// Short texts still carry the full payload: the zero-width budget per word
// grows as the word count shrinks.
func (c *Codec) Embed(raw []byte, pl []byte, key keyring.Key, strength float64) ([]byte, error) {
	tokens := strings.Fields(string(raw))
	if len(tokens) == 0 {
		return raw, nil
	}

	greenSub := key.SubKey(greenContext)
	decisions := key.PRF(substContext)

	for i, token := range tokens {
		tokens[i] = c.biasToken(token, greenSub, decisions, strength)
	}

	bits := payload.ToBits(pl)
	zwTotal := (len(bits) + 1) / 2
	zwPerWord := (zwTotal + len(tokens) - 1) / len(tokens)
	if zwPerWord < 1 {
		zwPerWord = 1
	}

	var b strings.Builder
	bit := 0
	for i, token := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(token)

		for n := 0; n < zwPerWord && bit < len(bits); n++ {
			hi := bits[bit]
			var lo byte
			if bit+1 < len(bits) {
				lo = bits[bit+1]
			}
			b.WriteRune(zwAlphabet[hi<<1|lo])
			bit += 2
		}
	}

	return []byte(b.String()), nil
}

// biasToken substitutes the word core with a green-listed synonym when the
// word itself is red, keeping surrounding punctuation and leading-letter
// case intact.
func (c *Codec) biasToken(token string, greenSub []byte, decisions *keyring.Stream, strength float64) string {
	core := strings.Trim(token, tokenPunct)
	if core == "" {
		return token
	}

	if keyring.MaskBit(greenSub, TokenID(core)) {
		return token // already green
	}

	synonym, ok := c.synonyms[strings.ToLower(core)]
	if !ok || !keyring.MaskBit(greenSub, TokenID(synonym)) {
		return token
	}

	if decisions.Float64() >= strength {
		return token
	}

	if isUpperFirst(core) {
		synonym = upperFirst(synonym)
	}

	prefix := token[:strings.Index(token, core)]
	suffix := token[strings.Index(token, core)+len(core):]
	return prefix + synonym + suffix
}

// Extract separates the two channels: zero-width runes feed the payload
// decoder, everything else feeds the z-score over green-token counts.
func (c *Codec) Extract(raw []byte, key keyring.Key) (watermark.Extraction, error) {
	text := string(raw)

	var clean strings.Builder
	var bits []byte
	for _, r := range text {
		if sym, ok := zwDecode[r]; ok {
			bits = append(bits, sym[0], sym[1])
			continue
		}
		clean.WriteRune(r)
	}

	tokens := strings.Fields(clean.String())
	ext := watermark.Extraction{Units: len(tokens)}

	if len(tokens) > 0 {
		greenSub := key.SubKey(greenContext)
		greenCount := 0
		for _, t := range tokens {
			if keyring.MaskBit(greenSub, TokenID(t)) {
				greenCount++
			}
		}

		n := float64(len(tokens))
		expected := n * Gamma
		sigma := math.Sqrt(n * Gamma * (1 - Gamma))
		ext.Score = (float64(greenCount) - expected) / math.Max(sigma, 1e-9)
	}

	if len(bits) >= payload.Bits {
		ext.Payload = payload.FromBits(bits[:payload.Bits])
	}

	return ext, nil
}

func isUpperFirst(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
