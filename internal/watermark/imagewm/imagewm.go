// Package imagewm watermarks PNG images with a mid-frequency DCT bias and a
// red-channel LSB payload layer.
//
// Layer 1 (statistical): each 8x8 luma block gets its mid-band DCT
// coefficients shifted by ±alpha following a keyed sign mask; detection
// correlates the observed coefficients against the same mask.
//
// Layer 2 (payload): the 240 payload bits ride the red-channel LSBs of the
// first 240 pixels in raster order.
//
// Only lossless PNG input is accepted. JPEG or any lossy re-encode destroys
// the LSB channel and degrades the DCT channel below threshold. That is a
// limitation of the scheme, not a recoverable condition.
package imagewm

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/lyralabs/watermark-service/internal/watermark"
	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
	"github.com/lyralabs/watermark-service/internal/watermark/payload"
)

const (
	// alphaScale maps request strength [0,1] onto the DCT perturbation
	// step.
	alphaScale = 10.0

	// Mid-frequency band inside each 8x8 block: coefficient rows and
	// columns [midLo, midHi).
	midLo = 1
	midHi = 5

	dctContext = "image/dct"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	gifMagic  = []byte("GIF8")
	bmpMagic  = []byte("BM")
)

// Codec implements watermark.Codec for PNG images.
type Codec struct {
	rhoThreshold float64
}

// New builds an image codec with the given correlation detection threshold.
func New(rhoThreshold float64) *Codec {
	return &Codec{rhoThreshold: rhoThreshold}
}

func (c *Codec) Method() string {
	return "dct_lsb_dual_layer"
}

func (c *Codec) Threshold() float64 {
	return c.rhoThreshold
}

func sniff(raw []byte) error {
	switch {
	case bytes.HasPrefix(raw, pngMagic):
		return nil
	case bytes.HasPrefix(raw, jpegMagic):
		return fmt.Errorf("%w: JPEG is lossy, only PNG is supported", watermark.ErrUnsupportedEncoding)
	case bytes.HasPrefix(raw, gifMagic):
		return fmt.Errorf("%w: GIF is not supported, use PNG", watermark.ErrUnsupportedEncoding)
	case bytes.HasPrefix(raw, bmpMagic):
		return fmt.Errorf("%w: BMP is not supported, use PNG", watermark.ErrUnsupportedEncoding)
	default:
		return fmt.Errorf("%w: content is not a PNG image", watermark.ErrUnsupportedEncoding)
	}
}

func decodeNRGBA(raw []byte) (*image.NRGBA, error) {
	if err := sniff(raw); err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", watermark.ErrUnsupportedEncoding, err)
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

// luma returns the JPEG-style luminance plane in raster order.
func luma(img *image.NRGBA) []float64 {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(x, y)
			r := float64(img.Pix[o])
			g := float64(img.Pix[o+1])
			b := float64(img.Pix[o+2])
			out[y*w+x] = 0.299*r + 0.587*g + 0.114*b
		}
	}
	return out
}

// Embed applies the keyed DCT bias to the luma plane and writes the payload
// into red-channel LSBs. Images with fewer than 240 pixels cannot carry the
// payload and fail fast.
func (c *Codec) Embed(raw []byte, pl []byte, key keyring.Key, strength float64) ([]byte, error) {
	img, err := decodeNRGBA(raw)
	if err != nil {
		return nil, err
	}

	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w*h < payload.Bits {
		return nil, fmt.Errorf("%w: image has %d pixels, payload needs %d", watermark.ErrContentTooSmall, w*h, payload.Bits)
	}

	plane := luma(img)
	mask := key.PRF(dctContext).SignMask(w * h)
	alpha := strength * alphaScale

	for row := 0; row+blockSize <= h; row += blockSize {
		for col := 0; col+blockSize <= w; col += blockSize {
			var blk block
			for u := 0; u < blockSize; u++ {
				for v := 0; v < blockSize; v++ {
					blk[u][v] = plane[(row+u)*w+(col+v)]
				}
			}

			coeffs := dct2(&blk)
			for u := midLo; u < midHi; u++ {
				for v := midLo; v < midHi; v++ {
					coeffs[u][v] += alpha * mask[(row+u)*w+(col+v)]
				}
			}
			rec := idct2(coeffs)

			// Shift every color channel by the luma delta; the
			// weighted sum of equal channel shifts is the luma
			// shift itself.
			for u := 0; u < blockSize; u++ {
				for v := 0; v < blockSize; v++ {
					delta := rec[u][v] - blk[u][v]
					o := img.PixOffset(col+v, row+u)
					for ch := 0; ch < 3; ch++ {
						img.Pix[o+ch] = clampByte(float64(img.Pix[o+ch]) + delta)
					}
				}
			}
		}
	}

	bits := payload.ToBits(pl)
	for i, bit := range bits {
		x := i % w
		y := i / w
		o := img.PixOffset(x, y)
		img.Pix[o] = img.Pix[o]&0xFE | bit
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode watermarked png: %w", err)
	}
	return buf.Bytes(), nil
}

// Extract recomputes the mid-band DCT coefficients, correlates them against
// the keyed mask and reads back the red-channel LSB payload.
func (c *Codec) Extract(raw []byte, key keyring.Key) (watermark.Extraction, error) {
	img, err := decodeNRGBA(raw)
	if err != nil {
		return watermark.Extraction{}, err
	}

	w := img.Rect.Dx()
	h := img.Rect.Dy()

	plane := luma(img)
	mask := key.PRF(dctContext).SignMask(w * h)

	var observed, expected []float64
	for row := 0; row+blockSize <= h; row += blockSize {
		for col := 0; col+blockSize <= w; col += blockSize {
			var blk block
			for u := 0; u < blockSize; u++ {
				for v := 0; v < blockSize; v++ {
					blk[u][v] = plane[(row+u)*w+(col+v)]
				}
			}

			coeffs := dct2(&blk)
			for u := midLo; u < midHi; u++ {
				for v := midLo; v < midHi; v++ {
					observed = append(observed, coeffs[u][v])
					expected = append(expected, mask[(row+u)*w+(col+v)])
				}
			}
		}
	}

	ext := watermark.Extraction{Units: w * h}

	if len(observed) > 1 {
		rho := stat.Correlation(observed, expected, nil)
		if !math.IsNaN(rho) {
			ext.Score = rho
		}
	}

	if w*h >= payload.Bits {
		bits := make([]byte, payload.Bits)
		for i := range bits {
			o := img.PixOffset(i%w, i/w)
			bits[i] = img.Pix[o] & 1
		}
		ext.Payload = payload.FromBits(bits)
	}

	return ext, nil
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
