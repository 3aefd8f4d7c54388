// Package audiowm watermarks PCM WAV audio with a mid-band FFT bias and a
// sample LSB payload layer.
//
// Layer 1 (statistical): the real spectrum of the carrier channel is shifted
// in the [n/8, n/4) frequency band by ±alpha·peak following a keyed sign
// mask; detection correlates the band against the mask.
//
// Layer 2 (payload): the 240 payload bits ride the LSBs of the first 240
// carrier-channel samples.
//
// Only uncompressed PCM WAV is supported; lossy codecs destroy both
// channels. For multi-channel files channel 0 is the carrier and the
// remaining channels pass through untouched.
package audiowm

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/lyralabs/watermark-service/internal/watermark"
	"github.com/lyralabs/watermark-service/internal/watermark/keyring"
	"github.com/lyralabs/watermark-service/internal/watermark/payload"
)

const (
	// alphaScale maps request strength [0,1] onto the spectral
	// perturbation, relative to the clip's peak amplitude.
	alphaScale = 0.01

	fftContext = "audio/fft"
)

// Codec implements watermark.Codec for PCM WAV audio.
type Codec struct {
	rhoThreshold float64
}

// New builds an audio codec with the given correlation detection threshold.
func New(rhoThreshold float64) *Codec {
	return &Codec{rhoThreshold: rhoThreshold}
}

func (c *Codec) Method() string {
	return "fft_lsb_dual_layer"
}

func (c *Codec) Threshold() float64 {
	return c.rhoThreshold
}

func decodePCM(raw []byte) (*audio.IntBuffer, int, error) {
	if !bytes.HasPrefix(raw, []byte("RIFF")) || len(raw) < 12 || !bytes.Equal(raw[8:12], []byte("WAVE")) {
		return nil, 0, fmt.Errorf("%w: content is not a WAV file", watermark.ErrUnsupportedEncoding)
	}

	dec := wav.NewDecoder(bytes.NewReader(raw))
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: malformed WAV container", watermark.ErrUnsupportedEncoding)
	}
	if dec.WavAudioFormat != 1 {
		return nil, 0, fmt.Errorf("%w: WAV format %d is compressed, only PCM is supported", watermark.ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", watermark.ErrUnsupportedEncoding, err)
	}

	return buf, int(dec.BitDepth), nil
}

// carrier extracts channel 0 of the interleaved stream as float64.
func carrier(buf *audio.IntBuffer) []float64 {
	ch := buf.Format.NumChannels
	if ch < 1 {
		ch = 1
	}

	n := len(buf.Data) / ch
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = float64(buf.Data[i*ch])
	}
	return out
}

// band returns the perturbed frequency range [lo, hi) of a one-sided
// spectrum with nFreqs bins.
func band(nFreqs int) (int, int) {
	return nFreqs / 8, nFreqs / 4
}

// Embed perturbs the carrier channel's mid-band spectrum and writes the
// payload into the first 240 sample LSBs. Clips shorter than 240 carrier
// samples fail fast.
func (c *Codec) Embed(raw []byte, pl []byte, key keyring.Key, strength float64) ([]byte, error) {
	buf, bitDepth, err := decodePCM(raw)
	if err != nil {
		return nil, err
	}

	mono := carrier(buf)
	n := len(mono)
	if n < payload.Bits {
		return nil, fmt.Errorf("%w: clip has %d samples, payload needs %d", watermark.ErrContentTooSmall, n, payload.Bits)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, mono)

	lo, hi := band(len(coeffs))
	mask := key.PRF(fftContext).SignMask(hi - lo)

	peak := 1.0
	for _, v := range mono {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	alpha := strength * alphaScale
	for i := lo; i < hi; i++ {
		coeffs[i] += complex(alpha*peak*mask[i-lo], 0)
	}

	rec := fft.Sequence(nil, coeffs)

	// gonum's inverse transform is unnormalized.
	maxV := float64(int(1)<<(uint(bitDepth)-1) - 1)
	minV := -float64(int(1) << (uint(bitDepth) - 1))
	ch := buf.Format.NumChannels
	if ch < 1 {
		ch = 1
	}
	for i := 0; i < n; i++ {
		v := rec[i] / float64(n)
		buf.Data[i*ch] = int(math.Round(math.Max(minV, math.Min(maxV, v))))
	}

	bits := payload.ToBits(pl)
	for i, bit := range bits {
		buf.Data[i*ch] = buf.Data[i*ch]&^1 | int(bit)
	}

	return encodeWAV(buf, bitDepth)
}

// Extract correlates the carrier band against the keyed mask and reads back
// the sample LSB payload. The reported score is |rho|: the spectral shift
// is sign-ambiguous after clipping, magnitude carries the evidence.
func (c *Codec) Extract(raw []byte, key keyring.Key) (watermark.Extraction, error) {
	buf, _, err := decodePCM(raw)
	if err != nil {
		return watermark.Extraction{}, err
	}

	mono := carrier(buf)
	n := len(mono)
	ext := watermark.Extraction{Units: n}
	if n == 0 {
		return ext, nil
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, mono)

	lo, hi := band(len(coeffs))
	if hi-lo > 1 {
		mask := key.PRF(fftContext).SignMask(hi - lo)

		observed := make([]float64, hi-lo)
		for i := lo; i < hi; i++ {
			observed[i-lo] = real(coeffs[i])
		}

		rho := stat.Correlation(observed, mask, nil)
		if !math.IsNaN(rho) {
			ext.Score = math.Abs(rho)
		}
	}

	if n >= payload.Bits {
		ch := buf.Format.NumChannels
		if ch < 1 {
			ch = 1
		}
		bits := make([]byte, payload.Bits)
		for i := range bits {
			bits[i] = byte(buf.Data[i*ch] & 1)
		}
		ext.Payload = payload.FromBits(bits)
	}

	return ext, nil
}

func encodeWAV(buf *audio.IntBuffer, bitDepth int) ([]byte, error) {
	var ws writeSeeker
	enc := wav.NewEncoder(&ws, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("encode watermarked wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalize watermarked wav: %w", err)
	}
	return ws.buf, nil
}
