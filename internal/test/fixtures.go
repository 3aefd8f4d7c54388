package test

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// GradientPNG renders a width x height PNG with smooth per-channel
// gradients, a carrier with enough texture for correlation tests.
func GradientPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: uint8(((x + y) * 255) / (width + height)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

// SineWAV renders n samples of a freq Hz tone as a mono 16-bit PCM WAV at
// 44.1 kHz.
func SineWAV(t *testing.T, n int, freq float64) []byte {
	t.Helper()

	const (
		sampleRate = 44100
		amplitude  = 12000
	)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, n),
		SourceBitDepth: 16,
	}
	for i := 0; i < n; i++ {
		buf.Data[i] = int(amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}

	var ws fixtureWriteSeeker
	enc := wav.NewEncoder(&ws, sampleRate, 16, 1, 1)
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())

	return ws.buf
}

// FlipImageLSB re-encodes the PNG with the red least-significant bit of its
// first pixel inverted, the smallest edit that corrupts an LSB-carried
// payload while leaving the rest of the image untouched.
func FlipImageLSB(t *testing.T, pngBytes []byte) []byte {
	t.Helper()

	src, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)

	img := image.NewNRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	img.Pix[0] ^= 1

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

// FlipAudioLSB re-encodes the WAV with the least-significant bit of its
// first sample inverted.
func FlipAudioLSB(t *testing.T, wavBytes []byte) []byte {
	t.Helper()

	dec := wav.NewDecoder(bytes.NewReader(wavBytes))
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	buf.Data[0] ^= 1

	var ws fixtureWriteSeeker
	enc := wav.NewEncoder(&ws, buf.Format.SampleRate, int(dec.BitDepth), buf.Format.NumChannels, 1)
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())

	return ws.buf
}

// fixtureWriteSeeker satisfies the wav encoder's io.WriteSeeker in memory.
type fixtureWriteSeeker struct {
	buf []byte
	pos int
}

func (w *fixtureWriteSeeker) Write(p []byte) (int, error) {
	if need := w.pos + len(p); need > len(w.buf) {
		grown := make([]byte, need)
		copy(grown, w.buf)
		w.buf = grown
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return len(p), nil
}

func (w *fixtureWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var next int
	switch whence {
	case io.SeekStart:
		next = int(offset)
	case io.SeekCurrent:
		next = w.pos + int(offset)
	case io.SeekEnd:
		next = len(w.buf) + int(offset)
	default:
		return 0, io.ErrUnexpectedEOF
	}
	if next < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	w.pos = next
	return int64(next), nil
}
