package imagewm

import "math"

// 8x8 orthonormal DCT-II / DCT-III pair with a precomputed cosine table,
// the JPEG-style kernel. gonum's fourier package only ships a 1-D forward
// DCT without its inverse, so the block transform is built directly.

const blockSize = 8

var (
	dctCos   [blockSize][blockSize]float64
	dctScale [blockSize]float64
)

func init() {
	for u := 0; u < blockSize; u++ {
		for x := 0; x < blockSize; x++ {
			dctCos[u][x] = math.Cos((2*float64(x) + 1) * float64(u) * math.Pi / (2 * blockSize))
		}
	}

	dctScale[0] = math.Sqrt(1.0 / blockSize)
	for u := 1; u < blockSize; u++ {
		dctScale[u] = math.Sqrt(2.0 / blockSize)
	}
}

type block [blockSize][blockSize]float64

// dct2 computes the 2-D orthonormal DCT-II of a block.
func dct2(in *block) *block {
	var tmp, out block

	// rows
	for x := 0; x < blockSize; x++ {
		for u := 0; u < blockSize; u++ {
			var sum float64
			for y := 0; y < blockSize; y++ {
				sum += in[x][y] * dctCos[u][y]
			}
			tmp[x][u] = dctScale[u] * sum
		}
	}

	// columns
	for v := 0; v < blockSize; v++ {
		for u := 0; u < blockSize; u++ {
			var sum float64
			for x := 0; x < blockSize; x++ {
				sum += tmp[x][v] * dctCos[u][x]
			}
			out[u][v] = dctScale[u] * sum
		}
	}

	return &out
}

// idct2 inverts dct2 (2-D orthonormal DCT-III).
func idct2(in *block) *block {
	var tmp, out block

	// columns
	for v := 0; v < blockSize; v++ {
		for x := 0; x < blockSize; x++ {
			var sum float64
			for u := 0; u < blockSize; u++ {
				sum += dctScale[u] * in[u][v] * dctCos[u][x]
			}
			tmp[x][v] = sum
		}
	}

	// rows
	for x := 0; x < blockSize; x++ {
		for y := 0; y < blockSize; y++ {
			var sum float64
			for v := 0; v < blockSize; v++ {
				sum += dctScale[v] * tmp[x][v] * dctCos[v][y]
			}
			out[x][y] = sum
		}
	}

	return &out
}
