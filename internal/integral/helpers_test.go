package integral

import "math/rand/v2"

// Test helper functions shared across integral tests.

const paddingSentinel = 0xA5

// randomSource creates an interleaved 8-bit source with padding bytes set to
// paddingSentinel.
func randomSource(rng *rand.Rand, width, height, channels, padding int) []uint8 {
	stride := width*channels + padding
	source := make([]uint8, stride*height)
	for y := range height {
		row := source[y*stride : (y+1)*stride]
		for i := range row {
			if i < width*channels {
				row[i] = uint8(rng.IntN(256))
			} else {
				row[i] = paddingSentinel
			}
		}
	}
	return source
}

// extension maps a possibly outside index into [0, n); ok is false when the
// sample counts as zero.
type extension func(i, n int) (int, bool)

func zeroExtension(i, n int) (int, bool) {
	return i, i >= 0 && i < n
}

func mirrorExtension(i, n int) (int, bool) {
	return MirrorIndex(i, n), true
}

// bruteSum sums one channel of source over a window by visiting every pixel.
func bruteSum(source []uint8, width, height, channels, padding, channel, left, top, w, h int, squared bool, ext extension) float64 {
	stride := width*channels + padding
	var sum float64
	for y := top; y < top+h; y++ {
		sy, okY := ext(y, height)
		if !okY {
			continue
		}
		for x := left; x < left+w; x++ {
			sx, okX := ext(x, width)
			if !okX {
				continue
			}
			v := float64(source[sy*stride+sx*channels+channel])
			if squared {
				v *= v
			}
			sum += v
		}
	}
	return sum
}

// windowValues returns one channel of source over a window as float64 values.
func windowValues(source []uint8, width, channels, padding, channel, left, top, w, h int) []float64 {
	stride := width*channels + padding
	values := make([]float64, 0, w*h)
	for y := top; y < top+h; y++ {
		for x := left; x < left+w; x++ {
			values = append(values, float64(source[y*stride+x*channels+channel]))
		}
	}
	return values
}

// fillTarget sets every element of a table to v so tests can detect writes
// into padding.
func fillTarget[A Accumulator](target []A, v A) {
	for i := range target {
		target[i] = v
	}
}

// checkPadding reports the first padding element that no longer holds v.
func checkPadding[A Accumulator](target []A, rowElements, stride, rows int, v A) (row, index int, ok bool) {
	for y := range rows {
		for i := rowElements; i < stride; i++ {
			if target[y*stride+i] != v {
				return y, i, false
			}
		}
	}
	return 0, 0, true
}
