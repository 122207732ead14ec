// Package integral builds summed-area tables ("integral images") over 2D
// multi-channel rasters and answers rectangle sum and variance queries with
// four lookups per table.
//
// All functions operate on plain slices with explicit row padding, given in
// elements. Sources and targets are interleaved by channel. Preconditions
// (width, height and channels at least 1, buffers large enough, border not
// larger than the image for mirrored variants) are caller contracts: a
// violation panics with an index error, it is not reported as an error value.
//
// The caller chooses an accumulator wide enough for the largest sum that can
// occur, for example uint32 sums of 8-bit images up to 2^24 pixels, or uint64
// for squared sums.
//
// Table layouts:
//
//	plain:    width x height, inclusive prefix sums
//	lined:    (width+1) x (height+1), row 0 and column 0 are zero
//	bordered: (width+1+2*border) x (height+1+2*border)
package integral

// Element is a source sample type.
type Element interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~float32 | ~float64
}

// Accumulator is a table value type.
type Accumulator interface {
	~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

// MirrorIndex maps an index outside [0, n) back into it by reflecting at the
// boundary, repeating the edge sample: -1 maps to 0 and n maps to n-1.
// The index must be in [-n, 2n).
func MirrorIndex(i, n int) int {
	switch {
	case i < 0:
		return -i - 1
	case i >= n:
		return 2*n - i - 1
	default:
		return i
	}
}

// LinedStride returns the number of elements per row of a lined table,
// padding included.
func LinedStride(width, channels, paddingElements int) int {
	return (width+1)*channels + paddingElements
}

// BorderedStride returns the number of elements per row of a bordered table,
// padding included.
func BorderedStride(width, channels, border, paddingElements int) int {
	return (width+1+2*border)*channels + paddingElements
}

// CreateImage builds a plain integral image of the same size as the source:
// target[y][x][c] is the sum of source[y'][x'][c] for all y' <= y, x' <= x.
func CreateImage[T Element, A Accumulator](source []T, target []A, width, height, channels, sourcePaddingElements, targetPaddingElements int) {
	sourceStride := width*channels + sourcePaddingElements
	targetStride := width*channels + targetPaddingElements
	rowSum := make([]A, channels)

	// first row
	for i := 0; i < width*channels; i += channels {
		for c := range channels {
			rowSum[c] += A(source[i+c])
			target[i+c] = rowSum[c]
		}
	}

	for y := 1; y < height; y++ {
		src := source[y*sourceStride:]
		prev := target[(y-1)*targetStride:]
		dst := target[y*targetStride:]
		clear(rowSum)

		for i := 0; i < width*channels; i += channels {
			for c := range channels {
				rowSum[c] += A(src[i+c])
				dst[i+c] = prev[i+c] + rowSum[c]
			}
		}
	}
}
