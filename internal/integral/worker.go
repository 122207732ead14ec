package integral

import "github.com/gogpu/inpaint/internal/parallel"

// CreateLinedImageWorker builds the same table as CreateLinedImage in two
// passes that are each parallel on pool: a row pass storing horizontal prefix
// sums, then a column pass accumulating them top to bottom.
func CreateLinedImageWorker[T Element, A Accumulator](source []T, target []A, width, height, channels, sourcePaddingElements, targetPaddingElements int, pool *parallel.WorkerPool) {
	createLinedWorker(source, target, width, height, channels, sourcePaddingElements, targetPaddingElements, false, pool)
}

// CreateLinedImageSquaredWorker is the squared analogue of
// CreateLinedImageWorker.
func CreateLinedImageSquaredWorker[T Element, A Accumulator](source []T, target []A, width, height, channels, sourcePaddingElements, targetPaddingElements int, pool *parallel.WorkerPool) {
	createLinedWorker(source, target, width, height, channels, sourcePaddingElements, targetPaddingElements, true, pool)
}

func createLinedWorker[T Element, A Accumulator](source []T, target []A, width, height, channels, sourcePaddingElements, targetPaddingElements int, squared bool, pool *parallel.WorkerPool) {
	if pool.Workers() == 1 {
		createLined(source, target, width, height, channels, sourcePaddingElements, targetPaddingElements, squared)
		return
	}

	sourceStride := width*channels + sourcePaddingElements
	targetStride := LinedStride(width, channels, targetPaddingElements)

	clear(target[:(width+1)*channels])

	parallel.Rows(pool, 0, height, parallel.DefaultMinRows, func(first, count int) {
		rowSum := make([]A, channels)
		for y := first; y < first+count; y++ {
			src := source[y*sourceStride:]
			dst := target[(y+1)*targetStride:]
			clear(rowSum)
			clear(dst[:channels])

			for x := range width {
				s := x * channels
				for c := range channels {
					v := A(src[s+c])
					if squared {
						v *= v
					}
					rowSum[c] += v
					dst[s+channels+c] = rowSum[c]
				}
			}
		}
	})

	// columns are independent in the second pass
	parallel.Rows(pool, channels, width*channels, 64, func(first, count int) {
		for y := 2; y <= height; y++ {
			prev := target[(y-1)*targetStride:]
			dst := target[y*targetStride:]
			for i := first; i < first+count; i++ {
				dst[i] += prev[i]
			}
		}
	})
}
