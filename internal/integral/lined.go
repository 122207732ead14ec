package integral

// CreateLinedImage builds a lined integral image with (width+1) x (height+1)
// entries: row 0 and column 0 are zero and
//
//	target[y+1][x+1] = target[y][x+1] + target[y+1][x] - target[y][x] + source[y][x]
//
// so any rectangle sum needs exactly four lookups and no boundary branches.
func CreateLinedImage[T Element, A Accumulator](source []T, target []A, width, height, channels, sourcePaddingElements, targetPaddingElements int) {
	createLined(source, target, width, height, channels, sourcePaddingElements, targetPaddingElements, false)
}

// CreateLinedImageSquared builds a lined integral image of the squared
// source samples.
func CreateLinedImageSquared[T Element, A Accumulator](source []T, target []A, width, height, channels, sourcePaddingElements, targetPaddingElements int) {
	createLined(source, target, width, height, channels, sourcePaddingElements, targetPaddingElements, true)
}

func createLined[T Element, A Accumulator](source []T, target []A, width, height, channels, sourcePaddingElements, targetPaddingElements int, squared bool) {
	sourceStride := width*channels + sourcePaddingElements
	targetStride := LinedStride(width, channels, targetPaddingElements)
	lineElements := (width + 1) * channels

	clear(target[:lineElements])

	rowSum := make([]A, channels)
	for y := range height {
		src := source[y*sourceStride:]
		prev := target[y*targetStride:]
		dst := target[(y+1)*targetStride:]
		clear(rowSum)
		clear(dst[:channels])

		for x := range width {
			s := x * channels
			t := s + channels
			for c := range channels {
				v := A(src[s+c])
				if squared {
					v *= v
				}
				rowSum[c] += v
				dst[t+c] = prev[t+c] + rowSum[c]
			}
		}
	}
}

// CreateLinedImageAndSquaredJoined builds the lined integral image and the
// lined squared integral image into one table. Every entry holds channels
// sums followed by channels squared sums, so a row has
// (width+1)*2*channels elements plus padding.
func CreateLinedImageAndSquaredJoined[T Element, A Accumulator](source []T, target []A, width, height, channels, sourcePaddingElements, targetPaddingElements int) {
	sourceStride := width*channels + sourcePaddingElements
	entry := 2 * channels
	targetStride := (width+1)*entry + targetPaddingElements

	clear(target[:(width+1)*entry])

	rowSum := make([]A, entry)
	for y := range height {
		src := source[y*sourceStride:]
		prev := target[y*targetStride:]
		dst := target[(y+1)*targetStride:]
		clear(rowSum)
		clear(dst[:entry])

		for x := range width {
			s := x * channels
			t := (x + 1) * entry
			for c := range channels {
				v := A(src[s+c])
				rowSum[c] += v
				rowSum[channels+c] += v * v
				dst[t+c] = prev[t+c] + rowSum[c]
				dst[t+channels+c] = prev[t+channels+c] + rowSum[channels+c]
			}
		}
	}
}

// CreateLinedImageAndSquaredSeparate builds the lined integral image and the
// lined squared integral image in one pass over the source.
func CreateLinedImageAndSquaredSeparate[T Element, A Accumulator, S Accumulator](source []T, integral []A, squared []S, width, height, channels, sourcePaddingElements, integralPaddingElements, squaredPaddingElements int) {
	sourceStride := width*channels + sourcePaddingElements
	integralStride := LinedStride(width, channels, integralPaddingElements)
	squaredStride := LinedStride(width, channels, squaredPaddingElements)
	lineElements := (width + 1) * channels

	clear(integral[:lineElements])
	clear(squared[:lineElements])

	rowSum := make([]A, channels)
	rowSquared := make([]S, channels)
	for y := range height {
		src := source[y*sourceStride:]
		prevI := integral[y*integralStride:]
		dstI := integral[(y+1)*integralStride:]
		prevS := squared[y*squaredStride:]
		dstS := squared[(y+1)*squaredStride:]
		clear(rowSum)
		clear(rowSquared)
		clear(dstI[:channels])
		clear(dstS[:channels])

		for x := range width {
			s := x * channels
			t := s + channels
			for c := range channels {
				rowSum[c] += A(src[s+c])
				q := S(src[s+c])
				rowSquared[c] += q * q
				dstI[t+c] = prevI[t+c] + rowSum[c]
				dstS[t+c] = prevS[t+c] + rowSquared[c]
			}
		}
	}
}
