package integral

// CreateBorderedImage builds a lined integral image surrounded by border
// extra entries on every side, (width+1+2*border) x (height+1+2*border) in
// total. The table equals the lined integral image of the source extended by
// zeros: the top and left border are zero, the right and bottom border repeat
// the last lined value of their row or column. Windows reaching past the
// image therefore return the sum of their in-image part.
//
// The lined entry (x, y) is found at (x+border, y+border).
func CreateBorderedImage[T Element, A Accumulator](source []T, target []A, width, height, channels, border, sourcePaddingElements, targetPaddingElements int) {
	createBordered(source, target, width, height, channels, border, sourcePaddingElements, targetPaddingElements, false)
}

// CreateBorderedImageSquared is the squared analogue of CreateBorderedImage.
func CreateBorderedImageSquared[T Element, A Accumulator](source []T, target []A, width, height, channels, border, sourcePaddingElements, targetPaddingElements int) {
	createBordered(source, target, width, height, channels, border, sourcePaddingElements, targetPaddingElements, true)
}

func createBordered[T Element, A Accumulator](source []T, target []A, width, height, channels, border, sourcePaddingElements, targetPaddingElements int, squared bool) {
	sourceStride := width*channels + sourcePaddingElements
	targetStride := BorderedStride(width, channels, border, targetPaddingElements)
	rowElements := (width + 1 + 2*border) * channels
	leftElements := border * channels
	lastLined := (border + width) * channels

	// top border and lined row 0
	for y := 0; y <= border; y++ {
		clear(target[y*targetStride : y*targetStride+rowElements])
	}

	rowSum := make([]A, channels)
	for y := range height {
		src := source[y*sourceStride:]
		prev := target[(border+y)*targetStride:]
		dst := target[(border+y+1)*targetStride:]
		clear(rowSum)
		clear(dst[:leftElements+channels])

		for x := range width {
			s := x * channels
			t := leftElements + s + channels
			for c := range channels {
				v := A(src[s+c])
				if squared {
					v *= v
				}
				rowSum[c] += v
				dst[t+c] = prev[t+c] + rowSum[c]
			}
		}

		for t := lastLined + channels; t < rowElements; t += channels {
			copy(dst[t:t+channels], dst[lastLined:lastLined+channels])
		}
	}

	// bottom border
	last := target[(border+height)*targetStride : (border+height)*targetStride+rowElements]
	for y := border + height + 1; y < height+1+2*border; y++ {
		copy(target[y*targetStride:y*targetStride+rowElements], last)
	}
}

// CreateBorderedImageMirror builds a bordered integral image of the source
// extended by mirroring (see MirrorIndex) instead of zeros. The first row and
// the first column are zero. The border must not exceed width or height.
func CreateBorderedImageMirror[T Element, A Accumulator](source []T, target []A, width, height, channels, border, sourcePaddingElements, targetPaddingElements int) {
	createBorderedMirror(source, target, width, height, channels, border, sourcePaddingElements, targetPaddingElements, false)
}

// CreateBorderedImageSquaredMirror is the squared analogue of
// CreateBorderedImageMirror.
func CreateBorderedImageSquaredMirror[T Element, A Accumulator](source []T, target []A, width, height, channels, border, sourcePaddingElements, targetPaddingElements int) {
	createBorderedMirror(source, target, width, height, channels, border, sourcePaddingElements, targetPaddingElements, true)
}

func createBorderedMirror[T Element, A Accumulator](source []T, target []A, width, height, channels, border, sourcePaddingElements, targetPaddingElements int, squared bool) {
	sourceStride := width*channels + sourcePaddingElements
	targetStride := BorderedStride(width, channels, border, targetPaddingElements)
	extendedWidth := width + 2*border
	extendedHeight := height + 2*border

	clear(target[:(extendedWidth+1)*channels])

	rowSum := make([]A, channels)
	for y := range extendedHeight {
		src := source[MirrorIndex(y-border, height)*sourceStride:]
		prev := target[y*targetStride:]
		dst := target[(y+1)*targetStride:]
		clear(rowSum)
		clear(dst[:channels])

		for x := range extendedWidth {
			s := MirrorIndex(x-border, width) * channels
			t := (x + 1) * channels
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

// BorderedIntegralSum returns the sum of one channel over the window with
// top-left corner (left, top) in source coordinates. The window may extend
// up to border pixels past the image on every side.
func BorderedIntegralSum[A Accumulator](table []A, tableStrideElements, channels, channel, border, left, top, width, height int) A {
	return LinedIntegralSum(table, tableStrideElements, channels, channel, left+border, top+border, width, height)
}
