package image

import "image"

// DefaultMaskValue marks unknown pixels unless configured otherwise.
const DefaultMaskValue uint8 = 0x00

// ValidValue returns the value marking valid pixels for a given mask value.
func ValidValue(maskValue uint8) uint8 {
	return 0xFF - maskValue
}

// NewMask creates a single channel mask filled with value.
func NewMask(width, height, paddingElements int, value uint8) (*Frame, error) {
	mask, err := NewFrameWithPadding(width, height, FormatY8, paddingElements)
	if err != nil {
		return nil, err
	}
	mask.SetValue(value)
	return mask, nil
}

// IsMask reports whether f can be used as a mask.
func IsMask(f *Frame) bool {
	return f != nil && f.format == FormatY8
}

// MaskAt returns the mask byte at (x, y). The coordinates must be in bounds.
func (f *Frame) MaskAt(x, y int) uint8 {
	return f.data[y*f.stride+x]
}

// SetMask sets the mask byte at (x, y). The coordinates must be in bounds.
func (f *Frame) SetMask(x, y int, v uint8) {
	f.data[y*f.stride+x] = v
}

// CountMaskPixels returns the number of pixels holding value.
func CountMaskPixels(mask *Frame, value uint8) int {
	count := 0
	for y := range mask.height {
		for _, v := range mask.Row(y) {
			if v == value {
				count++
			}
		}
	}
	return count
}

// MaskBoundingBox returns the smallest rectangle containing every pixel
// holding value. ok is false if no pixel holds value.
func MaskBoundingBox(mask *Frame, value uint8) (r image.Rectangle, ok bool) {
	left, top := mask.width, mask.height
	right, bottom := -1, -1

	for y := range mask.height {
		row := mask.Row(y)
		for x, v := range row {
			if v != value {
				continue
			}
			left = min(left, x)
			right = max(right, x)
			top = min(top, y)
			bottom = max(bottom, y)
		}
	}

	if right < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(left, top, right+1, bottom+1), true
}

// IsBorderPixel reports whether the mask pixel (x, y) holds maskValue and has
// at least one 8-neighbor that does not.
func IsBorderPixel(mask *Frame, x, y int, maskValue uint8) bool {
	if mask.MaskAt(x, y) != maskValue {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= mask.height {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= mask.width || (dx == 0 && dy == 0) {
				continue
			}
			if mask.MaskAt(nx, ny) != maskValue {
				return true
			}
		}
	}
	return false
}
