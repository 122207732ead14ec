package image

import (
	"bytes"
	"errors"
)

// Common errors for frame operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidPadding is returned when the padding is negative.
	ErrInvalidPadding = errors.New("image: invalid padding")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside frame bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrIncompatible is returned when two frames differ in size or format.
	ErrIncompatible = errors.New("image: incompatible frames")
)

// Frame is a 2D buffer of interleaved 8-bit channels with an optional number
// of padding bytes at the end of every row.
//
// Thread safety: Frame is safe for concurrent reads. Concurrent writes are
// safe only when they target disjoint pixels.
type Frame struct {
	data    []byte
	width   int
	height  int
	stride  int
	padding int
	format  Format
}

// NewFrame creates a zeroed frame without padding.
func NewFrame(width, height int, format Format) (*Frame, error) {
	return NewFrameWithPadding(width, height, format, 0)
}

// NewFrameWithPadding creates a zeroed frame whose rows are followed by
// paddingElements bytes.
func NewFrameWithPadding(width, height int, format Format, paddingElements int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if paddingElements < 0 {
		return nil, ErrInvalidPadding
	}

	stride := format.RowBytes(width) + paddingElements
	return &Frame{
		data:    make([]byte, stride*height),
		width:   width,
		height:  height,
		stride:  stride,
		padding: paddingElements,
		format:  format,
	}, nil
}

// FromRaw wraps existing data without copying.
// The caller must keep data alive for the lifetime of the frame.
func FromRaw(data []byte, width, height int, format Format, paddingElements int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if paddingElements < 0 {
		return nil, ErrInvalidPadding
	}

	stride := format.RowBytes(width) + paddingElements
	if len(data) < stride*height {
		return nil, ErrDataTooSmall
	}

	return &Frame{
		data:    data[:stride*height],
		width:   width,
		height:  height,
		stride:  stride,
		padding: paddingElements,
		format:  format,
	}, nil
}

// Clone creates a deep copy of the frame, padding included.
func (f *Frame) Clone() *Frame {
	data := make([]byte, len(f.data))
	copy(data, f.data)

	return &Frame{
		data:    data,
		width:   f.width,
		height:  f.height,
		stride:  f.stride,
		padding: f.padding,
		format:  f.format,
	}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Stride returns the number of bytes per row, padding included.
func (f *Frame) Stride() int { return f.stride }

// PaddingElements returns the number of padding bytes after each row.
func (f *Frame) PaddingElements() int { return f.padding }

// Format returns the pixel format.
func (f *Frame) Format() Format { return f.format }

// Channels returns the number of channels per pixel.
func (f *Frame) Channels() int { return f.format.Channels() }

// Pixels returns width*height.
func (f *Frame) Pixels() int { return f.width * f.height }

// Data returns the raw byte slice, padding included.
func (f *Frame) Data() []byte { return f.data }

// Row returns the pixel bytes of row y without padding.
// Returns nil if y is out of bounds.
func (f *Frame) Row(y int) []byte {
	if y < 0 || y >= f.height {
		return nil
	}
	start := y * f.stride
	return f.data[start : start+f.format.RowBytes(f.width)]
}

// PixelOffset returns the byte offset of pixel (x, y), or -1 if out of bounds.
func (f *Frame) PixelOffset(x, y int) int {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return -1
	}
	return y*f.stride + x*f.format.BytesPerPixel()
}

// Pixel returns the channel bytes of pixel (x, y).
// The slice aliases the frame. Returns nil if out of bounds.
func (f *Frame) Pixel(x, y int) []byte {
	offset := f.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	return f.data[offset : offset+f.format.BytesPerPixel()]
}

// SetPixel copies the channel bytes of pixel into (x, y).
func (f *Frame) SetPixel(x, y int, pixel []byte) error {
	offset := f.PixelOffset(x, y)
	if offset < 0 {
		return ErrOutOfBounds
	}
	copy(f.data[offset:offset+f.format.BytesPerPixel()], pixel)
	return nil
}

// At returns channel c of pixel (x, y). The coordinates must be in bounds.
func (f *Frame) At(x, y, c int) uint8 {
	return f.data[y*f.stride+x*f.format.BytesPerPixel()+c]
}

// Fill sets every channel of every pixel to the values of pixel, leaving
// padding untouched.
func (f *Frame) Fill(pixel ...byte) {
	bpp := f.format.BytesPerPixel()
	for y := range f.height {
		row := f.Row(y)
		for x := 0; x < len(row); x += bpp {
			copy(row[x:x+bpp], pixel)
		}
	}
}

// SetValue sets every byte of the pixel area to v, leaving padding untouched.
func (f *Frame) SetValue(v byte) {
	for y := range f.height {
		row := f.Row(y)
		for i := range row {
			row[i] = v
		}
	}
}

// Clear sets all bytes to zero, padding included.
func (f *Frame) Clear() {
	clear(f.data)
}

// IsCompatible reports whether other has the same size and format.
func (f *Frame) IsCompatible(other *Frame) bool {
	return other != nil && f.width == other.width && f.height == other.height && f.format == other.format
}

// SameSize reports whether other has the same pixel dimensions.
func (f *Frame) SameSize(other *Frame) bool {
	return other != nil && f.width == other.width && f.height == other.height
}

// Equal reports whether both frames hold identical bytes, padding included.
func (f *Frame) Equal(other *Frame) bool {
	if !f.IsCompatible(other) || f.stride != other.stride {
		return false
	}
	return bytes.Equal(f.data, other.data)
}

// EqualPixels reports whether both frames hold identical pixel values,
// ignoring padding.
func (f *Frame) EqualPixels(other *Frame) bool {
	if !f.IsCompatible(other) {
		return false
	}
	for y := range f.height {
		if !bytes.Equal(f.Row(y), other.Row(y)) {
			return false
		}
	}
	return true
}
