// Package image provides the strided frame and mask buffers shared by the
// inpainting packages.
//
// A Frame stores 8-bit interleaved channels in a contiguous byte slice. Each
// row may be followed by padding bytes which no algorithm ever touches, so
// callers can embed frames in larger allocations.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatY8 is 8-bit grayscale (1 channel).
	FormatY8 Format = iota

	// FormatYA8 is 8-bit grayscale with alpha (2 channels).
	FormatYA8

	// FormatRGB8 is 24-bit RGB (3 channels).
	FormatRGB8

	// FormatRGBA8 is 32-bit RGBA (4 channels).
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of interleaved 8-bit channels.
	Channels int

	// HasAlpha indicates if the last channel is alpha.
	HasAlpha bool

	// IsGrayscale indicates if this is a grayscale format.
	IsGrayscale bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatY8:    {Channels: 1, IsGrayscale: true},
	FormatYA8:   {Channels: 2, HasAlpha: true, IsGrayscale: true},
	FormatRGB8:  {Channels: 3},
	FormatRGBA8: {Channels: 4, HasAlpha: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Channels returns the number of channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// BytesPerPixel returns the number of bytes per pixel for this format.
// All formats use one byte per channel.
func (f Format) BytesPerPixel() int {
	return f.Info().Channels
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsGrayscale returns true if this is a grayscale format.
func (f Format) IsGrayscale() bool {
	return f.Info().IsGrayscale
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatY8:
		return "Y8"
	case FormatYA8:
		return "YA8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width,
// not counting padding.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// FormatForChannels returns the format with the given channel count.
// ok is false if no such format exists.
func FormatForChannels(channels int) (f Format, ok bool) {
	switch channels {
	case 1:
		return FormatY8, true
	case 2:
		return FormatYA8, true
	case 3:
		return FormatRGB8, true
	case 4:
		return FormatRGBA8, true
	default:
		return 0, false
	}
}
