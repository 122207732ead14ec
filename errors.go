package inpaint

import (
	"errors"
	"fmt"

	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/mapping"
	"github.com/gogpu/inpaint/internal/patchmatch"
	"github.com/gogpu/inpaint/internal/shrink"
)

var (
	// ErrNilFrame is returned when the frame or the mask is nil.
	ErrNilFrame = errors.New("inpaint: nil frame or mask")

	// ErrDimensionMismatch is returned when frame and mask differ in size.
	ErrDimensionMismatch = errors.New("inpaint: frame and mask dimensions differ")

	// ErrInvalidMaskFormat is returned when the mask is not a single channel
	// frame.
	ErrInvalidMaskFormat = errors.New("inpaint: mask must be single channel")

	// ErrNoValidPixels is returned when unknown pixels remain but the mask
	// holds no valid pixel to fill them from.
	ErrNoValidPixels = errors.New("inpaint: mask has no valid pixel")

	// ErrInvalidChannel is returned when a channel index is outside the
	// frame's channels.
	ErrInvalidChannel = errors.New("inpaint: invalid channel")

	// ErrOverlappingWindows is returned when PooledVariance gets windows
	// sharing pixels.
	ErrOverlappingWindows = errors.New("inpaint: windows overlap")
)

func validate(frame, mask *Frame) error {
	if frame == nil || mask == nil {
		return ErrNilFrame
	}
	if !image.IsMask(mask) {
		return ErrInvalidMaskFormat
	}
	if !frame.SameSize(mask) {
		return fmt.Errorf("%w: frame %dx%d, mask %dx%d", ErrDimensionMismatch,
			frame.Width(), frame.Height(), mask.Width(), mask.Height())
	}
	return nil
}

// wrapError maps errors of the internal packages onto the public sentinels
// while keeping the original in the chain.
func wrapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, shrink.ErrNoProgress), errors.Is(err, patchmatch.ErrNoValidPixels):
		return fmt.Errorf("%s: %w: %w", op, ErrNoValidPixels, err)
	case errors.Is(err, shrink.ErrInvalidMask), errors.Is(err, patchmatch.ErrInvalidMask):
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidMaskFormat, err)
	case errors.Is(err, image.ErrIncompatible), errors.Is(err, mapping.ErrIncompatible):
		return fmt.Errorf("%s: %w: %w", op, ErrDimensionMismatch, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
