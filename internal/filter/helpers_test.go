package filter

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/inpaint/internal/image"
)

// Test helper functions shared across filter tests.

// randomFrame creates a frame with random pixels and padding bytes set to 0xA5.
func randomFrame(t *testing.T, seed uint64, width, height int, format image.Format, padding int) *image.Frame {
	t.Helper()
	f, err := image.NewFrameWithPadding(width, height, format, padding)
	if err != nil {
		t.Fatalf("NewFrameWithPadding: %v", err)
	}
	rng := rand.New(rand.NewPCG(seed, seed+1))
	data := f.Data()
	for i := range data {
		data[i] = 0xA5
	}
	for y := range height {
		row := f.Row(y)
		for i := range row {
			row[i] = uint8(rng.IntN(256))
		}
	}
	return f
}

// validMask creates a mask without unknown pixels for frame, with 0x00 as the
// mask value.
func validMask(t *testing.T, frame *image.Frame) *image.Frame {
	t.Helper()
	mask, err := image.NewMask(frame.Width(), frame.Height(), 0, 0xFF)
	if err != nil {
		t.Fatalf("NewMask: %v", err)
	}
	return mask
}
