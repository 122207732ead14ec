package patchmatch

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/inpaint/internal/image"
)

// Test helper functions shared across patchmatch tests.

const paddingSentinel = 0xA5

// newFrame creates a frame whose pixels are set by value and whose padding
// holds paddingSentinel.
func newFrame(t *testing.T, width, height int, format image.Format, padding int, value func(x, y, c int) uint8) *image.Frame {
	t.Helper()
	f, err := image.NewFrameWithPadding(width, height, format, padding)
	if err != nil {
		t.Fatalf("NewFrameWithPadding: %v", err)
	}
	for i := range f.Data() {
		f.Data()[i] = paddingSentinel
	}
	for y := range height {
		for x := range width {
			px := f.Pixel(x, y)
			for c := range px {
				px[c] = value(x, y, c)
			}
		}
	}
	return f
}

// randomFrame creates a frame with uniformly random pixels.
func randomFrame(t *testing.T, seed uint64, width, height int, format image.Format, padding int) *image.Frame {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0))
	return newFrame(t, width, height, format, padding, func(_, _, _ int) uint8 {
		return uint8(rng.IntN(256))
	})
}

// holeMask creates a valid mask with the rectangle [x0, x1) x [y0, y1) set to
// maskValue and padding set to paddingSentinel.
func holeMask(t *testing.T, width, height, padding int, maskValue uint8, x0, y0, x1, y1 int) *image.Frame {
	t.Helper()
	mask, err := image.NewMask(width, height, padding, image.ValidValue(maskValue))
	if err != nil {
		t.Fatalf("NewMask: %v", err)
	}
	for i := range mask.Data() {
		if i%mask.Stride() >= width {
			mask.Data()[i] = paddingSentinel
		}
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mask.SetMask(x, y, maskValue)
		}
	}
	return mask
}

// checkPadding fails the test if any padding byte differs from paddingSentinel.
func checkPadding(t *testing.T, name string, f *image.Frame) {
	t.Helper()
	rowBytes := f.Stride() - f.PaddingElements()
	for i, v := range f.Data() {
		if i%f.Stride() >= rowBytes && v != paddingSentinel {
			t.Fatalf("%s padding byte %d = %#x, want %#x", name, i, v, paddingSentinel)
		}
	}
}
