package shrink

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/inpaint/internal/image"
)

// Test helper functions shared across shrink tests.

const paddingSentinel = 0xA5

// testFrame creates a frame with random pixels and padding set to
// paddingSentinel.
func testFrame(t *testing.T, seed uint64, width, height int, format image.Format, padding int) *image.Frame {
	t.Helper()
	f, err := image.NewFrameWithPadding(width, height, format, padding)
	if err != nil {
		t.Fatalf("NewFrameWithPadding: %v", err)
	}
	for i := range f.Data() {
		f.Data()[i] = paddingSentinel
	}
	rng := rand.New(rand.NewPCG(seed, 0))
	for y := range height {
		row := f.Row(y)
		for i := range row {
			row[i] = uint8(rng.IntN(256))
		}
	}
	return f
}

// holeMask creates a valid mask with the rectangle [x0, x1) x [y0, y1) unknown.
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

// referenceShrink is a direct ring erosion: every ring works on full copies of
// the state before the ring.
func referenceShrink(frame, mask *image.Frame, maskValue uint8, four bool) int {
	pattern := neighbors8
	if four {
		pattern = neighbors4
	}
	valid := image.ValidValue(maskValue)
	rings := 0
	for image.CountMaskPixels(mask, maskValue) > 0 {
		before := frame.Clone()
		beforeMask := mask.Clone()
		progress := false
		for y := range frame.Height() {
			for x := range frame.Width() {
				if beforeMask.MaskAt(x, y) != maskValue {
					continue
				}
				var sums [4]uint32
				var weight uint32
				for _, n := range pattern {
					nx, ny := x+n.dx, y+n.dy
					if nx < 0 || ny < 0 || nx >= frame.Width() || ny >= frame.Height() || beforeMask.MaskAt(nx, ny) == maskValue {
						continue
					}
					weight += n.weight
					for c := range frame.Channels() {
						sums[c] += n.weight * uint32(before.At(nx, ny, c))
					}
				}
				if weight == 0 {
					continue
				}
				px := frame.Pixel(x, y)
				for c := range px {
					px[c] = uint8((sums[c] + weight/2) / weight)
				}
				mask.SetMask(x, y, valid)
				progress = true
			}
		}
		if !progress {
			return -1
		}
		rings++
	}
	return rings
}
