package inpaint

import (
	"testing"
)

// Test helper functions shared across inpaint tests.

// newTestFrame creates a frame whose pixels are set by value.
func newTestFrame(t *testing.T, width, height int, format Format, value func(x, y, c int) uint8) *Frame {
	t.Helper()
	f, err := NewFrame(width, height, format)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
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

// texture is a deterministic pattern with structure in both directions.
func texture(x, y, c int) uint8 {
	return uint8((x*37 + y*11 + c*71 + (x/3)*(y/5)*13) % 256)
}

// holeMask creates a mask that is valid (0xFF) except for the rectangle
// [x0, x1) x [y0, y1), which holds 0x00.
func holeMask(t *testing.T, width, height, x0, y0, x1, y1 int) *Frame {
	t.Helper()
	mask, err := NewMask(width, height, 0xFF)
	if err != nil {
		t.Fatalf("NewMask: %v", err)
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mask.SetMask(x, y, 0x00)
		}
	}
	return mask
}

// checkResolved fails the test if any mask pixel is still unknown.
func checkResolved(t *testing.T, mask *Frame) {
	t.Helper()
	for y := range mask.Height() {
		for x, v := range mask.Row(y) {
			if v == 0x00 {
				t.Fatalf("mask pixel (%d,%d) is still unknown", x, y)
			}
		}
	}
}

// checkMapping verifies that exactly the pixels unknown in before have a
// source, that each holds its source's color, and that every source chain
// ends at original content.
func checkMapping(t *testing.T, frame, before *Frame, m *Mapping) {
	t.Helper()
	width, height := frame.Width(), frame.Height()
	for y := range height {
		for x := range width {
			src := m.At(x, y)
			if before.MaskAt(x, y) != 0x00 {
				if src.IsValid() {
					t.Fatalf("original pixel (%d,%d) has source %v", x, y, src)
				}
				continue
			}
			if !src.IsValid() || (int(src.X) == x && int(src.Y) == y) {
				t.Fatalf("pixel (%d,%d) has source %v", x, y, src)
			}
			if string(frame.Pixel(x, y)) != string(frame.Pixel(int(src.X), int(src.Y))) {
				t.Fatalf("pixel (%d,%d) does not hold the color of its source %v", x, y, src)
			}

			cx, cy := x, y
			for steps := 0; before.MaskAt(cx, cy) == 0x00; steps++ {
				if steps > width*height {
					t.Fatalf("source chain of (%d,%d) does not reach original content", x, y)
				}
				p := m.At(cx, cy)
				cx, cy = int(p.X), int(p.Y)
			}
		}
	}
}

// sameMapping reports whether a and b hold the same entries.
func sameMapping(a, b *Mapping) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for y := range a.Height() {
		for x := range a.Width() {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}
