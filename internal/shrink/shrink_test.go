package shrink

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/parallel"
)

// =============================================================================
// Ring erosion
// =============================================================================

func TestShrinkMask_Rounding(t *testing.T) {
	frame, _ := image.NewFrame(3, 1, image.FormatY8)
	copy(frame.Row(0), []byte{100, 0, 51})
	mask, _ := image.NewMask(3, 1, 0, 0xFF)
	mask.SetMask(1, 0, 0x00)

	res, err := ShrinkMask(frame, mask, Options{})
	if err != nil {
		t.Fatalf("ShrinkMask: %v", err)
	}
	// (2*100 + 2*51 + 2) / 4
	if got := frame.Row(0)[1]; got != 76 {
		t.Errorf("filled value = %d, want 76", got)
	}
	if res.Rings != 1 || res.Pixels != 1 {
		t.Errorf("result = %+v, want {Rings:1 Pixels:1}", res)
	}
}

func TestShrinkMask_Weights(t *testing.T) {
	// center pixel with one orthogonal neighbor at 90 and one diagonal at 30
	frame, _ := image.NewFrame(3, 3, image.FormatY8)
	frame.Row(0)[1] = 90
	frame.Row(0)[0] = 30
	mask, _ := image.NewMask(3, 3, 0, 0xFF)
	mask.SetMask(1, 0, 0x00)
	mask.SetMask(0, 0, 0x00)

	tests := []struct {
		name         string
		neighborhood Neighborhood
		want         uint8
	}{
		{"8-neighborhood", Neighborhood8, (2*90 + 30 + 1) / 3},
		{"4-neighborhood", Neighborhood4, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := frame.Clone()
			m := mask.Clone()
			if _, err := ShrinkMask(f, m, Options{MaskValue: 0xFF, Neighborhood: tt.neighborhood}); err != nil {
				t.Fatalf("ShrinkMask: %v", err)
			}
			if got := f.Row(1)[1]; got != tt.want {
				t.Errorf("center = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShrinkMask_CenterHole(t *testing.T) {
	tests := []struct {
		name         string
		neighborhood Neighborhood
		format       image.Format
		padding      int
	}{
		{"8-neighborhood gray", Neighborhood8, image.FormatY8, 0},
		{"4-neighborhood gray", Neighborhood4, image.FormatY8, 0},
		{"8-neighborhood rgb padded", Neighborhood8, image.FormatRGB8, 7},
		{"4-neighborhood rgba padded", Neighborhood4, image.FormatRGBA8, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := testFrame(t, 1, 10, 10, tt.format, tt.padding)
			mask := holeMask(t, 10, 10, tt.padding, 0x00, 3, 3, 7, 7)

			want := frame.Clone()
			wantMask := mask.Clone()
			wantRings := referenceShrink(want, wantMask, 0x00, tt.neighborhood == Neighborhood4)

			res, err := ShrinkMask(frame, mask, Options{Neighborhood: tt.neighborhood})
			if err != nil {
				t.Fatalf("ShrinkMask: %v", err)
			}
			if res.Rings != wantRings || res.Pixels != 16 {
				t.Errorf("result = %+v, want {Rings:%d Pixels:16}", res, wantRings)
			}
			if n := image.CountMaskPixels(mask, 0x00); n != 0 {
				t.Errorf("%d unknown pixels remain", n)
			}
			if !frame.EqualPixels(want) {
				t.Error("filled frame differs from reference erosion")
			}
			checkPadding(t, "frame", frame)
			checkPadding(t, "mask", mask)
		})
	}
}

func TestShrinkMask_RingCount(t *testing.T) {
	tests := []struct {
		name         string
		neighborhood Neighborhood
		want         int
	}{
		{"8-neighborhood", Neighborhood8, 4},
		{"4-neighborhood", Neighborhood4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// only the top left pixel of a 5x5 frame is valid
			frame := testFrame(t, 2, 5, 5, image.FormatY8, 0)
			mask := holeMask(t, 5, 5, 0, 0x00, 0, 0, 5, 5)
			mask.SetMask(0, 0, 0xFF)

			res, err := ShrinkMask(frame, mask, Options{Neighborhood: tt.neighborhood})
			if err != nil {
				t.Fatalf("ShrinkMask: %v", err)
			}
			if res.Rings != tt.want {
				t.Errorf("rings = %d, want %d", res.Rings, tt.want)
			}
			for y := range 5 {
				for x := range 5 {
					if frame.Row(y)[x] != frame.Row(0)[0] {
						t.Fatalf("pixel (%d,%d) = %d, want seed value %d", x, y, frame.Row(y)[x], frame.Row(0)[0])
					}
				}
			}
		})
	}
}

func TestShrinkMask_Workers(t *testing.T) {
	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	for _, noise := range []int{0, 6} {
		frame := testFrame(t, 3, 120, 90, image.FormatRGB8, 2)
		mask := holeMask(t, 120, 90, 1, 0x00, 20, 10, 100, 80)

		f1, m1 := frame.Clone(), mask.Clone()
		f2, m2 := frame.Clone(), mask.Clone()
		opts := Options{Noise: noise, Seed: 42}

		if _, err := ShrinkMask(f1, m1, opts); err != nil {
			t.Fatalf("sequential: %v", err)
		}
		opts.Pool = pool
		if _, err := ShrinkMask(f2, m2, opts); err != nil {
			t.Fatalf("parallel: %v", err)
		}
		if !f1.Equal(f2) || !m1.Equal(m2) {
			t.Errorf("noise %d: parallel result differs from sequential result", noise)
		}
	}
}

func TestShrinkMask_Noise(t *testing.T) {
	frame, _ := image.NewFrame(40, 40, image.FormatY8)
	frame.SetValue(128)
	mask := holeMask(t, 40, 40, 0, 0x00, 10, 10, 30, 30)

	const noise = 3
	if _, err := ShrinkMask(frame, mask, Options{Noise: noise, Seed: 9}); err != nil {
		t.Fatalf("ShrinkMask: %v", err)
	}

	changed := false
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			v := int(frame.Row(y)[x])
			if v != 128 {
				changed = true
			}
			// noise accumulates over at most 10 rings
			if v < 128-10*noise || v > 128+10*noise {
				t.Fatalf("pixel (%d,%d) = %d drifted beyond the noise bound", x, y, v)
			}
		}
	}
	if !changed {
		t.Error("noise had no effect")
	}
}

func TestShrinkMask_NoiseClamped(t *testing.T) {
	for seed := range uint64(20) {
		frame, _ := image.NewFrame(2, 1, image.FormatY8)
		frame.Row(0)[0] = 255
		mask := holeMask(t, 2, 1, 0, 0x00, 1, 0, 2, 1)

		if _, err := ShrinkMask(frame, mask, Options{Noise: 50, Seed: seed}); err != nil {
			t.Fatalf("ShrinkMask: %v", err)
		}
		// a wrapped overflow would show as a small value
		if v := frame.Row(0)[1]; v < 205 {
			t.Errorf("seed %d: filled value = %d, want in [205, 255]", seed, v)
		}
	}
}

func TestShrinkMask_NothingToDo(t *testing.T) {
	frame := testFrame(t, 4, 6, 6, image.FormatY8, 0)
	mask, _ := image.NewMask(6, 6, 0, 0xFF)
	before := frame.Clone()

	res, err := ShrinkMask(frame, mask, Options{})
	if err != nil || res != (Result{}) {
		t.Fatalf("ShrinkMask = %+v, %v; want empty result", res, err)
	}
	if !frame.Equal(before) {
		t.Error("frame was modified")
	}
}

func TestShrinkMask_Errors(t *testing.T) {
	frame := testFrame(t, 5, 6, 6, image.FormatY8, 0)

	allUnknown, _ := image.NewMask(6, 6, 0, 0x00)
	if _, err := ShrinkMask(frame, allUnknown, Options{}); !errors.Is(err, ErrNoProgress) {
		t.Errorf("all unknown: error = %v, want ErrNoProgress", err)
	}

	wrongSize, _ := image.NewMask(5, 6, 0, 0xFF)
	if _, err := ShrinkMask(frame, wrongSize, Options{}); !errors.Is(err, image.ErrIncompatible) {
		t.Errorf("wrong size: error = %v, want ErrIncompatible", err)
	}

	rgbMask, _ := image.NewFrame(6, 6, image.FormatRGB8)
	if _, err := ShrinkMask(frame, rgbMask, Options{}); !errors.Is(err, ErrInvalidMask) {
		t.Errorf("rgb mask: error = %v, want ErrInvalidMask", err)
	}
}

func TestShrinkMask_FramePool(t *testing.T) {
	frames := image.NewPool(4)
	frame := testFrame(t, 6, 16, 16, image.FormatY8, 0)
	mask := holeMask(t, 16, 16, 0, 0x00, 4, 4, 12, 12)

	if _, err := ShrinkMask(frame, mask, Options{Frames: frames}); err != nil {
		t.Fatalf("ShrinkMask: %v", err)
	}
	if frames.Len() != 2 {
		t.Errorf("pool holds %d snapshots, want 2", frames.Len())
	}
}

func TestShrinkMask_DefaultFramePool(t *testing.T) {
	frame := testFrame(t, 7, 23, 7, image.FormatRGB8, 0)
	mask := holeMask(t, 23, 7, 0, 0x00, 5, 2, 18, 5)
	want := append([]byte(nil), frame.Row(0)...)

	// The default pool hands out the most recently returned frame first.
	pooled, _ := image.NewFrame(23, 7, image.FormatRGB8)
	image.PutToDefault(pooled)

	if _, err := ShrinkMask(frame, mask, Options{}); err != nil {
		t.Fatalf("ShrinkMask: %v", err)
	}
	if !bytes.Equal(pooled.Row(0), want) {
		t.Error("ShrinkMask without Frames should snapshot into the image default pool")
	}
}

func BenchmarkShrinkMask(b *testing.B) {
	frame, _ := image.NewFrame(256, 256, image.FormatRGB8)
	mask, _ := image.NewMask(256, 256, 0, 0xFF)

	for b.Loop() {
		f := frame.Clone()
		m := mask.Clone()
		for y := 64; y < 192; y++ {
			for x := 64; x < 192; x++ {
				m.SetMask(x, y, 0x00)
			}
		}
		_, _ = ShrinkMask(f, m, Options{})
	}
}
