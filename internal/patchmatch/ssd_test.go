package patchmatch

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/integral"
)

func TestSSD(t *testing.T) {
	frame := newFrame(t, 8, 8, image.FormatYA8, 0, func(x, y, c int) uint8 {
		return uint8(10*x + c)
	})
	mask := holeMask(t, 8, 8, 0, 0x00, 6, 0, 8, 8)

	tests := []struct {
		name          string
		x0, y0        int
		x1, y1        int
		patchSize     int
		ignoreUnknown bool
		wantSum       uint64
		wantCells     int
	}{
		{"identical", 3, 3, 3, 4, 5, false, 0, 25},
		// both channels differ by 10 in all 25 cells
		{"one column apart", 3, 3, 4, 3, 5, false, 25 * 2 * 100, 25},
		// rows -1 and 0 of the source patch fall outside
		{"clipped", 3, 3, 3, 0, 3, false, 0, 6},
		{"single cell", 1, 1, 2, 2, 1, false, 2 * 100, 1},
		// source patch columns 5..7 hold 2 unknown columns
		{"ignore unknown", 3, 3, 6, 3, 3, true, 3 * 2 * 900, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, cells := SSD(frame, tt.x0, tt.y0, tt.x1, tt.y1, tt.patchSize, mask, 0x00, tt.ignoreUnknown)
			if sum != tt.wantSum || cells != tt.wantCells {
				t.Errorf("SSD = (%d, %d), want (%d, %d)", sum, cells, tt.wantSum, tt.wantCells)
			}
		})
	}
}

func TestScorerMatchesSSD(t *testing.T) {
	frame := randomFrame(t, 2, 20, 16, image.FormatRGB8, 3)
	mask := holeMask(t, 20, 16, 1, 0x00, 6, 5, 13, 11)
	unknown := integral.NewLinedMask(mask, 0x00, nil)
	rng := rand.New(rand.NewPCG(5, 5))

	for _, ignore := range []bool{false, true} {
		for _, size := range []int{3, 5, 7} {
			sc := newScorer(frame, mask, unknown, size, 0x00, ignore)
			for range 200 {
				x, y := rng.IntN(20), rng.IntN(16)
				sx, sy := rng.IntN(20), rng.IntN(16)
				sc.reset(x, y)

				want := cost(SSD(frame, x, y, sx, sy, size, mask, 0x00, ignore))
				if got := sc.score(sx, sy); got != want {
					t.Fatalf("ignore=%v size=%d (%d,%d)->(%d,%d): score = %d, want %d", ignore, size, x, y, sx, sy, got, want)
				}
			}
		}
	}
}

func TestCost(t *testing.T) {
	if cost(100, 0) != noCost {
		t.Error("cost without cells is not noCost")
	}
	if cost(100, 4) != 100*256/4 {
		t.Errorf("cost(100, 4) = %d", cost(100, 4))
	}
	// a partial patch with the same mean error costs the same as a full one
	if cost(25*9, 25) != cost(6*9, 6) {
		t.Error("cost is not normalized by the cell count")
	}
}

func BenchmarkScorer(b *testing.B) {
	frame, _ := image.NewFrame(64, 64, image.FormatRGB8)
	mask, _ := image.NewMask(64, 64, 0, 0xFF)
	unknown := integral.NewLinedMask(mask, 0x00, nil)
	sc := newScorer(frame, mask, unknown, DefaultPatchSize, 0x00, true)
	sc.reset(32, 32)

	for b.Loop() {
		for x := 2; x < 62; x++ {
			_ = sc.score(x, 20)
		}
	}
}
