package patchmatch

import (
	stdimage "image"
	"math"

	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/integral"
)

// SSD returns the sum of squared differences over all channels between the
// patchSize x patchSize patches centered at (x0, y0) and (x1, y1), and the
// number of cells that contributed. Cells falling outside the frame in
// either patch are skipped; with ignoreUnknown, so are cells holding
// maskValue in either patch.
func SSD(frame *image.Frame, x0, y0, x1, y1, patchSize int, mask *image.Frame, maskValue uint8, ignoreUnknown bool) (sum uint64, cells int) {
	half := patchSize / 2
	width, height := frame.Width(), frame.Height()

	for dy := -half; dy <= half; dy++ {
		ty, sy := y0+dy, y1+dy
		if ty < 0 || sy < 0 || ty >= height || sy >= height {
			continue
		}
		for dx := -half; dx <= half; dx++ {
			tx, sx := x0+dx, x1+dx
			if tx < 0 || sx < 0 || tx >= width || sx >= width {
				continue
			}
			if ignoreUnknown && (mask.MaskAt(tx, ty) == maskValue || mask.MaskAt(sx, sy) == maskValue) {
				continue
			}
			sum += pixelSSD(frame.Pixel(tx, ty), frame.Pixel(sx, sy))
			cells++
		}
	}
	return sum, cells
}

func pixelSSD(a, b []byte) uint64 {
	var sum uint64
	for c := range a {
		d := int(a[c]) - int(b[c])
		sum += uint64(d * d)
	}
	return sum
}

// noCost marks a candidate without any comparable cell.
const noCost = math.MaxUint64

// cost normalizes an SSD by its cell count so partial patches compare fairly
// with full ones.
func cost(sum uint64, cells int) uint64 {
	if cells == 0 {
		return noCost
	}
	return sum * 256 / uint64(cells)
}

type offset struct {
	dx, dy int
}

// scorer evaluates candidate sources for one target pixel. The target
// cells are resolved once; an occupancy table of unknown pixels lets fully
// valid source windows skip every per-cell mask test.
type scorer struct {
	frame         *image.Frame
	mask          *image.Frame
	unknown       *integral.Lined
	maskValue     uint8
	ignoreUnknown bool
	half          int

	x, y    int
	targets []offset
}

func newScorer(frame, mask *image.Frame, unknown *integral.Lined, patchSize int, maskValue uint8, ignoreUnknown bool) *scorer {
	return &scorer{
		frame:         frame,
		mask:          mask,
		unknown:       unknown,
		maskValue:     maskValue,
		ignoreUnknown: ignoreUnknown,
		half:          patchSize / 2,
	}
}

// reset selects the target pixel (x, y).
func (s *scorer) reset(x, y int) {
	s.x, s.y = x, y
	s.targets = s.targets[:0]
	width, height := s.frame.Width(), s.frame.Height()
	for dy := -s.half; dy <= s.half; dy++ {
		for dx := -s.half; dx <= s.half; dx++ {
			tx, ty := x+dx, y+dy
			if tx < 0 || ty < 0 || tx >= width || ty >= height {
				continue
			}
			if s.ignoreUnknown && s.mask.MaskAt(tx, ty) == s.maskValue {
				continue
			}
			s.targets = append(s.targets, offset{dx, dy})
		}
	}
}

// score returns the normalized SSD between the target patch and the patch
// centered at (sx, sy).
func (s *scorer) score(sx, sy int) uint64 {
	width, height := s.frame.Width(), s.frame.Height()
	window := stdimage.Rect(sx-s.half, sy-s.half, sx+s.half+1, sy+s.half+1)
	inside := window.In(stdimage.Rect(0, 0, width, height))
	checkMask := s.ignoreUnknown && !(inside && s.unknown.Count(window) == 0)

	var sum uint64
	cells := 0
	for _, o := range s.targets {
		cx, cy := sx+o.dx, sy+o.dy
		if !inside && (cx < 0 || cy < 0 || cx >= width || cy >= height) {
			continue
		}
		if checkMask && s.mask.MaskAt(cx, cy) == s.maskValue {
			continue
		}
		sum += pixelSSD(s.frame.Pixel(s.x+o.dx, s.y+o.dy), s.frame.Pixel(cx, cy))
		cells++
	}
	return cost(sum, cells)
}
