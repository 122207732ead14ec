package shrink

import (
	"math/rand/v2"

	"github.com/gogpu/inpaint/internal/image"
)

// ShrinkMaskRandom fills every unknown pixel of frame one pixel at a time,
// picking the next pixel uniformly at random among the current border
// pixels: unknown pixels with at least one valid 8-neighbor.
//
// A filled pixel is visible to every later pick. The fill order, and hence
// the result, is fully determined by opts.Seed. opts.Neighborhood and
// opts.Pool are ignored.
func ShrinkMaskRandom(frame, mask *image.Frame, opts Options) (Result, error) {
	if err := validate(frame, mask); err != nil {
		return Result{}, err
	}

	width, height := frame.Width(), frame.Height()
	valid := image.ValidValue(opts.MaskValue)
	rng := rand.New(rand.NewPCG(opts.Seed, ^opts.Seed))
	log := opts.logger()

	w := newWorklist(width * height)
	unknown := 0
	for y := range height {
		for x := range width {
			if mask.MaskAt(x, y) != opts.MaskValue {
				continue
			}
			unknown++
			if image.IsBorderPixel(mask, x, y, opts.MaskValue) {
				w.add(y*width + x)
			}
		}
	}
	if unknown == 0 {
		return Result{}, nil
	}

	sums := make([]uint32, frame.Channels())
	var result Result
	for w.len() > 0 {
		i := w.take(rng.IntN(w.len()))
		x, y := i%width, i/width

		// a listed pixel always has a valid neighbor since pixels never
		// become unknown again
		average(frame, mask, x, y, opts.MaskValue, neighbors8, sums, opts.Noise, rng, frame.Pixel(x, y))
		mask.SetMask(x, y, valid)
		result.Pixels++

		for _, n := range neighbors8 {
			nx, ny := x+n.dx, y+n.dy
			if nx < 0 || ny < 0 || nx >= width || ny >= height || mask.MaskAt(nx, ny) != opts.MaskValue {
				continue
			}
			w.add(ny*width + nx)
		}
	}

	log.Debug("shrink: random shrink finished", "filled", result.Pixels, "unknown", unknown)

	if result.Pixels < unknown {
		return result, ErrNoProgress
	}
	return result, nil
}

// worklist is a set of linear pixel indices supporting O(1) insertion and
// removal by position.
type worklist struct {
	items  []int
	listed []bool
}

func newWorklist(pixels int) *worklist {
	return &worklist{listed: make([]bool, pixels)}
}

func (w *worklist) len() int { return len(w.items) }

// add inserts i unless it is already listed.
func (w *worklist) add(i int) {
	if w.listed[i] {
		return
	}
	w.listed[i] = true
	w.items = append(w.items, i)
}

// take removes and returns the item at position k by swapping it with the
// last item.
func (w *worklist) take(k int) int {
	last := len(w.items) - 1
	i := w.items[k]
	w.items[k] = w.items[last]
	w.items = w.items[:last]
	w.listed[i] = false
	return i
}
