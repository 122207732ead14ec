// Package shrink fills the unknown pixels of a frame by shrinking its mask
// from the border inwards, assigning every newly valid pixel the weighted
// average of its valid neighbors.
//
// ShrinkMask erodes the mask one ring at a time; every ring reads only the
// state from before the ring began. ShrinkMaskRandom resolves one random
// border pixel at a time, which avoids concentric ring artifacts.
package shrink

import (
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/parallel"
)

var (
	// ErrNoProgress is returned when unknown pixels remain but none of them
	// has a valid neighbor, i.e. the mask holds no valid seed pixel.
	ErrNoProgress = errors.New("shrink: no valid neighbor to propagate from")

	// ErrInvalidMask is returned when the mask is not a single channel frame.
	ErrInvalidMask = errors.New("shrink: mask must be single channel")
)

// Neighborhood selects the neighbors contributing to a filled pixel.
type Neighborhood int

const (
	// Neighborhood8 weights orthogonal neighbors 2 and diagonal neighbors 1.
	Neighborhood8 Neighborhood = 8

	// Neighborhood4 weights the orthogonal neighbors 1 each.
	Neighborhood4 Neighborhood = 4
)

// Options configures a shrinking run.
type Options struct {
	// MaskValue marks unknown mask pixels; any other value is valid.
	MaskValue uint8

	// Neighborhood selects 4 or 8 neighbor erosion. Zero means Neighborhood8.
	// ShrinkMaskRandom always uses the 8-neighborhood.
	Neighborhood Neighborhood

	// Noise adds a uniform integer in [-Noise, Noise] to every channel of a
	// filled pixel, clamped to [0, 255]. Zero disables noise.
	Noise int

	// Seed seeds the noise and, for ShrinkMaskRandom, the pick order.
	Seed uint64

	// Pool parallelizes ring erosion over rows. Nil runs sequentially.
	Pool *parallel.WorkerPool

	// Frames provides the ring snapshots. Nil uses the image package default
	// pool.
	Frames *image.Pool

	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// Result reports the work done by a shrinking run.
type Result struct {
	// Rings is the number of erosion rings processed.
	Rings int

	// Pixels is the number of pixels filled.
	Pixels int
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// snapshot returns a pooled copy of src, padding included.
func (o *Options) snapshot(src *image.Frame) *image.Frame {
	if o.Frames != nil {
		return o.Frames.GetCopy(src)
	}
	return image.CopyFromDefault(src)
}

// release returns a snapshot to the pool it came from.
func (o *Options) release(f *image.Frame) {
	if o.Frames != nil {
		o.Frames.Put(f)
		return
	}
	image.PutToDefault(f)
}

func validate(frame, mask *image.Frame) error {
	if !image.IsMask(mask) {
		return ErrInvalidMask
	}
	if !frame.SameSize(mask) {
		return image.ErrIncompatible
	}
	return nil
}

// neighbor is a relative position with its averaging weight.
type neighbor struct {
	dx, dy int
	weight uint32
}

var (
	neighbors8 = []neighbor{
		{-1, -1, 1}, {0, -1, 2}, {1, -1, 1},
		{-1, 0, 2}, {1, 0, 2},
		{-1, 1, 1}, {0, 1, 2}, {1, 1, 1},
	}
	neighbors4 = []neighbor{
		{0, -1, 1}, {-1, 0, 1}, {1, 0, 1}, {0, 1, 1},
	}
)

// average writes into dst the weighted average of the valid neighbors of
// (x, y) read from frame and mask, plus noise. It reports false, leaving dst
// untouched, when no neighbor is valid.
func average(frame, mask *image.Frame, x, y int, maskValue uint8, pattern []neighbor, sums []uint32, noise int, rng *rand.Rand, dst []byte) bool {
	width, height := frame.Width(), frame.Height()
	clear(sums)
	var weight uint32

	for _, n := range pattern {
		nx, ny := x+n.dx, y+n.dy
		if nx < 0 || ny < 0 || nx >= width || ny >= height || mask.MaskAt(nx, ny) == maskValue {
			continue
		}
		weight += n.weight
		for c, v := range frame.Pixel(nx, ny) {
			sums[c] += n.weight * uint32(v)
		}
	}
	if weight == 0 {
		return false
	}

	for c := range dst {
		v := int((sums[c] + weight/2) / weight)
		if noise > 0 {
			v += rng.IntN(2*noise+1) - noise
		}
		dst[c] = uint8(min(max(v, 0), 255))
	}
	return true
}
