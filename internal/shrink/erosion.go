package shrink

import (
	"math/rand/v2"

	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/parallel"
)

// ShrinkMask fills every unknown pixel of frame by ring erosion of mask.
//
// Each ring fills all unknown pixels having at least one valid neighbor,
// reading neighbors from a snapshot taken before the ring began, so no pixel
// of a ring sees another pixel of the same ring. Frame and mask are updated
// in place; row padding is never touched. The output does not depend on the
// number of workers in opts.Pool.
func ShrinkMask(frame, mask *image.Frame, opts Options) (Result, error) {
	if err := validate(frame, mask); err != nil {
		return Result{}, err
	}

	bounds, ok := image.MaskBoundingBox(mask, opts.MaskValue)
	if !ok {
		return Result{}, nil
	}

	pattern := neighbors8
	if opts.Neighborhood == Neighborhood4 {
		pattern = neighbors4
	}
	valid := image.ValidValue(opts.MaskValue)
	channels := frame.Channels()
	log := opts.logger()

	snapFrame := opts.snapshot(frame)
	snapMask := opts.snapshot(mask)
	defer opts.release(snapFrame)
	defer opts.release(snapMask)

	height := frame.Height()
	filled := make([]int, height)
	remaining := make([]int, height)

	var result Result
	for {
		ring := result.Rings
		clear(filled)
		clear(remaining)

		parallel.Rows(opts.Pool, bounds.Min.Y, bounds.Dy(), 4, func(first, count int) {
			sums := make([]uint32, channels)
			for y := first; y < first+count; y++ {
				var rng *rand.Rand
				if opts.Noise > 0 {
					rng = rand.New(rand.NewPCG(opts.Seed, uint64(ring)<<32|uint64(y)))
				}
				maskRow := snapMask.Row(y)
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					if maskRow[x] != opts.MaskValue {
						continue
					}
					if average(snapFrame, snapMask, x, y, opts.MaskValue, pattern, sums, opts.Noise, rng, frame.Pixel(x, y)) {
						mask.SetMask(x, y, valid)
						filled[y]++
					} else {
						remaining[y]++
					}
				}
			}
		})

		var ringFilled, ringRemaining int
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			ringFilled += filled[y]
			ringRemaining += remaining[y]
		}
		result.Rings++
		result.Pixels += ringFilled

		log.Debug("shrink: ring eroded", "ring", ring, "filled", ringFilled, "remaining", ringRemaining)

		if ringRemaining == 0 {
			return result, nil
		}
		if ringFilled == 0 {
			return result, ErrNoProgress
		}

		syncRows(snapFrame, frame, bounds.Min.Y, bounds.Max.Y, bounds.Min.X*channels, bounds.Max.X*channels)
		syncRows(snapMask, mask, bounds.Min.Y, bounds.Max.Y, bounds.Min.X, bounds.Max.X)
	}
}

// syncRows copies the byte range [left, right) of rows [top, bottom) from src
// into dst.
func syncRows(dst, src *image.Frame, top, bottom, left, right int) {
	for y := top; y < bottom; y++ {
		copy(dst.Row(y)[left:right], src.Row(y)[left:right])
	}
}
