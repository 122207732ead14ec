package patchmatch

import (
	"math/rand/v2"

	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/mapping"
	"github.com/gogpu/inpaint/internal/parallel"
)

// AdaptionOptions configures CoarserMappingAdaption.
type AdaptionOptions struct {
	// Factor is the size ratio between the fine and the coarse layer.
	// Zero means 2.
	Factor int

	// MaskValue marks unknown mask pixels; any other value is valid.
	MaskValue uint8

	// Seed seeds the random fallback.
	Seed uint64

	// Filter optionally restricts sources to the fine pixels where it does
	// not hold MaskValue. It must have the fine dimensions.
	Filter *image.Frame

	// SpatialCost additionally requires that the coarse neighborhood agrees
	// on accepting the scaled source, and reports the agreement in a cost
	// mask.
	SpatialCost bool

	// CostNeighborhood is the edge length, 1 or 3, of the coarse
	// neighborhood checked by SpatialCost. Zero means 1.
	CostNeighborhood int

	// Pool parallelizes the adaption over rows.
	Pool *parallel.WorkerPool
}

func (o *AdaptionOptions) factor() int {
	if o.Factor <= 0 {
		return 2
	}
	return o.Factor
}

// CoarserMappingAdaption seeds the mapping of a fine layer from the mapping
// of the next coarser layer. For every unknown pixel p of fineMask, the
// offset recorded for its coarse cell is scaled by the layer factor; the
// source p+offset*factor, clamped to the frame, is used directly when it is
// valid and passes the filter. Otherwise a uniformly random valid (and
// filter passing) pixel is used.
//
// With SpatialCost the returned cost mask holds 0xFF for every unknown
// pixel whose coarse neighborhood accepts the scaled source throughout, and
// 0x00 otherwise; only agreeing pixels use the scaled source. A neighborhood
// in which every mapped cell rejects the scaled source is not agreement: its
// pixels are marked 0x00 as well, so callers match them again. Without
// SpatialCost the cost mask is nil.
func CoarserMappingAdaption(coarse *mapping.Mapping, fineMask *image.Frame, opts AdaptionOptions) (*mapping.Mapping, *image.Frame, error) {
	if !image.IsMask(fineMask) || (opts.Filter != nil && !image.IsMask(opts.Filter)) {
		return nil, nil, ErrInvalidMask
	}
	if coarse == nil || (opts.Filter != nil && !opts.Filter.SameSize(fineMask)) {
		return nil, nil, image.ErrIncompatible
	}

	width, height := fineMask.Width(), fineMask.Height()
	factor := opts.factor()
	a := &adaption{
		coarse: coarse,
		mask:   fineMask,
		opts:   opts,
		factor: factor,
	}

	// sources for the random fallback
	for y := range height {
		for x := range width {
			if a.acceptable(x, y) {
				a.sources = append(a.sources, y*width+x)
			}
		}
	}
	if len(a.sources) == 0 {
		if image.CountMaskPixels(fineMask, opts.MaskValue) == 0 {
			return mapping.New(width, height), nil, nil
		}
		return nil, nil, ErrNoValidPixels
	}

	var costMask *image.Frame
	if opts.SpatialCost {
		var err error
		if costMask, err = image.NewMask(width, height, 0, 0xFF); err != nil {
			return nil, nil, err
		}
	}

	fine := mapping.New(width, height)
	parallel.Rows(opts.Pool, 0, height, parallel.DefaultMinRows, func(first, count int) {
		for y := first; y < first+count; y++ {
			rng := rand.New(rand.NewPCG(opts.Seed, uint64(y)))
			for x := range width {
				if fineMask.MaskAt(x, y) != opts.MaskValue {
					continue
				}

				cx, cy := a.coarseCell(x, y)
				sx, sy, ok := a.scaled(x, y, cx, cy)
				if opts.SpatialCost && !a.agrees(x, y) {
					costMask.SetMask(x, y, 0x00)
					ok = false
				}
				if !ok {
					i := a.sources[rng.IntN(len(a.sources))]
					sx, sy = i%width, i/width
				}
				fine.Set(x, y, mapping.Pos(sx, sy))
			}
		}
	})

	return fine, costMask, nil
}

type adaption struct {
	coarse  *mapping.Mapping
	mask    *image.Frame
	opts    AdaptionOptions
	factor  int
	sources []int
}

// acceptable reports whether fine pixel (x, y) may serve as a source.
func (a *adaption) acceptable(x, y int) bool {
	if a.mask.MaskAt(x, y) == a.opts.MaskValue {
		return false
	}
	return a.opts.Filter == nil || a.opts.Filter.MaskAt(x, y) != a.opts.MaskValue
}

// coarseCell returns the coarse cell covering fine pixel (x, y).
func (a *adaption) coarseCell(x, y int) (int, int) {
	return min(x/a.factor, a.coarse.Width()-1), min(y/a.factor, a.coarse.Height()-1)
}

// scaled returns the clamped source of (x, y) derived from the mapping of
// coarse cell (cx, cy), and whether it is acceptable.
func (a *adaption) scaled(x, y, cx, cy int) (int, int, bool) {
	src := a.coarse.At(cx, cy)
	if !src.IsValid() {
		return 0, 0, false
	}
	sx := x + (int(src.X)-cx)*a.factor
	sy := y + (int(src.Y)-cy)*a.factor
	sx = min(max(sx, 0), a.mask.Width()-1)
	sy = min(max(sy, 0), a.mask.Height()-1)
	return sx, sy, a.acceptable(sx, sy)
}

// agrees reports whether every mapped coarse cell in the cost neighborhood
// of (x, y) yields an acceptable scaled source for (x, y).
func (a *adaption) agrees(x, y int) bool {
	cx, cy := a.coarseCell(x, y)
	radius := 0
	if a.opts.CostNeighborhood >= 3 {
		radius = 1
	}
	for ny := cy - radius; ny <= cy+radius; ny++ {
		for nx := cx - radius; nx <= cx+radius; nx++ {
			if nx < 0 || ny < 0 || nx >= a.coarse.Width() || ny >= a.coarse.Height() {
				continue
			}
			if !a.coarse.At(nx, ny).IsValid() && (nx != cx || ny != cy) {
				continue
			}
			if _, _, ok := a.scaled(x, y, nx, ny); !ok {
				return false
			}
		}
	}
	return true
}
