package inpaint

import (
	"math/rand/v2"

	"github.com/gogpu/inpaint/internal/parallel"
	"github.com/gogpu/inpaint/internal/patchmatch"
	"github.com/gogpu/inpaint/internal/shrink"
)

// Neighborhood selects the neighbors averaged by ShrinkMask.
type Neighborhood = shrink.Neighborhood

const (
	// Neighborhood4 averages the four orthogonal neighbors with equal weight.
	Neighborhood4 = shrink.Neighborhood4

	// Neighborhood8 averages all eight neighbors, orthogonal ones weighted 2
	// and diagonal ones weighted 1.
	Neighborhood8 = shrink.Neighborhood8
)

// DefaultPatchSize is the edge length of compared patches.
const DefaultPatchSize = patchmatch.DefaultPatchSize

// Option configures an inpainting call.
// Use functional options to customize behavior.
//
// Example:
//
//	// Defaults: mask value 0x00, 8-neighborhood, heuristic search, one worker
//	err := inpaint.ShrinkMask(frame, mask)
//
//	// Reproducible pyramid run on all CPUs
//	res, err := inpaint.Inpaint(frame, mask, inpaint.WithSeed(7), inpaint.WithWorkers(0))
type Option func(*options)

// options holds the configuration of one call.
type options struct {
	maskValue        uint8
	neighborhood     Neighborhood
	noise            int
	seed             uint64
	seedSet          bool
	searchRadius     int
	heuristic        bool
	ignoreUnknown    bool
	patchSize        int
	workers          int
	layers           int
	costNeighborhood int
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		maskValue:        0x00,
		neighborhood:     Neighborhood8,
		heuristic:        true,
		ignoreUnknown:    true,
		patchSize:        DefaultPatchSize,
		workers:          1,
		layers:           0, // chosen from the frame and mask
		costNeighborhood: 3,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seedSet {
		o.seed = rand.Uint64()
		o.seedSet = true
	}
	return o
}

// pool returns a worker pool for the configured worker count, or nil for a
// single worker. The caller closes a non-nil pool.
func (o *options) pool() *parallel.WorkerPool {
	if o.workers == 1 {
		return nil
	}
	return parallel.NewWorkerPool(o.workers)
}

// WithMaskValue sets the mask value marking unknown pixels. Every other
// mask value counts as valid. The default is 0x00.
func WithMaskValue(v uint8) Option {
	return func(o *options) {
		o.maskValue = v
	}
}

// WithNeighborhood selects the erosion neighborhood of ShrinkMask.
// The default is Neighborhood8. Unknown values fall back to Neighborhood8.
func WithNeighborhood(n Neighborhood) Option {
	return func(o *options) {
		if n != Neighborhood4 {
			n = Neighborhood8
		}
		o.neighborhood = n
	}
}

// WithNoise adds a uniform integer in [-amplitude, amplitude] to every
// channel of a pixel filled by ShrinkMask or ShrinkMaskRandom.
// Non-positive values disable noise.
func WithNoise(amplitude int) Option {
	return func(o *options) {
		o.noise = max(amplitude, 0)
	}
}

// WithSeed makes every random decision reproducible.
//
// Example:
//
//	seed, _ := inpaint.ShrinkMaskRandom(frame, mask)
//	// later, on a fresh copy of the inputs:
//	_, _ = inpaint.ShrinkMaskRandom(frame2, mask2, inpaint.WithSeed(seed))
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithSearchRadius bounds, per axis, the distance between a pixel and its
// source during patch matching. Zero, the default, searches the whole frame.
func WithSearchRadius(radius int) Option {
	return func(o *options) {
		o.searchRadius = max(radius, 0)
	}
}

// WithHeuristic enables or disables propagation and random search before
// the exhaustive search. Enabled by default.
func WithHeuristic(enabled bool) Option {
	return func(o *options) {
		o.heuristic = enabled
	}
}

// WithIgnoreUnknown controls whether unknown cells are skipped when
// comparing patches. Enabled by default.
func WithIgnoreUnknown(enabled bool) Option {
	return func(o *options) {
		o.ignoreUnknown = enabled
	}
}

// WithPatchSize sets the edge length of compared patches. Even sizes are
// rounded up to the next odd size; non-positive sizes select DefaultPatchSize.
func WithPatchSize(size int) Option {
	return func(o *options) {
		if size <= 0 {
			size = DefaultPatchSize
		}
		o.patchSize = size | 1
	}
}

// WithWorkers sets the number of workers. Zero or a negative count uses
// GOMAXPROCS. The default is 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 0)
	}
}

// WithLayers sets the number of pyramid layers used by Inpaint, the finest
// layer included. Zero, the default, derives the count from the frame and
// the mask; 1 disables the pyramid.
func WithLayers(n int) Option {
	return func(o *options) {
		o.layers = max(n, 0)
	}
}

// WithRefinement sets the coarse neighborhood, 1 or 3, that must agree on a
// scaled source before Inpaint accepts it on a finer layer; disagreeing
// pixels are matched again on that layer. Zero accepts every adapted source
// without refinement. The default is 3.
func WithRefinement(neighborhood int) Option {
	return func(o *options) {
		switch {
		case neighborhood <= 0:
			o.costNeighborhood = 0
		case neighborhood < 3:
			o.costNeighborhood = 1
		default:
			o.costNeighborhood = 3
		}
	}
}
