// Package patchmatch fills the unknown pixels of a frame by copying the
// best matching patch from already valid content, one border pixel at a
// time in priority order, and records every copy in a mapping.
package patchmatch

import (
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/gogpu/inpaint/internal/filter"
	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/integral"
	"github.com/gogpu/inpaint/internal/mapping"
	"github.com/gogpu/inpaint/internal/parallel"
)

var (
	// ErrNoValidPixels is returned when unknown pixels remain but the mask
	// holds no valid pixel to copy from.
	ErrNoValidPixels = errors.New("patchmatch: no valid pixel to copy from")

	// ErrInvalidMask is returned when the mask is not a single channel frame.
	ErrInvalidMask = errors.New("patchmatch: mask must be single channel")
)

// DefaultPatchSize is the edge length of compared patches.
const DefaultPatchSize = 5

const (
	propagationRadius  = 3
	guidedSamples      = 100
	guidedMaxLength    = 10
	unguidedIterations = 200
)

// Options configures ShrinkingPatchMatching.
type Options struct {
	// MaskValue marks unknown mask pixels; any other value is valid.
	MaskValue uint8

	// PatchSize is the odd edge length of compared patches. Zero means
	// DefaultPatchSize.
	PatchSize int

	// SearchRadius bounds the distance, per axis, between a pixel and its
	// source. Zero searches the whole frame.
	SearchRadius int

	// Heuristic enables propagation and random search before falling back
	// to brute force.
	Heuristic bool

	// IgnoreUnknown skips unknown cells when comparing patches.
	IgnoreUnknown bool

	// Seed seeds the random searches.
	Seed uint64

	// Pool searches all pixels sharing the top priority in parallel before
	// committing them. Nil resolves one pixel per iteration.
	Pool *parallel.WorkerPool

	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o *Options) patchSize() int {
	if o.PatchSize <= 0 {
		return DefaultPatchSize
	}
	return o.PatchSize | 1
}

// Stats reports the work done by ShrinkingPatchMatching.
type Stats struct {
	// Pixels is the number of pixels filled.
	Pixels int

	// Iterations is the number of queue rebuilds.
	Iterations int

	// BruteForce counts pixels resolved by the exhaustive search.
	BruteForce int

	// LastResort counts pixels that took the first valid pixel in raster
	// order because no search found a candidate.
	LastResort int
}

func validate(frame, mask *image.Frame, m *mapping.Mapping) error {
	if !image.IsMask(mask) {
		return ErrInvalidMask
	}
	if !frame.SameSize(mask) || m == nil || !m.SameSize(frame) {
		return image.ErrIncompatible
	}
	return nil
}

// ShrinkingPatchMatching fills every unknown pixel of frame. Pixels are
// taken from the priority queue of border pixels, which is rebuilt after
// every iteration; each pixel copies the color of the valid pixel whose
// patch matches best and records it in m.
//
// Every recorded source was valid when the pixel was committed. With a nil
// opts.Pool the result is fully determined by opts.Seed.
func ShrinkingPatchMatching(frame, mask *image.Frame, m *mapping.Mapping, opts Options) (Stats, error) {
	if err := validate(frame, mask, m); err != nil {
		return Stats{}, err
	}

	remaining := image.CountMaskPixels(mask, opts.MaskValue)
	if remaining == 0 {
		return Stats{}, nil
	}

	log := opts.logger()
	sobel := filter.NewSobel(frame, opts.Pool)
	unknown := integral.NewLinedMask(mask, opts.MaskValue, opts.Pool)
	valid := image.ValidValue(opts.MaskValue)

	s := &search{
		frame:   frame,
		mask:    mask,
		mapping: m,
		opts:    opts,
		size:    opts.patchSize(),
		unknown: unknown,
		log:     log,
	}

	tiers := opts.Pool.Workers() > 1
	var stats Stats
	for remaining > 0 {
		queue := BorderPixels(mask, sobel, opts.MaskValue)
		if queue.Len() == 0 {
			return stats, ErrNoValidPixels
		}

		batch := []InpaintingPixel{queue.Pop()}
		if tiers {
			for queue.Len() > 0 && queue.Peek().Priority == batch[0].Priority {
				batch = append(batch, queue.Pop())
			}
		}

		found := make([]candidate, len(batch))
		iteration := uint64(stats.Iterations)
		parallel.Rows(opts.Pool, 0, len(batch), 1, func(first, count int) {
			sc := newScorer(frame, mask, unknown, s.size, opts.MaskValue, opts.IgnoreUnknown)
			for i := first; i < first+count; i++ {
				found[i] = s.resolve(sc, batch[i], iteration)
			}
		})

		for i, p := range batch {
			c := found[i]
			if !c.ok {
				return stats, ErrNoValidPixels
			}
			switch c.phase {
			case phaseBruteForce:
				stats.BruteForce++
			case phaseLastResort:
				stats.LastResort++
			}
			copy(frame.Pixel(p.X, p.Y), frame.Pixel(c.x, c.y))
			mask.SetMask(p.X, p.Y, valid)
			m.Set(p.X, p.Y, mapping.Pos(c.x, c.y))
			sobel.UpdateAround(frame, p.X, p.Y)
		}
		unknown.UpdateMask(mask, opts.MaskValue, opts.Pool)

		stats.Pixels += len(batch)
		stats.Iterations++
		remaining -= len(batch)
	}

	log.Debug("patchmatch: mask resolved",
		"pixels", stats.Pixels,
		"iterations", stats.Iterations,
		"bruteForce", stats.BruteForce,
		"lastResort", stats.LastResort)

	return stats, nil
}

type phase int

const (
	phaseHeuristic phase = iota
	phaseBruteForce
	phaseLastResort
)

// candidate is a source position with its patch cost.
type candidate struct {
	x, y  int
	cost  uint64
	ok    bool
	phase phase
}

// search holds the state shared by all pixels of one run. It is read-only
// while an iteration searches.
type search struct {
	frame   *image.Frame
	mask    *image.Frame
	mapping *mapping.Mapping
	opts    Options
	size    int
	unknown *integral.Lined
	log     *slog.Logger
}

// allowed reports whether (sx, sy) may serve as source for (x, y).
func (s *search) allowed(x, y, sx, sy int) bool {
	if sx < 0 || sy < 0 || sx >= s.frame.Width() || sy >= s.frame.Height() {
		return false
	}
	if sx == x && sy == y {
		return false
	}
	if r := s.opts.SearchRadius; r > 0 && (abs(sx-x) > r || abs(sy-y) > r) {
		return false
	}
	return s.mask.MaskAt(sx, sy) != s.opts.MaskValue
}

// try evaluates (sx, sy) and keeps it in best when it is allowed and cheaper.
func (s *search) try(sc *scorer, best *candidate, x, y, sx, sy int) {
	if !s.allowed(x, y, sx, sy) {
		return
	}
	c := sc.score(sx, sy)
	if !best.ok || c < best.cost {
		*best = candidate{x: sx, y: sy, cost: c, ok: true}
	}
}

// resolve finds the source for p.
func (s *search) resolve(sc *scorer, p InpaintingPixel, iteration uint64) candidate {
	sc.reset(p.X, p.Y)
	var best candidate

	if s.opts.Heuristic {
		index := uint64(p.Y*s.frame.Width() + p.X)
		rng := rand.New(rand.NewPCG(s.opts.Seed+iteration, index))
		s.propagate(sc, &best, p)
		s.guided(sc, &best, p, rng)
		if best.ok {
			s.unguided(sc, &best, p, rng)
		}
	}
	if best.ok {
		best.phase = phaseHeuristic
		return best
	}

	s.bruteForce(sc, &best, p)
	if best.ok {
		best.phase = phaseBruteForce
		return best
	}

	if x, y, ok := s.firstValid(p); ok {
		s.log.Warn("patchmatch: no candidate found, using first valid pixel",
			"x", p.X, "y", p.Y, "sourceX", x, "sourceY", y)
		return candidate{x: x, y: y, cost: noCost, ok: true, phase: phaseLastResort}
	}
	return candidate{}
}

// propagate probes around the sources of already mapped neighbors, shifted
// back by the neighbor offset.
func (s *search) propagate(sc *scorer, best *candidate, p InpaintingPixel) {
	width, height := s.frame.Width(), s.frame.Height()
	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			nx, ny := p.X+ox, p.Y+oy
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			src := s.mapping.At(nx, ny)
			if !src.IsValid() {
				continue
			}
			cx, cy := int(src.X)-ox, int(src.Y)-oy
			for dy := -propagationRadius; dy <= propagationRadius; dy++ {
				for dx := -propagationRadius; dx <= propagationRadius; dx++ {
					s.try(sc, best, p.X, p.Y, cx+dx, cy+dy)
				}
			}
		}
	}
}

// guided samples offsets within 90 degrees of the border direction, which
// points into the resolved content.
func (s *search) guided(sc *scorer, best *candidate, p InpaintingPixel, rng *rand.Rand) {
	width, height := float64(s.frame.Width()), float64(s.frame.Height())
	maxLength := max(min(math.Hypot(width, height)/4, guidedMaxLength), 1)

	base := 0.0
	spread := math.Pi
	if p.BorderDirection.IsZero() {
		spread = 2 * math.Pi
	} else {
		base = math.Atan2(float64(p.BorderDirection.Y), float64(p.BorderDirection.X))
	}

	for range guidedSamples {
		angle := base + (rng.Float64()-0.5)*spread
		length := 1 + rng.Float64()*(maxLength-1)
		sx := p.X + int(math.Round(length*math.Cos(angle)))
		sy := p.Y + int(math.Round(length*math.Sin(angle)))
		s.try(sc, best, p.X, p.Y, sx, sy)
	}
}

// unguided refines best with random offsets around it whose radius anneals
// from the frame size down to one pixel.
func (s *search) unguided(sc *scorer, best *candidate, p InpaintingPixel, rng *rand.Rand) {
	maxRadius := float64(max(s.frame.Width(), s.frame.Height()))
	for i := range unguidedIterations {
		r := max(1, int(maxRadius*float64(unguidedIterations-i)/unguidedIterations))
		sx := best.x + rng.IntN(2*r+1) - r
		sy := best.y + rng.IntN(2*r+1) - r
		s.try(sc, best, p.X, p.Y, sx, sy)
	}
}

// bruteForce scans the search window, or the whole frame, in raster order.
func (s *search) bruteForce(sc *scorer, best *candidate, p InpaintingPixel) {
	left, top := 0, 0
	right, bottom := s.frame.Width()-1, s.frame.Height()-1
	if r := s.opts.SearchRadius; r > 0 {
		left, top = max(left, p.X-r), max(top, p.Y-r)
		right, bottom = min(right, p.X+r), min(bottom, p.Y+r)
	}
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			s.try(sc, best, p.X, p.Y, x, y)
		}
	}
}

// firstValid returns the first valid pixel in raster order, ignoring the
// search radius.
func (s *search) firstValid(p InpaintingPixel) (int, int, bool) {
	for y := range s.frame.Height() {
		row := s.mask.Row(y)
		for x, v := range row {
			if v != s.opts.MaskValue && (x != p.X || y != p.Y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
