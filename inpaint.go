package inpaint

import (
	"github.com/gogpu/inpaint/internal/filter"
	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/mapping"
	"github.com/gogpu/inpaint/internal/parallel"
	"github.com/gogpu/inpaint/internal/patchmatch"
	"github.com/gogpu/inpaint/internal/shrink"
)

// Frame is an 8-bit image with 1 to 4 interleaved channels and optional row
// padding. A mask is a FormatY8 frame.
type Frame = image.Frame

// Format describes the channel layout of a Frame.
type Format = image.Format

// Frame formats.
const (
	FormatY8    = image.FormatY8
	FormatYA8   = image.FormatYA8
	FormatRGB8  = image.FormatRGB8
	FormatRGBA8 = image.FormatRGBA8
)

// Mapping records, per pixel, the source position a filled pixel was copied
// from. Pixels that were not filled hold an invalid position.
type Mapping = mapping.Mapping

// Position is a pixel position in a Mapping.
type Position = mapping.Position

// NewFrame creates a zeroed frame.
func NewFrame(width, height int, format Format) (*Frame, error) {
	return image.NewFrame(width, height, format)
}

// FormatForChannels returns the frame format with the given channel count.
func FormatForChannels(channels int) (Format, bool) {
	return image.FormatForChannels(channels)
}

// NewMask creates a mask with every pixel set to value.
func NewMask(width, height int, value uint8) (*Frame, error) {
	return image.NewMask(width, height, 0, value)
}

// NewMapping creates a mapping with every position invalid.
func NewMapping(width, height int) *Mapping {
	return mapping.New(width, height)
}

// Load decodes an image file (PNG, JPEG, GIF, BMP, TIFF or WebP) into a frame
// of the given format.
func Load(path string, format Format) (*Frame, error) {
	return image.Load(path, format)
}

// LoadMask decodes an image file into a single channel mask.
func LoadMask(path string) (*Frame, error) {
	return image.LoadMask(path)
}

// Result reports the outcome of PatchMatch and Inpaint.
type Result struct {
	// Mapping holds the source of every filled pixel of the finest layer.
	Mapping *Mapping

	// Pixels is the number of pixels filled on the finest layer.
	Pixels int

	// Layers is the number of pyramid layers used.
	Layers int

	// Iterations is the number of priority queue rebuilds, summed over all
	// layers.
	Iterations int

	// Refined is the number of pixels of finer layers whose adapted source
	// was rejected and matched again.
	Refined int

	// BruteForce counts pixels resolved by the exhaustive search.
	BruteForce int

	// LastResort counts pixels that copied the first valid pixel because no
	// search found a source.
	LastResort int

	// Seed is the seed the run used.
	Seed uint64
}

func (r *Result) add(s patchmatch.Stats) {
	r.Iterations += s.Iterations
	r.BruteForce += s.BruteForce
	r.LastResort += s.LastResort
}

// ShrinkMask fills every unknown pixel of frame by eroding mask one ring at
// a time; each filled pixel gets the weighted average of its valid
// neighbors. Frame and mask are updated in place, and on success every mask
// pixel is valid.
//
// The result does not depend on the number of workers.
func ShrinkMask(frame, mask *Frame, opts ...Option) error {
	if err := validate(frame, mask); err != nil {
		return err
	}
	o := newOptions(opts)
	pool := o.pool()
	defer pool.Close()

	res, err := shrink.ShrinkMask(frame, mask, o.shrinkOptions(pool))
	if err != nil {
		return wrapError("shrink mask", err)
	}
	Logger().Debug("inpaint: mask shrunk", "rings", res.Rings, "pixels", res.Pixels)
	return nil
}

// ShrinkMaskRandom fills every unknown pixel of frame in random order, one
// border pixel at a time, each from the average of its valid 8-neighbors.
// Frame and mask are updated in place.
//
// The returned seed replays the run with WithSeed.
func ShrinkMaskRandom(frame, mask *Frame, opts ...Option) (uint64, error) {
	if err := validate(frame, mask); err != nil {
		return 0, err
	}
	o := newOptions(opts)

	res, err := shrink.ShrinkMaskRandom(frame, mask, o.shrinkOptions(nil))
	if err != nil {
		return o.seed, wrapError("shrink mask randomly", err)
	}
	Logger().Debug("inpaint: mask shrunk randomly", "pixels", res.Pixels, "seed", o.seed)
	return o.seed, nil
}

// PatchMatch fills every unknown pixel of frame on a single layer. Border
// pixels are resolved in priority order, strongest structure first, each
// copying the valid pixel whose surrounding patch matches best. Frame and
// mask are updated in place.
func PatchMatch(frame, mask *Frame, opts ...Option) (*Result, error) {
	if err := validate(frame, mask); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	pool := o.pool()
	defer pool.Close()

	res := &Result{
		Mapping: mapping.New(frame.Width(), frame.Height()),
		Layers:  1,
		Seed:    o.seed,
	}
	stats, err := patchmatch.ShrinkingPatchMatching(frame, mask, res.Mapping, o.patchOptions(pool, 0))
	if err != nil {
		return nil, wrapError("patch match", err)
	}
	res.Pixels = stats.Pixels
	res.add(stats)
	return res, nil
}

// Inpaint fills every unknown pixel of frame using an image pyramid. The
// coarsest layer is solved by patch matching; every finer layer starts from
// the coarser mapping scaled by two, and pixels whose coarse neighborhood
// disagrees on the scaled source are matched again (see WithRefinement).
// Frame and mask are updated in place.
func Inpaint(frame, mask *Frame, opts ...Option) (*Result, error) {
	if err := validate(frame, mask); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	log := Logger()

	res := &Result{
		Mapping: mapping.New(frame.Width(), frame.Height()),
		Layers:  1,
		Seed:    o.seed,
	}
	unknown := image.CountMaskPixels(mask, o.maskValue)
	if unknown == 0 {
		return res, nil
	}
	if unknown == frame.Pixels() {
		return nil, ErrNoValidPixels
	}

	pool := o.pool()
	defer pool.Close()

	layers := o.layers
	if layers == 0 {
		layers = autoLayers(mask, o.maskValue)
	}
	frames, masks, err := pyramid(frame, mask, o.maskValue, layers, pool)
	if err != nil {
		return nil, wrapError("inpaint", err)
	}
	res.Layers = len(frames)

	top := len(frames) - 1
	m := mapping.New(frames[top].Width(), frames[top].Height())
	stats, err := patchmatch.ShrinkingPatchMatching(frames[top], masks[top], m, o.patchOptions(pool, top))
	if err != nil {
		return nil, wrapError("inpaint", err)
	}
	res.add(stats)
	log.Debug("inpaint: coarsest layer resolved", "layer", top, "pixels", stats.Pixels)

	for layer := top - 1; layer >= 0; layer-- {
		f, mk := frames[layer], masks[layer]
		pending := image.CountMaskPixels(mk, o.maskValue)

		fine, cost, err := patchmatch.CoarserMappingAdaption(m, mk, o.adaptionOptions(pool, layer))
		if err != nil {
			return nil, wrapError("inpaint", err)
		}
		if cost != nil {
			for y := range f.Height() {
				for x, v := range cost.Row(y) {
					if v == 0x00 && mk.MaskAt(x, y) == o.maskValue {
						fine.Set(x, y, mapping.Invalid)
					}
				}
			}
		}
		adapted, err := fine.ApplyTo(f, mk, o.maskValue)
		if err != nil {
			return nil, wrapError("inpaint", err)
		}

		if adapted < pending {
			stats, err := patchmatch.ShrinkingPatchMatching(f, mk, fine, o.patchOptions(pool, layer))
			if err != nil {
				return nil, wrapError("inpaint", err)
			}
			res.add(stats)
			res.Refined += stats.Pixels
		}
		log.Debug("inpaint: layer resolved", "layer", layer, "adapted", adapted, "refined", pending-adapted)

		m = fine
	}

	res.Mapping = m
	res.Pixels = unknown
	return res, nil
}

// minLayerSize is the smallest edge length of a coarse pyramid layer.
const minLayerSize = 16

// maxHoleSize is the hole extent at which the pyramid stops growing.
const maxHoleSize = 8

// autoLayers returns the number of layers needed to shrink the bounding box
// of the unknown pixels to at most maxHoleSize, without any layer edge
// falling below minLayerSize.
func autoLayers(mask *Frame, maskValue uint8) int {
	bounds, ok := image.MaskBoundingBox(mask, maskValue)
	if !ok {
		return 1
	}
	w, h := mask.Width(), mask.Height()
	bw, bh := bounds.Dx(), bounds.Dy()
	layers := 1
	for min(bw, bh) > maxHoleSize {
		cw, ch := filter.CoarserSize(w, h)
		if min(cw, ch) < minLayerSize {
			break
		}
		w, h = cw, ch
		bw, bh = (bw+1)/2, (bh+1)/2
		layers++
	}
	return layers
}

// pyramid returns up to layers frames and masks, finest first. The finest
// entries are frame and mask themselves. The pyramid stops early when a
// coarser mask would hold no valid pixel.
func pyramid(frame, mask *Frame, maskValue uint8, layers int, pool *parallel.WorkerPool) ([]*Frame, []*Frame, error) {
	frames := []*Frame{frame}
	masks := []*Frame{mask}
	for len(frames) < layers {
		f, m := frames[len(frames)-1], masks[len(masks)-1]
		if f.Width() == 1 && f.Height() == 1 {
			break
		}
		cm, err := filter.DownsampleMask(m, maskValue, pool)
		if err != nil {
			return nil, nil, err
		}
		if image.CountMaskPixels(cm, maskValue) == cm.Pixels() {
			break
		}
		cf, err := filter.DownsampleMasked(f, m, maskValue, pool)
		if err != nil {
			return nil, nil, err
		}
		frames = append(frames, cf)
		masks = append(masks, cm)
	}
	return frames, masks, nil
}

func (o *options) shrinkOptions(pool *parallel.WorkerPool) shrink.Options {
	return shrink.Options{
		MaskValue:    o.maskValue,
		Neighborhood: o.neighborhood,
		Noise:        o.noise,
		Seed:         o.seed,
		Pool:         pool,
		Logger:       Logger(),
	}
}

// layerSeed decorrelates the random streams of pyramid layers.
func layerSeed(seed uint64, layer int) uint64 {
	return seed + uint64(layer)*0x9E3779B97F4A7C15
}

func (o *options) patchOptions(pool *parallel.WorkerPool, layer int) patchmatch.Options {
	radius := o.searchRadius
	if radius > 0 {
		radius = max(radius>>layer, 1)
	}
	return patchmatch.Options{
		MaskValue:     o.maskValue,
		PatchSize:     o.patchSize,
		SearchRadius:  radius,
		Heuristic:     o.heuristic,
		IgnoreUnknown: o.ignoreUnknown,
		Seed:          layerSeed(o.seed, layer),
		Pool:          pool,
		Logger:        Logger(),
	}
}

func (o *options) adaptionOptions(pool *parallel.WorkerPool, layer int) patchmatch.AdaptionOptions {
	return patchmatch.AdaptionOptions{
		Factor:           2,
		MaskValue:        o.maskValue,
		Seed:             layerSeed(o.seed, layer) ^ 0xA5A5A5A5A5A5A5A5,
		SpatialCost:      o.costNeighborhood > 0,
		CostNeighborhood: o.costNeighborhood,
		Pool:             pool,
	}
}
