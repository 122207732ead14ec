package integral

import (
	stdimage "image"

	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/parallel"
)

// Lined holds the lined integral image of an 8-bit frame, and optionally its
// squared counterpart, for rectangle queries in frame coordinates.
type Lined struct {
	sum      []uint32
	squared  []uint64
	width    int
	height   int
	channels int
	stride   int

	// indicator is the 0/1 image of a mask table, kept for UpdateMask.
	indicator []uint8
}

// NewLinedWithSquared builds the lined integral image and the lined squared
// integral image of frame, enabling Variance queries.
func NewLinedWithSquared(frame *image.Frame) *Lined {
	l := newLined(frame.Width(), frame.Height(), frame.Channels())
	l.squared = make([]uint64, len(l.sum))
	CreateLinedImageAndSquaredSeparate(frame.Data(), l.sum, l.squared, l.width, l.height, l.channels, frame.PaddingElements(), 0, 0)
	return l
}

// NewLinedMask builds a single channel table counting the pixels of mask
// that hold value.
func NewLinedMask(mask *image.Frame, value uint8, pool *parallel.WorkerPool) *Lined {
	l := newLined(mask.Width(), mask.Height(), 1)
	l.UpdateMask(mask, value, pool)
	return l
}

func newLined(width, height, channels int) *Lined {
	stride := LinedStride(width, channels, 0)
	return &Lined{
		sum:      make([]uint32, stride*(height+1)),
		width:    width,
		height:   height,
		channels: channels,
		stride:   stride,
	}
}

// UpdateMask rebuilds a mask table in place after the mask changed. The
// indicator buffer is reused across calls, so concurrent updates of one
// table are not allowed.
func (l *Lined) UpdateMask(mask *image.Frame, value uint8, pool *parallel.WorkerPool) {
	if len(l.indicator) != l.width*l.height {
		l.indicator = make([]uint8, l.width*l.height)
	}
	indicator := l.indicator
	parallel.Rows(pool, 0, l.height, parallel.DefaultMinRows, func(first, count int) {
		for y := first; y < first+count; y++ {
			row := mask.Row(y)
			dst := indicator[y*l.width : (y+1)*l.width]
			for x, v := range row {
				if v == value {
					dst[x] = 1
				} else {
					dst[x] = 0
				}
			}
		}
	})
	CreateLinedImageWorker(indicator, l.sum, l.width, l.height, 1, 0, 0, pool)
}

// Width returns the width of the source frame.
func (l *Lined) Width() int { return l.width }

// Height returns the height of the source frame.
func (l *Lined) Height() int { return l.height }

// Channels returns the channel count of the source frame.
func (l *Lined) Channels() int { return l.channels }

// clip intersects r with the frame; ok is false for an empty result.
func (l *Lined) clip(r stdimage.Rectangle) (stdimage.Rectangle, bool) {
	r = r.Intersect(stdimage.Rect(0, 0, l.width, l.height))
	return r, !r.Empty()
}

// Sum returns the sum of channel over r, clipped to the frame.
func (l *Lined) Sum(channel int, r stdimage.Rectangle) uint32 {
	r, ok := l.clip(r)
	if !ok {
		return 0
	}
	return LinedIntegralSum(l.sum, l.stride, l.channels, channel, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Count returns the number of counted pixels in r for a mask table.
func (l *Lined) Count(r stdimage.Rectangle) int {
	return int(l.Sum(0, r))
}

// Mean returns the mean of channel over r, clipped to the frame.
// Returns 0 for an empty window.
func (l *Lined) Mean(channel int, r stdimage.Rectangle) float64 {
	r, ok := l.clip(r)
	if !ok {
		return 0
	}
	return float64(l.Sum(channel, r)) / float64(r.Dx()*r.Dy())
}

// Variance returns the population variance of channel over r, clipped to the
// frame. Returns 0 for an empty window or a table without squared sums.
func (l *Lined) Variance(channel int, r stdimage.Rectangle) float64 {
	r, ok := l.clip(r)
	if !ok || l.squared == nil {
		return 0
	}
	return LinedIntegralVariance(l.sum, l.squared, l.stride, l.stride, l.channels, channel, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Variance2 returns the pooled population variance of channel over the two
// windows a and b, each clipped to the frame. The windows must be disjoint.
func (l *Lined) Variance2(channel int, a, b stdimage.Rectangle) float64 {
	if l.squared == nil {
		return 0
	}
	a, okA := l.clip(a)
	b, okB := l.clip(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return l.Variance(channel, b)
	case !okB:
		return l.Variance(channel, a)
	}
	return LinedIntegralVariance2(l.sum, l.squared, l.stride, l.stride, l.channels, channel,
		a.Min.X, a.Min.Y, a.Dx(), a.Dy(), b.Min.X, b.Min.Y, b.Dx(), b.Dy())
}
