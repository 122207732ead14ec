package filter

import (
	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/parallel"
)

// Sobel holds the signed horizontal and vertical Sobel responses of every
// pixel and channel of a frame, stored as gx0, gy0, gx1, gy1, ... per pixel.
//
// Pixels on the frame border have zero responses because the 3x3 kernel
// needs all 8 neighbors.
type Sobel struct {
	data     []int16
	width    int
	height   int
	channels int
}

// NewSobel computes the Sobel responses of frame.
func NewSobel(frame *image.Frame, pool *parallel.WorkerPool) *Sobel {
	s := &Sobel{
		data:     make([]int16, frame.Pixels()*2*frame.Channels()),
		width:    frame.Width(),
		height:   frame.Height(),
		channels: frame.Channels(),
	}
	s.Compute(frame, pool)
	return s
}

// Width returns the frame width.
func (s *Sobel) Width() int { return s.width }

// Height returns the frame height.
func (s *Sobel) Height() int { return s.height }

// Channels returns the frame channel count.
func (s *Sobel) Channels() int { return s.channels }

// At returns the 2*channels responses of (x, y). The slice aliases s.
func (s *Sobel) At(x, y int) []int16 {
	n := 2 * s.channels
	i := (y*s.width + x) * n
	return s.data[i : i+n]
}

// Compute recomputes every response from frame, which must have the
// dimensions s was created with.
func (s *Sobel) Compute(frame *image.Frame, pool *parallel.WorkerPool) {
	parallel.Rows(pool, 0, s.height, parallel.DefaultMinRows, func(first, count int) {
		for y := first; y < first+count; y++ {
			for x := range s.width {
				s.computePixel(frame, x, y)
			}
		}
	})
}

// UpdateAround recomputes the responses of the 3x3 neighborhood of (x, y)
// after that pixel of frame changed.
func (s *Sobel) UpdateAround(frame *image.Frame, x, y int) {
	for ny := max(0, y-1); ny <= min(s.height-1, y+1); ny++ {
		for nx := max(0, x-1); nx <= min(s.width-1, x+1); nx++ {
			s.computePixel(frame, nx, ny)
		}
	}
}

func (s *Sobel) computePixel(frame *image.Frame, x, y int) {
	out := s.At(x, y)
	if x == 0 || y == 0 || x == s.width-1 || y == s.height-1 {
		clear(out)
		return
	}

	top := frame.Row(y - 1)
	mid := frame.Row(y)
	bot := frame.Row(y + 1)
	ch := s.channels
	l := (x - 1) * ch
	r := (x + 1) * ch
	c := x * ch

	for i := range ch {
		gx := int(top[r+i]) + 2*int(mid[r+i]) + int(bot[r+i]) -
			int(top[l+i]) - 2*int(mid[l+i]) - int(bot[l+i])
		gy := int(bot[l+i]) + 2*int(bot[c+i]) + int(bot[r+i]) -
			int(top[l+i]) - 2*int(top[c+i]) - int(top[r+i])
		out[2*i] = int16(gx)
		out[2*i+1] = int16(gy)
	}
}
