package patchmatch

import (
	"container/heap"

	"github.com/gogpu/inpaint/internal/filter"
	"github.com/gogpu/inpaint/internal/image"
)

// Vector is an integer 2D vector.
type Vector struct {
	X, Y int
}

// Perpendicular returns v rotated by 90 degrees, (-y, x).
func (v Vector) Perpendicular() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) int {
	return v.X*w.X + v.Y*w.Y
}

// IsZero reports whether v is the zero vector.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// fullyValid reports whether the 3x3 neighborhood of (x, y) lies inside the
// mask and holds valid pixels only.
func fullyValid(mask *image.Frame, x, y int, maskValue uint8) bool {
	if x < 1 || y < 1 || x >= mask.Width()-1 || y >= mask.Height()-1 {
		return false
	}
	for ny := y - 1; ny <= y+1; ny++ {
		row := mask.Row(ny)
		for nx := x - 1; nx <= x+1; nx++ {
			if row[nx] == maskValue {
				return false
			}
		}
	}
	return true
}

// BorderDirection returns the sum of the offsets (dx, dy), |dx|, |dy| <= 2,
// of all cells around (x, y) whose 3x3 neighborhood is entirely valid. The
// result points towards the bulk of nearby resolved content.
func BorderDirection(mask *image.Frame, x, y int, maskValue uint8) Vector {
	var d Vector
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if fullyValid(mask, x+dx, y+dy, maskValue) {
				d.X += dx
				d.Y += dy
			}
		}
	}
	return d
}

// ImageOrientation returns the sum of the Sobel responses, over all channels,
// of the cells around (x, y) that qualify for BorderDirection. Every
// response is flipped so its horizontal component is non-negative, which
// keeps the edge direction and drops its polarity.
func ImageOrientation(sobel *filter.Sobel, mask *image.Frame, x, y int, maskValue uint8) Vector {
	var o Vector
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !fullyValid(mask, x+dx, y+dy, maskValue) {
				continue
			}
			r := sobel.At(x+dx, y+dy)
			for c := 0; c < len(r); c += 2 {
				gx, gy := int(r[c]), int(r[c+1])
				if gx < 0 {
					gx, gy = -gx, -gy
				}
				o.X += gx
				o.Y += gy
			}
		}
	}
	return o
}

// InpaintingPixel is an unknown border pixel with its fill priority.
type InpaintingPixel struct {
	X, Y            int
	BorderDirection Vector
	Orientation     Vector
	Priority        uint64
}

// NewInpaintingPixel computes the border direction, the image orientation
// and the priority |perp(orientation) . borderDirection| of (x, y). Pixels
// continuing a strong edge into the unknown region rank highest.
func NewInpaintingPixel(mask *image.Frame, sobel *filter.Sobel, x, y int, maskValue uint8) InpaintingPixel {
	d := BorderDirection(mask, x, y, maskValue)
	o := ImageOrientation(sobel, mask, x, y, maskValue)
	p := o.Perpendicular().Dot(d)
	if p < 0 {
		p = -p
	}
	return InpaintingPixel{
		X:               x,
		Y:               y,
		BorderDirection: d,
		Orientation:     o,
		Priority:        uint64(p),
	}
}

// Queue orders inpainting pixels by descending priority. Ties are broken by
// ascending linear index y*width+x, so equal priorities pop in raster order.
type Queue struct {
	h pixelHeap
}

// NewQueue creates an empty queue for a frame of the given width.
func NewQueue(width int) *Queue {
	return &Queue{h: pixelHeap{width: width}}
}

// Len returns the number of queued pixels.
func (q *Queue) Len() int { return len(q.h.items) }

// Push adds p.
func (q *Queue) Push(p InpaintingPixel) { heap.Push(&q.h, p) }

// Pop removes and returns the pixel to fill next.
func (q *Queue) Pop() InpaintingPixel { return heap.Pop(&q.h).(InpaintingPixel) }

// Peek returns the pixel to fill next without removing it.
func (q *Queue) Peek() InpaintingPixel { return q.h.items[0] }

// BorderPixels builds a queue holding every unknown pixel of mask with at
// least one valid 8-neighbor.
func BorderPixels(mask *image.Frame, sobel *filter.Sobel, maskValue uint8) *Queue {
	q := NewQueue(mask.Width())
	bounds, ok := image.MaskBoundingBox(mask, maskValue)
	if !ok {
		return q
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := mask.Row(y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if row[x] == maskValue && image.IsBorderPixel(mask, x, y, maskValue) {
				q.h.items = append(q.h.items, NewInpaintingPixel(mask, sobel, x, y, maskValue))
			}
		}
	}
	heap.Init(&q.h)
	return q
}

// pixelHeap implements heap.Interface.
type pixelHeap struct {
	items []InpaintingPixel
	width int
}

func (h *pixelHeap) Len() int { return len(h.items) }

func (h *pixelHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Y*h.width+a.X < b.Y*h.width+b.X
}

func (h *pixelHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *pixelHeap) Push(x any) { h.items = append(h.items, x.(InpaintingPixel)) }

func (h *pixelHeap) Pop() any {
	old := h.items
	n := len(old)
	p := old[n-1]
	h.items = old[:n-1]
	return p
}
