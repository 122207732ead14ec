// Package mapping stores, for every pixel of a frame, the position its
// content was copied from.
package mapping

import (
	"errors"

	"github.com/gogpu/inpaint/internal/image"
)

// ErrIncompatible is returned when frame, mask and mapping sizes differ.
var ErrIncompatible = errors.New("mapping: incompatible dimensions")

// Position is a pixel location.
type Position struct {
	X, Y int32
}

// Invalid marks a pixel holding original content.
var Invalid = Position{X: -1, Y: -1}

// IsValid reports whether p refers to a pixel.
func (p Position) IsValid() bool {
	return p.X >= 0 && p.Y >= 0
}

// Pos converts integer coordinates to a Position.
func Pos(x, y int) Position {
	return Position{X: int32(x), Y: int32(y)}
}

// Mapping is a flat width x height array of source positions indexed by
// y*width+x.
//
// Thread safety: concurrent Set calls are safe when they target distinct
// pixels.
type Mapping struct {
	positions []Position
	width     int
	height    int
}

// New creates a mapping with every entry Invalid.
func New(width, height int) *Mapping {
	m := &Mapping{
		positions: make([]Position, width*height),
		width:     width,
		height:    height,
	}
	m.Reset()
	return m
}

// Width returns the mapping width.
func (m *Mapping) Width() int { return m.width }

// Height returns the mapping height.
func (m *Mapping) Height() int { return m.height }

// At returns the source position of (x, y).
func (m *Mapping) At(x, y int) Position {
	return m.positions[y*m.width+x]
}

// Set records p as the source of (x, y).
func (m *Mapping) Set(x, y int, p Position) {
	m.positions[y*m.width+x] = p
}

// Reset invalidates every entry.
func (m *Mapping) Reset() {
	for i := range m.positions {
		m.positions[i] = Invalid
	}
}

// Clone returns a deep copy.
func (m *Mapping) Clone() *Mapping {
	return &Mapping{
		positions: append([]Position(nil), m.positions...),
		width:     m.width,
		height:    m.height,
	}
}

// Count returns the number of valid entries.
func (m *Mapping) Count() int {
	n := 0
	for _, p := range m.positions {
		if p.IsValid() {
			n++
		}
	}
	return n
}

// SameSize reports whether f has the mapping's dimensions.
func (m *Mapping) SameSize(f *image.Frame) bool {
	return f != nil && f.Width() == m.width && f.Height() == m.height
}

// ApplyTo copies, for every pixel of mask holding maskValue with a valid
// entry, the mapped source pixel of frame into it and marks it valid. Sources
// are read before any pixel is written. Returns the number of pixels filled.
func (m *Mapping) ApplyTo(frame, mask *image.Frame, maskValue uint8) (int, error) {
	if !m.SameSize(frame) || !m.SameSize(mask) {
		return 0, ErrIncompatible
	}

	type fill struct {
		x, y  int
		color []byte
	}
	var fills []fill
	for y := range m.height {
		row := mask.Row(y)
		for x, v := range row {
			if v != maskValue {
				continue
			}
			p := m.At(x, y)
			if !p.IsValid() {
				continue
			}
			src := frame.Pixel(int(p.X), int(p.Y))
			if src == nil {
				continue
			}
			fills = append(fills, fill{x: x, y: y, color: append([]byte(nil), src...)})
		}
	}

	valid := image.ValidValue(maskValue)
	for _, f := range fills {
		copy(frame.Pixel(f.x, f.y), f.color)
		mask.SetMask(f.x, f.y, valid)
	}
	return len(fills), nil
}
