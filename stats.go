package inpaint

import (
	stdimage "image"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/gogpu/inpaint/internal/integral"
)

// RegionVariance returns the population variance of one channel of frame
// over r, clipped to the frame. An empty window has variance 0.
func RegionVariance(frame *Frame, r stdimage.Rectangle, channel int) (float64, error) {
	if frame == nil {
		return 0, ErrNilFrame
	}
	if channel < 0 || channel >= frame.Channels() {
		return 0, ErrInvalidChannel
	}
	return integral.NewLinedWithSquared(frame).Variance(channel, r), nil
}

// PooledVariance returns the population variance of one channel of frame
// over the union of the disjoint windows a and b, each clipped to the frame.
func PooledVariance(frame *Frame, a, b stdimage.Rectangle, channel int) (float64, error) {
	if frame == nil {
		return 0, ErrNilFrame
	}
	if channel < 0 || channel >= frame.Channels() {
		return 0, ErrInvalidChannel
	}
	if a.Overlaps(b) {
		return 0, ErrOverlappingWindows
	}
	return integral.NewLinedWithSquared(frame).Variance2(channel, a, b), nil
}

// OffsetStats summarizes the distances between filled pixels and their
// sources.
type OffsetStats struct {
	// Count is the number of valid mapping entries.
	Count int

	Mean   float64
	Median float64
	P90    float64
	Max    float64
	StdDev float64
}

// OffsetLengths returns the distance between every valid entry of m and
// its source, in raster order.
func OffsetLengths(m *Mapping) []float64 {
	if m == nil {
		return nil
	}
	lengths := make([]float64, 0, m.Count())
	for y := range m.Height() {
		for x := range m.Width() {
			p := m.At(x, y)
			if !p.IsValid() {
				continue
			}
			lengths = append(lengths, math.Hypot(float64(int(p.X)-x), float64(int(p.Y)-y)))
		}
	}
	return lengths
}

// MappingStatistics summarizes the offset lengths of every valid entry of m.
// A mapping without valid entries yields zero statistics.
func MappingStatistics(m *Mapping) (OffsetStats, error) {
	if m == nil {
		return OffsetStats{}, ErrNilFrame
	}

	lengths := stats.Float64Data(OffsetLengths(m))
	if len(lengths) == 0 {
		return OffsetStats{}, nil
	}

	var (
		s   = OffsetStats{Count: len(lengths)}
		err error
	)
	if s.Mean, err = lengths.Mean(); err != nil {
		return OffsetStats{}, err
	}
	if s.Median, err = lengths.Median(); err != nil {
		return OffsetStats{}, err
	}
	if s.P90, err = lengths.PercentileNearestRank(90); err != nil {
		return OffsetStats{}, err
	}
	if s.Max, err = lengths.Max(); err != nil {
		return OffsetStats{}, err
	}
	if s.StdDev, err = lengths.StandardDeviationPopulation(); err != nil {
		return OffsetStats{}, err
	}
	return s, nil
}
