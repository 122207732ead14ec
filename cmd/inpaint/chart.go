package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/gogpu/inpaint"
)

const maxBins = 64

// histogram counts offset lengths in unit wide bins, merging bins so that
// at most maxBins remain. It returns the lower bin edges and the counts.
func histogram(lengths []float64) (edges, counts []float64) {
	if len(lengths) == 0 {
		return nil, nil
	}
	longest := 0.0
	for _, l := range lengths {
		longest = math.Max(longest, l)
	}
	width := math.Max(1, math.Ceil((longest+1)/maxBins))
	bins := int(longest/width) + 1
	// a line needs two points
	bins = max(bins, 2)

	edges = make([]float64, bins)
	counts = make([]float64, bins)
	for i := range edges {
		edges[i] = float64(i) * width
	}
	for _, l := range lengths {
		counts[min(int(l/width), bins-1)]++
	}
	return edges, counts
}

// writeOffsetChart renders the distribution of source offsets as a PNG.
func writeOffsetChart(m *inpaint.Mapping, title string, w io.Writer) error {
	edges, counts := histogram(inpaint.OffsetLengths(m))
	if len(edges) < 2 {
		return errors.New("no filled pixels to chart")
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			Name: "Offset length (px)",
		},
		YAxis: chart.YAxis{
			Name: "Pixels",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorAlternateBlue,
				},
				XValues: edges,
				YValues: counts,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

func saveOffsetChart(m *inpaint.Mapping, title, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("offset chart: %w", err)
	}
	if err := writeOffsetChart(m, title, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("offset chart: %w", err)
	}
	return f.Close()
}
