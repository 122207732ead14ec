package main

import (
	"bytes"
	"slices"
	"testing"

	"github.com/gogpu/inpaint"
)

func TestHistogram(t *testing.T) {
	tests := []struct {
		name       string
		lengths    []float64
		wantEdges  []float64
		wantCounts []float64
	}{
		{"empty", nil, nil, nil},
		{"unit bins", []float64{1, 1, 2, 3.5}, []float64{0, 1, 2, 3}, []float64{0, 2, 1, 1}},
		{"single bin padded", []float64{0}, []float64{0, 1}, []float64{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, counts := histogram(tt.lengths)
			if !slices.Equal(edges, tt.wantEdges) || !slices.Equal(counts, tt.wantCounts) {
				t.Errorf("histogram() = %v, %v, want %v, %v", edges, counts, tt.wantEdges, tt.wantCounts)
			}
		})
	}
}

func TestHistogram_MergesBins(t *testing.T) {
	lengths := make([]float64, 0, 201)
	for i := range 201 {
		lengths = append(lengths, float64(i))
	}
	edges, counts := histogram(lengths)
	if len(edges) > maxBins {
		t.Errorf("bins = %d, want at most %d", len(edges), maxBins)
	}
	var total float64
	for _, c := range counts {
		total += c
	}
	if total != 201 {
		t.Errorf("counted %v lengths, want 201", total)
	}
}

func TestWriteOffsetChart(t *testing.T) {
	m := inpaint.NewMapping(8, 8)
	m.Set(1, 1, inpaint.Position{X: 5, Y: 1})
	m.Set(2, 2, inpaint.Position{X: 2, Y: 7})
	m.Set(3, 3, inpaint.Position{X: 0, Y: 0})

	var buf bytes.Buffer
	if err := writeOffsetChart(m, "offsets", &buf); err != nil {
		t.Fatalf("writeOffsetChart() = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	if err := writeOffsetChart(inpaint.NewMapping(4, 4), "empty", &buf); err == nil {
		t.Error("writeOffsetChart() on an empty mapping should fail")
	}
}

func TestMappingImage(t *testing.T) {
	m := inpaint.NewMapping(3, 2)
	m.Set(2, 1, inpaint.Position{X: 0, Y: 0})

	f, err := mappingImage(m)
	if err != nil {
		t.Fatalf("mappingImage() = %v", err)
	}
	tests := []struct {
		x, y int
		want []byte
	}{
		{0, 0, []byte{128, 128, 0}},
		{1, 1, []byte{128, 128, 0}},
		{2, 1, []byte{126, 127, 0xFF}},
	}
	for _, tt := range tests {
		if got := f.Pixel(tt.x, tt.y); !bytes.Equal(got, tt.want) {
			t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestOffsetByte(t *testing.T) {
	tests := []struct {
		d    int
		want uint8
	}{
		{0, 128},
		{-5, 123},
		{127, 255},
		{-300, 0},
		{300, 255},
	}
	for _, tt := range tests {
		if got := offsetByte(tt.d); got != tt.want {
			t.Errorf("offsetByte(%d) = %d, want %d", tt.d, got, tt.want)
		}
	}
}
