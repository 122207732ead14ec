// Command inpaint fills the unknown pixels of an image file.
//
// Usage:
//
//	inpaint -frame photo.png -mask hole.png -mask-value 255 -out filled.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/inpaint"
)

func main() {
	var (
		framePath  = flag.String("frame", "", "input image")
		maskPath   = flag.String("mask", "", "mask image, same size as the input")
		output     = flag.String("out", "inpainted.png", "output file")
		mappingOut = flag.String("mapping-out", "", "optional PNG visualizing pixel sources")
		chartOut   = flag.String("offset-chart", "", "optional PNG chart of source offset lengths")
		method     = flag.String("method", "pyramid", "erode4, erode8, random, patchmatch or pyramid")
		seed       = flag.Uint64("seed", 0, "random seed (drawn when not set)")
		noise      = flag.Int("noise", 0, "noise amplitude for erosion methods")
		radius     = flag.Int("radius", 0, "search radius for patch methods, 0 is unbounded")
		heuristic  = flag.Bool("heuristic", true, "propagation and random search before brute force")
		patch      = flag.Int("patch", inpaint.DefaultPatchSize, "patch size")
		layers     = flag.Int("layers", 0, "pyramid layers, 0 chooses automatically")
		workers    = flag.Int("workers", 1, "worker count, 0 uses all CPUs")
		maskValue  = flag.Uint("mask-value", 0, "mask value marking unknown pixels")
		channels   = flag.Int("channels", 3, "frame channels: 1 gray, 2 gray and alpha, 3 RGB, 4 RGBA")
		verbose    = flag.Bool("v", false, "debug logging")
		seedWasSet bool
	)
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedWasSet = true
		}
	})

	if *framePath == "" || *maskPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *maskValue > 0xFF {
		log.Fatalf("mask value %d is not a byte", *maskValue)
	}
	frameFormat, ok := inpaint.FormatForChannels(*channels)
	if !ok {
		log.Fatalf("unsupported channel count %d", *channels)
	}
	if *verbose {
		inpaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	frame, err := inpaint.Load(*framePath, frameFormat)
	if err != nil {
		log.Fatalf("Failed to load frame: %v", err)
	}
	mask, err := inpaint.LoadMask(*maskPath)
	if err != nil {
		log.Fatalf("Failed to load mask: %v", err)
	}

	opts := []inpaint.Option{
		inpaint.WithMaskValue(uint8(*maskValue)),
		inpaint.WithNoise(*noise),
		inpaint.WithSearchRadius(*radius),
		inpaint.WithHeuristic(*heuristic),
		inpaint.WithPatchSize(*patch),
		inpaint.WithLayers(*layers),
		inpaint.WithWorkers(*workers),
	}
	if seedWasSet {
		opts = append(opts, inpaint.WithSeed(*seed))
	}

	unknown := countUnknown(mask, uint8(*maskValue))
	start := time.Now()
	res, err := run(*method, frame, mask, opts)
	if err != nil {
		log.Fatalf("Failed to inpaint: %v", err)
	}
	elapsed := time.Since(start)

	if err := frame.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *mappingOut != "" && res.Mapping != nil {
		if err := saveMapping(res.Mapping, *mappingOut); err != nil {
			log.Fatalf("Failed to save mapping: %v", err)
		}
	}

	if *chartOut != "" && res.Mapping != nil {
		if err := saveOffsetChart(res.Mapping, *framePath, *chartOut); err != nil {
			log.Fatalf("Failed to save chart: %v", err)
		}
	}

	report(res, unknown, elapsed, *output)
}

// run dispatches to the selected method. Erosion methods report no mapping.
func run(method string, frame, mask *inpaint.Frame, opts []inpaint.Option) (*inpaint.Result, error) {
	switch method {
	case "erode4", "erode8":
		n := inpaint.Neighborhood8
		if method == "erode4" {
			n = inpaint.Neighborhood4
		}
		err := inpaint.ShrinkMask(frame, mask, append(opts, inpaint.WithNeighborhood(n))...)
		return &inpaint.Result{Layers: 1}, err
	case "random":
		seed, err := inpaint.ShrinkMaskRandom(frame, mask, opts...)
		return &inpaint.Result{Layers: 1, Seed: seed}, err
	case "patchmatch":
		return inpaint.PatchMatch(frame, mask, opts...)
	case "pyramid":
		return inpaint.Inpaint(frame, mask, opts...)
	}
	return nil, errors.New("unknown method " + method)
}

func countUnknown(mask *inpaint.Frame, maskValue uint8) int {
	n := 0
	for y := range mask.Height() {
		for _, v := range mask.Row(y) {
			if v == maskValue {
				n++
			}
		}
	}
	return n
}

func report(res *inpaint.Result, unknown int, elapsed time.Duration, output string) {
	p := message.NewPrinter(language.English)
	p.Printf("Filled %d pixels in %v, saved to %s\n", unknown, elapsed.Round(time.Millisecond), output)
	if res.Mapping == nil {
		if res.Seed != 0 {
			p.Printf("Seed: %d\n", res.Seed)
		}
		return
	}
	p.Printf("Layers: %d, iterations: %d, refined: %d, brute force: %d, last resort: %d\n",
		res.Layers, res.Iterations, res.Refined, res.BruteForce, res.LastResort)
	p.Printf("Seed: %d\n", res.Seed)

	s, err := inpaint.MappingStatistics(res.Mapping)
	if err != nil || s.Count == 0 {
		return
	}
	p.Printf("Source offsets: mean %.1f, median %.1f, p90 %.1f, max %.1f px\n", s.Mean, s.Median, s.P90, s.Max)
}

// mappingImage renders the mapping as an RGB frame: red and green encode the
// horizontal and vertical offset around 128, blue marks filled pixels.
func mappingImage(m *inpaint.Mapping) (*inpaint.Frame, error) {
	f, err := inpaint.NewFrame(m.Width(), m.Height(), inpaint.FormatRGB8)
	if err != nil {
		return nil, err
	}
	f.Fill(128, 128, 0)
	for y := range m.Height() {
		for x := range m.Width() {
			p := m.At(x, y)
			if !p.IsValid() {
				continue
			}
			px := f.Pixel(x, y)
			px[0] = offsetByte(int(p.X) - x)
			px[1] = offsetByte(int(p.Y) - y)
			px[2] = 0xFF
		}
	}
	return f, nil
}

func saveMapping(m *inpaint.Mapping, path string) error {
	f, err := mappingImage(m)
	if err != nil {
		return err
	}
	if err := f.SavePNG(path); err != nil {
		return fmt.Errorf("mapping image: %w", err)
	}
	return nil
}

func offsetByte(d int) uint8 {
	return uint8(min(max(128+d, 0), 255))
}
