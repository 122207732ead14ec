package image

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Load decodes the file at path into a frame, auto-detecting the file format.
// Supported: PNG, JPEG, BMP, TIFF, WebP.
func Load(path string, format Format) (*Frame, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, format)
}

// LoadMask decodes the file at path into a Y8 mask. Any channel layout is
// reduced to luminance.
func LoadMask(path string) (*Frame, error) {
	return Load(path, FormatY8)
}

// Decode decodes an image from r and converts it to the given format.
func Decode(r io.Reader, format Format) (*Frame, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img, format)
}

// FromStdImage converts a standard library image into a frame of the given
// format. Grayscale formats use the luminance of the source; the alpha channel
// is carried for YA8 and RGBA8.
func FromStdImage(img image.Image, format Format) (*Frame, error) {
	b := img.Bounds()
	rect := image.Rect(0, 0, b.Dx(), b.Dy())

	// Y8 and RGBA8 share the layout of the converted image and wrap its
	// buffer directly.
	switch format {
	case FormatY8:
		gray := image.NewGray(rect)
		draw.Draw(gray, rect, img, b.Min, draw.Src)
		return FromRaw(gray.Pix, b.Dx(), b.Dy(), format, gray.Stride-b.Dx())
	case FormatRGBA8:
		nrgba := image.NewNRGBA(rect)
		draw.Draw(nrgba, rect, img, b.Min, draw.Src)
		return FromRaw(nrgba.Pix, b.Dx(), b.Dy(), format, nrgba.Stride-4*b.Dx())
	}

	frame, err := NewFrame(b.Dx(), b.Dy(), format)
	if err != nil {
		return nil, err
	}
	nrgba := image.NewNRGBA(rect)
	draw.Draw(nrgba, rect, img, b.Min, draw.Src)
	for y := range frame.height {
		src := nrgba.Pix[y*nrgba.Stride:]
		row := frame.Row(y)
		for x := range frame.width {
			p := src[x*4 : x*4+4]
			switch format {
			case FormatYA8:
				l := color.GrayModel.Convert(color.NRGBA{R: p[0], G: p[1], B: p[2], A: 255}).(color.Gray)
				row[x*2] = l.Y
				row[x*2+1] = p[3]
			case FormatRGB8:
				copy(row[x*3:x*3+3], p[:3])
			}
		}
	}

	return frame, nil
}

// ToStdImage converts the frame to a standard library image.
// Y8 becomes *image.Gray, every other format becomes *image.NRGBA.
func (f *Frame) ToStdImage() image.Image {
	rect := image.Rect(0, 0, f.width, f.height)

	if f.format == FormatY8 {
		gray := image.NewGray(rect)
		for y := range f.height {
			copy(gray.Pix[y*gray.Stride:], f.Row(y))
		}
		return gray
	}

	nrgba := image.NewNRGBA(rect)
	for y := range f.height {
		row := f.Row(y)
		dst := nrgba.Pix[y*nrgba.Stride:]
		for x := range f.width {
			d := dst[x*4 : x*4+4]
			switch f.format {
			case FormatYA8:
				d[0], d[1], d[2], d[3] = row[x*2], row[x*2], row[x*2], row[x*2+1]
			case FormatRGB8:
				d[0], d[1], d[2], d[3] = row[x*3], row[x*3+1], row[x*3+2], 255
			case FormatRGBA8:
				copy(d, row[x*4:x*4+4])
			}
		}
	}
	return nrgba
}

// EncodePNG encodes the frame as PNG to w.
func (f *Frame) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, f.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the frame as a PNG file.
func (f *Frame) SavePNG(path string) error {
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := f.EncodePNG(out); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
