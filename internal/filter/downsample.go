package filter

import (
	"github.com/gogpu/inpaint/internal/image"
	"github.com/gogpu/inpaint/internal/integral"
	"github.com/gogpu/inpaint/internal/parallel"
)

// pyramidKernelSize is the tap count of the pyramid filter, [1 4 6 4 1].
const pyramidKernelSize = 5

// CoarserSize returns the dimensions of the next pyramid layer.
func CoarserSize(width, height int) (int, int) {
	return (width + 1) / 2, (height + 1) / 2
}

// DownsampleMasked returns frame filtered with a 5x5 binomial kernel and
// halved in both dimensions. Samples outside the frame are mirrored. Only the
// valid pixels of mask contribute: the kernel weights of unknown pixels are
// dropped and the remaining weights renormalized. Coarse pixels without any
// valid sample are zero.
func DownsampleMasked(frame, mask *image.Frame, maskValue uint8, pool *parallel.WorkerPool) (*image.Frame, error) {
	if !frame.SameSize(mask) {
		return nil, image.ErrIncompatible
	}
	return downsample(frame, mask, maskValue, pool)
}

func downsample(frame, mask *image.Frame, maskValue uint8, pool *parallel.WorkerPool) (*image.Frame, error) {
	width, height := frame.Width(), frame.Height()
	cw, ch := CoarserSize(width, height)
	coarse, err := image.NewFrame(cw, ch, frame.Format())
	if err != nil {
		return nil, err
	}

	kernel, _ := CachedBinomialKernel(pyramidKernelSize)
	half := KernelCenter(len(kernel))
	channels := frame.Channels()

	parallel.Rows(pool, 0, ch, parallel.DefaultMinRows, func(first, count int) {
		sums := make([]uint32, channels)
		for cy := first; cy < first+count; cy++ {
			dst := coarse.Row(cy)
			for cx := range cw {
				clear(sums)
				var weight uint32
				for ky, wy := range kernel {
					sy := sampleIndex(2*cy+ky-half, height)
					row := frame.Row(sy)
					for kx, wx := range kernel {
						sx := sampleIndex(2*cx+kx-half, width)
						if mask.MaskAt(sx, sy) == maskValue {
							continue
						}
						w := wy * wx
						weight += w
						for c := range channels {
							sums[c] += w * uint32(row[sx*channels+c])
						}
					}
				}
				if weight == 0 {
					continue
				}
				for c := range channels {
					dst[cx*channels+c] = uint8((sums[c] + weight/2) / weight)
				}
			}
		}
	})

	return coarse, nil
}

// sampleIndex mirrors i into [0, n), clamping for frames narrower than the
// kernel radius.
func sampleIndex(i, n int) int {
	return min(max(integral.MirrorIndex(i, n), 0), n-1)
}

// DownsampleMask halves mask in both dimensions. A coarse pixel holds
// maskValue when any pixel of its 2x2 fine block does, and the valid value
// otherwise.
func DownsampleMask(mask *image.Frame, maskValue uint8, pool *parallel.WorkerPool) (*image.Frame, error) {
	width, height := mask.Width(), mask.Height()
	cw, ch := CoarserSize(width, height)
	valid := image.ValidValue(maskValue)
	coarse, err := image.NewMask(cw, ch, 0, valid)
	if err != nil {
		return nil, err
	}

	parallel.Rows(pool, 0, ch, parallel.DefaultMinRows, func(first, count int) {
		for cy := first; cy < first+count; cy++ {
			for cx := range cw {
				unknown := false
				for fy := 2 * cy; fy < min(2*cy+2, height) && !unknown; fy++ {
					for fx := 2 * cx; fx < min(2*cx+2, width); fx++ {
						if mask.MaskAt(fx, fy) == maskValue {
							unknown = true
							break
						}
					}
				}
				if unknown {
					coarse.SetMask(cx, cy, maskValue)
				}
			}
		}
	})

	return coarse, nil
}
