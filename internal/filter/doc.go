// Package filter provides the frame filters used by the inpainting
// pipeline:
//   - Sobel responses (per channel, signed, incremental update)
//   - Binomial kernels (integer, cached)
//   - Mask-aware 2x pyramid downsampling of a frame and its mask
//
// All filters operate on image.Frame values, never touch row padding and
// split their work by rows on an optional parallel.WorkerPool.
package filter
