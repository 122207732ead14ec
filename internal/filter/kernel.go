package filter

import "sync"

// BinomialKernel returns the 1D binomial kernel with size taps, the integer
// row of Pascal's triangle, together with the sum of its weights.
// size must be odd; even sizes are rounded up. For size <= 1, returns [1].
//
// Binomial kernels approximate a Gaussian while keeping integer arithmetic
// exact: size 3 is [1 2 1], size 5 is [1 4 6 4 1].
func BinomialKernel(size int) (kernel []uint32, sum uint32) {
	if size <= 1 {
		return []uint32{1}, 1
	}
	if size%2 == 0 {
		size++
	}

	kernel = make([]uint32, size)
	kernel[0] = 1
	for n := 1; n < size; n++ {
		for k := n; k > 0; k-- {
			kernel[k] += kernel[k-1]
		}
	}

	return kernel, 1 << (size - 1)
}

type binomial struct {
	kernel []uint32
	sum    uint32
}

// kernelCache caches computed binomial kernels keyed by size.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int]binomial
	maxLen int
}

var defaultKernelCache = newKernelCache(16)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int]binomial),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
func (c *kernelCache) get(size int) ([]uint32, uint32) {
	c.mu.RLock()
	if b, ok := c.cache[size]; ok {
		c.mu.RUnlock()
		return b.kernel, b.sum
	}
	c.mu.RUnlock()

	kernel, sum := BinomialKernel(size)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Simple eviction: clear half the cache
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[size] = binomial{kernel: kernel, sum: sum}
	c.mu.Unlock()

	return kernel, sum
}

// CachedBinomialKernel returns a cached binomial kernel. The returned slice
// is shared and must not be modified.
func CachedBinomialKernel(size int) ([]uint32, uint32) {
	return defaultKernelCache.get(size)
}

// KernelCenter returns the center index of a kernel of the given size.
func KernelCenter(kernelSize int) int {
	return kernelSize / 2
}
