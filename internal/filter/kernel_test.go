package filter

import (
	"slices"
	"strconv"
	"testing"
)

func TestBinomialKernel(t *testing.T) {
	tests := []struct {
		size    int
		want    []uint32
		wantSum uint32
	}{
		{0, []uint32{1}, 1},
		{1, []uint32{1}, 1},
		{2, []uint32{1, 2, 1}, 4},
		{3, []uint32{1, 2, 1}, 4},
		{5, []uint32{1, 4, 6, 4, 1}, 16},
		{7, []uint32{1, 6, 15, 20, 15, 6, 1}, 64},
	}

	for _, tt := range tests {
		kernel, sum := BinomialKernel(tt.size)
		if !slices.Equal(kernel, tt.want) {
			t.Errorf("BinomialKernel(%d) = %v, want %v", tt.size, kernel, tt.want)
		}
		if sum != tt.wantSum {
			t.Errorf("BinomialKernel(%d) sum = %d, want %d", tt.size, sum, tt.wantSum)
		}
	}
}

func TestBinomialKernelSumMatches(t *testing.T) {
	for size := 1; size <= 15; size += 2 {
		kernel, sum := BinomialKernel(size)

		var total uint32
		for _, v := range kernel {
			total += v
		}
		if total != sum {
			t.Errorf("BinomialKernel(%d) weights sum to %d, reported %d", size, total, sum)
		}
	}
}

func TestCachedBinomialKernel(t *testing.T) {
	// First call should generate and cache
	kernel1, sum1 := CachedBinomialKernel(9)

	// Second call should return cached
	kernel2, sum2 := CachedBinomialKernel(9)

	if !slices.Equal(kernel1, kernel2) || sum1 != sum2 {
		t.Errorf("cached kernel mismatch: %v/%d != %v/%d", kernel1, sum1, kernel2, sum2)
	}
}

func TestKernelCacheEviction(t *testing.T) {
	c := newKernelCache(4)
	for size := 1; size <= 21; size += 2 {
		c.get(size)
		if len(c.cache) > 4 {
			t.Fatalf("cache holds %d kernels, want at most 4", len(c.cache))
		}
	}

	kernel, _ := c.get(5)
	if !slices.Equal(kernel, []uint32{1, 4, 6, 4, 1}) {
		t.Errorf("kernel after eviction = %v", kernel)
	}
}

func TestKernelCenter(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 0},
		{3, 1},
		{5, 2},
		{7, 3},
		{31, 15},
	}

	for _, tt := range tests {
		got := KernelCenter(tt.size)
		if got != tt.want {
			t.Errorf("KernelCenter(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func BenchmarkBinomialKernel(b *testing.B) {
	for _, size := range []int{3, 5, 9, 15} {
		b.Run("size="+strconv.Itoa(size), func(b *testing.B) {
			for b.Loop() {
				_, _ = BinomialKernel(size)
			}
		})
	}
}

func BenchmarkCachedBinomialKernel(b *testing.B) {
	for _, size := range []int{3, 5, 9, 15} {
		b.Run("size="+strconv.Itoa(size), func(b *testing.B) {
			for b.Loop() {
				_, _ = CachedBinomialKernel(size)
			}
		})
	}
}
