package image

import "sync"

// Pool is a thread-safe pool for reusing Frame instances.
//
// Pool groups frames by their dimensions, format and padding. The shrinking
// algorithms take their double-buffer snapshots from a pool so that repeated
// invocations on same-sized inputs do not allocate.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Frame
	maxSize int // max frames per bucket
}

type poolKey struct {
	width   int
	height  int
	padding int
	format  Format
}

// NewPool creates a new frame pool with the given maximum frames per bucket.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Frame),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a zeroed frame from the pool or creates a new one.
// Returns nil if the parameters are invalid.
func (p *Pool) Get(width, height int, format Format, paddingElements int) *Frame {
	key := poolKey{width: width, height: height, padding: paddingElements, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		f := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		f.Clear()
		return f
	}
	p.mu.Unlock()

	f, err := NewFrameWithPadding(width, height, format, paddingElements)
	if err != nil {
		return nil
	}
	return f
}

// GetCopy retrieves a frame compatible with src and copies src into it,
// padding included.
func (p *Pool) GetCopy(src *Frame) *Frame {
	f := p.Get(src.width, src.height, src.format, src.padding)
	if f == nil {
		return nil
	}
	copy(f.data, src.data)
	return f
}

// Put returns a frame to the pool for reuse.
// If f is nil or the bucket is at capacity, the frame is discarded.
func (p *Pool) Put(f *Frame) {
	if f == nil {
		return
	}

	key := poolKey{width: f.width, height: f.height, padding: f.padding, format: f.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, f)
}

// Len returns the number of frames currently held by the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

var defaultPool = NewPool(8)

// CopyFromDefault retrieves a copy of src from the default pool.
func CopyFromDefault(src *Frame) *Frame {
	return defaultPool.GetCopy(src)
}

// PutToDefault returns a frame to the default pool.
func PutToDefault(f *Frame) {
	defaultPool.Put(f)
}
