package parallel

// DefaultMinRows is the smallest row range handed to a single task.
const DefaultMinRows = 8

// Rows splits the range [first, first+count) into contiguous sub-ranges and
// calls fn once per sub-range, in parallel on p. It returns once all calls
// have finished. Sub-ranges never overlap and cover the range exactly.
//
// minRows bounds the size of a sub-range; values below 1 are treated as 1.
// With a nil or closed pool, or when the range is too small to split, fn is
// called once with the full range.
func Rows(p *WorkerPool, first, count, minRows int, fn func(first, count int)) {
	if count <= 0 {
		return
	}
	minRows = max(minRows, 1)

	parts := min(p.Workers()*4, count/minRows)
	if parts <= 1 || !p.IsRunning() {
		fn(first, count)
		return
	}

	work := make([]func(), 0, parts)
	for i := range parts {
		start := first + count*i/parts
		end := first + count*(i+1)/parts
		work = append(work, func() { fn(start, end-start) })
	}
	p.ExecuteAll(work)
}
