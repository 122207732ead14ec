package integral

// LinedIntegralSum returns the sum of one channel over the window with
// top-left corner (left, top) and the given size, using four lookups into a
// lined integral table.
func LinedIntegralSum[A Accumulator](table []A, tableStrideElements, channels, channel, left, top, width, height int) A {
	t := top*tableStrideElements + channel
	b := (top+height)*tableStrideElements + channel
	l := left * channels
	r := (left + width) * channels

	// (a + d) - (b + c) keeps unsigned accumulators from going negative in
	// the intermediate result.
	return (table[t+l] + table[b+r]) - (table[t+r] + table[b+l])
}

// LinedIntegralVariance returns the population variance E[x²] - E[x]² of one
// channel over a window, using a lined integral table and a lined squared
// integral table of the same source. The window must not be empty.
func LinedIntegralVariance[A Accumulator, S Accumulator](integral []A, squared []S, integralStrideElements, squaredStrideElements, channels, channel, left, top, width, height int) float64 {
	n := float64(width * height)
	sum := float64(LinedIntegralSum(integral, integralStrideElements, channels, channel, left, top, width, height))
	sq := float64(LinedIntegralSum(squared, squaredStrideElements, channels, channel, left, top, width, height))

	return variance(sum, sq, n)
}

// LinedIntegralVariance2 returns the pooled population variance of one
// channel over two disjoint windows, treating their pixels as one set.
func LinedIntegralVariance2[A Accumulator, S Accumulator](integral []A, squared []S, integralStrideElements, squaredStrideElements, channels, channel, left0, top0, width0, height0, left1, top1, width1, height1 int) float64 {
	n := float64(width0*height0 + width1*height1)
	sum := float64(LinedIntegralSum(integral, integralStrideElements, channels, channel, left0, top0, width0, height0)) +
		float64(LinedIntegralSum(integral, integralStrideElements, channels, channel, left1, top1, width1, height1))
	sq := float64(LinedIntegralSum(squared, squaredStrideElements, channels, channel, left0, top0, width0, height0)) +
		float64(LinedIntegralSum(squared, squaredStrideElements, channels, channel, left1, top1, width1, height1))

	return variance(sum, sq, n)
}

func variance(sum, sq, n float64) float64 {
	mean := sum / n
	v := sq/n - mean*mean
	if v < 0 {
		// rounding of nearly constant windows
		return 0
	}
	return v
}
