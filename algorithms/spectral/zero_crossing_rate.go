package spectral

// ZeroCrossingRate counts sign changes between consecutive samples. Exact
// zeros count as positive so silence never produces spurious crossings.
// Use it on the raw signal, without FFT or MFCC.
func ZeroCrossingRate(window []float64) int {
	crossings := 0
	for i := 1; i < len(window); i++ {
		if sign(window[i]) != sign(window[i-1]) {
			crossings++
		}
	}
	return crossings
}

// ZeroCrossingRateClipping counts a crossing only when a sample rises
// strictly above threshold from at or below it, or falls strictly below
// -threshold from at or above it. The band rejects low-amplitude noise; this
// is the variant computed before MFCC extraction.
func ZeroCrossingRateClipping(window []float64, threshold float64) int {
	crossings := 0
	for i := 1; i < len(window); i++ {
		prev, cur := window[i-1], window[i]
		switch {
		case prev <= threshold && cur > threshold:
			crossings++
		case prev >= -threshold && cur < -threshold:
			crossings++
		}
	}
	return crossings
}

// ZeroCrossingRateFrames applies ZeroCrossingRateClipping to every frame
func ZeroCrossingRateFrames(frames [][]float64, threshold float64) []float64 {
	rates := make([]float64, len(frames))
	for t, frame := range frames {
		rates[t] = float64(ZeroCrossingRateClipping(frame, threshold))
	}
	return rates
}

// sign treats 0 (and NaN) as positive
func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
