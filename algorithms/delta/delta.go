package delta

import (
	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// regressionWidth is N in d[t] = sum_{n=1}^{N} n*(c[t+n]-c[t-n]) / (2*sum n²)
const regressionWidth = 2

// regressionDenominator is 2 * (1² + 2²)
const regressionDenominator = 10.0

// DeltaFrame computes the regression delta of every value in frame. The frame
// is extended with the samples that precede and follow it in the framed
// signal: the first len(frame)*overlap values of before and the last
// len(frame)*overlap values of after. A nil neighbour contributes zeros, and
// the extension is zero padded to the regression width on each side.
//
// The result has len(frame) values. Inputs are never modified.
func DeltaFrame(frame []float64, overlap common.Ratio, before, after []float64) []float64 {
	if len(frame) == 0 {
		return []float64{}
	}

	o := min(max(overlap.Of(len(frame)), 0), len(frame))
	pad := max(o, regressionWidth)

	extended := make([]float64, pad+len(frame)+pad)

	// before[:o] sits right-aligned against the frame start
	if before != nil {
		head := before[:min(o, len(before))]
		copy(extended[pad-len(head):pad], head)
	}
	copy(extended[pad:], frame)

	// after[len-o:] sits left-aligned against the frame end
	if after != nil {
		n := min(o, len(after))
		copy(extended[pad+len(frame):], after[len(after)-n:])
	}

	delta := make([]float64, len(frame))
	for i := range delta {
		index := pad + i
		numerator := 0.0
		for n := 1; n <= regressionWidth; n++ {
			numerator += float64(n) * (extended[index+n] - extended[index-n])
		}
		delta[i] = numerator / regressionDenominator
	}

	return delta
}

// DeltaAllSignal applies DeltaFrame to every frame with its neighbouring
// frames. The first frame has no predecessor and the last has no successor.
func DeltaAllSignal(frames [][]float64, overlap common.Ratio) [][]float64 {
	deltas := make([][]float64, len(frames))
	for i, frame := range frames {
		var before, after []float64
		if i > 0 {
			before = frames[i-1]
		}
		if i < len(frames)-1 {
			after = frames[i+1]
		}
		deltas[i] = DeltaFrame(frame, overlap, before, after)
	}
	return deltas
}
