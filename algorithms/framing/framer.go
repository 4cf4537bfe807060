package framing

import (
	"fmt"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// Step returns the hop between consecutive windows: windowSize divided by
// 100/percentage, truncated to whole samples
func Step(windowSize int, overlap common.Ratio) (int, error) {
	if windowSize <= 0 {
		return 0, fmt.Errorf("window size must be positive, got %d: %w", windowSize, common.ErrInvalidConfig)
	}
	if overlap <= 0 {
		return 0, fmt.Errorf("overlap %s must be positive: %w", overlap, common.ErrInvalidOverlap)
	}

	step := int(float64(windowSize) / overlap.Divisor())
	if step < 1 {
		return 0, fmt.Errorf("overlap %s gives a hop below one sample for window %d: %w",
			overlap, windowSize, common.ErrInvalidOverlap)
	}

	return step, nil
}

// Count returns the number of windows Frame produces for a signal of the
// given length, ceil(length/step)
func Count(length, windowSize int, overlap common.Ratio) (int, error) {
	step, err := Step(windowSize, overlap)
	if err != nil {
		return 0, err
	}
	if length <= 0 {
		return 0, nil
	}
	return (length + step - 1) / step, nil
}

// Frame splits the signal into windows of windowSize samples taken every
// Step samples, starting at index 0. Windows running past the end of the
// signal are zero-filled. The input is never modified.
func Frame(signal []float64, windowSize int, overlap common.Ratio) ([][]float64, error) {
	step, err := Step(windowSize, overlap)
	if err != nil {
		return nil, err
	}

	numFrames := 0
	if len(signal) > 0 {
		numFrames = (len(signal) + step - 1) / step
	}

	frames := make([][]float64, numFrames)
	buf := make([]float64, numFrames*windowSize)

	for i := range numFrames {
		start := i * step
		end := min(start+windowSize, len(signal))

		frame := buf[i*windowSize : (i+1)*windowSize : (i+1)*windowSize]
		copy(frame, signal[start:end])
		frames[i] = frame
	}

	return frames, nil
}
