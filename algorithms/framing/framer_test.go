package framing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

func ramp(n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = float64(i + 1)
	}
	return signal
}

func TestFrameCountAndLength(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		windowSize int
		overlap    string
		wantStep   int
	}{
		{"half overlap exact", 64, 16, "50%", 8},
		{"half overlap ragged", 70, 16, "50%", 8},
		{"quarter hop", 33, 16, "25%", 4},
		{"no overlap", 40, 16, "100%", 16},
		{"short signal", 3, 16, "50%", 8},
		{"odd step truncates", 100, 10, "33%", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlap := common.MustParsePercent(tt.overlap)

			step, err := Step(tt.windowSize, overlap)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStep, step)

			frames, err := Frame(ramp(tt.length), tt.windowSize, overlap)
			require.NoError(t, err)

			wantCount := (tt.length + step - 1) / step
			assert.Len(t, frames, wantCount)

			count, err := Count(tt.length, tt.windowSize, overlap)
			require.NoError(t, err)
			assert.Equal(t, wantCount, count)

			for i, frame := range frames {
				assert.Len(t, frame, tt.windowSize, "frame %d", i)
			}
		})
	}
}

func TestFrameContentsAndZeroTail(t *testing.T) {
	signal := ramp(20)
	frames, err := Frame(signal, 8, common.Half)
	require.NoError(t, err)
	require.Len(t, frames, 5)

	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, frames[0])
	assert.Equal(t, []float64{5, 6, 7, 8, 9, 10, 11, 12}, frames[1])
	assert.Equal(t, []float64{17, 18, 19, 20, 0, 0, 0, 0}, frames[4])

	// Every sample past the signal end is zero
	last := frames[len(frames)-1]
	tailStart := len(signal) - (len(frames)-1)*4
	for i := tailStart; i < len(last); i++ {
		assert.Zero(t, last[i])
	}
}

func TestFrameDoesNotAliasInput(t *testing.T) {
	signal := ramp(16)
	frames, err := Frame(signal, 8, common.Half)
	require.NoError(t, err)

	frames[0][0] = 100
	assert.Equal(t, 1.0, signal[0])

	// Appending to one frame never overwrites the next
	_ = append(frames[0], 42)
	assert.Equal(t, 5.0, frames[1][0])
}

func TestFrameEmptySignal(t *testing.T) {
	frames, err := Frame(nil, 8, common.Half)
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestFrameInvalidOverlap(t *testing.T) {
	for _, overlap := range []common.Ratio{0, -0.5, 0.01} {
		_, err := Frame(ramp(10), 8, overlap)
		assert.True(t, errors.Is(err, common.ErrInvalidOverlap), "overlap %v: %v", overlap, err)
	}

	_, err := Frame(ramp(10), 0, common.Half)
	assert.True(t, errors.Is(err, common.ErrInvalidConfig))
}
