package delta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/framing"
)

func assertAllNear(t *testing.T, want float64, got []float64) {
	t.Helper()
	for i, v := range got {
		assert.InDelta(t, want, v, 1e-12, "index %d", i)
	}
}

func TestDeltaFrameConstantIsZero(t *testing.T) {
	ones := []float64{1, 1, 1, 1, 1, 1}
	got := DeltaFrame(ones, common.Half, ones, ones)
	require.Len(t, got, len(ones))
	assertAllNear(t, 0, got)
}

func TestDeltaFrameZeroPadsMissingNeighbours(t *testing.T) {
	got := DeltaFrame([]float64{1, 1, 1, 1}, common.Half, nil, nil)
	want := []float64{0.3, 0.2, -0.2, -0.3}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}

func TestDeltaAllSignalFollowsTheSignal(t *testing.T) {
	ramp := make([]float64, 12)
	for i := range ramp {
		ramp[i] = float64(i)
	}

	frames, err := framing.Frame(ramp, 4, common.Half)
	require.NoError(t, err)

	deltas := DeltaAllSignal(frames, common.Half)
	require.Len(t, deltas, len(frames))

	// Interior frames see the true neighbouring samples, so a unit ramp
	// has a unit slope everywhere
	for _, d := range deltas[1 : len(deltas)-2] {
		assertAllNear(t, 1, d)
	}
}

func TestDeltaFrameNarrowOverlap(t *testing.T) {
	// 25% of 4 samples leaves one neighbour sample; the regression still
	// reads two on each side
	frame := []float64{2, 3, 4, 5}
	got := DeltaFrame(frame, common.MustParsePercent("25%"), []float64{9, 9, 9, 1}, []float64{6, 9, 9, 9})
	require.Len(t, got, 4)

	// extended: 0 9 | 2 3 4 5 | 9 0
	assert.InDelta(t, ((3.0-9.0)+2*(4.0-0.0))/10, got[0], 1e-12)
	assert.InDelta(t, ((9.0-4.0)+2*(0.0-3.0))/10, got[3], 1e-12)
}

func TestDeltaFrameDoesNotModifyInputs(t *testing.T) {
	frame := []float64{1, 2, 3, 4}
	before := []float64{5, 6, 7, 8}
	after := []float64{9, 10, 11, 12}

	_ = DeltaFrame(frame, common.Half, before, after)
	assert.Equal(t, []float64{1, 2, 3, 4}, frame)
	assert.Equal(t, []float64{5, 6, 7, 8}, before)
	assert.Equal(t, []float64{9, 10, 11, 12}, after)
	assert.Empty(t, DeltaFrame(nil, common.Half, nil, nil))
}

func TestNeighbors(t *testing.T) {
	n := NewNeighbors(3)
	assert.Equal(t, 3, n.Dim())
	assert.Equal(t, []float64{0, 0, 0}, n.At(-2))
	assert.Equal(t, []float64{0, 0, 0}, n.At(7))

	require.NoError(t, n.Set(1, []float64{1, 2, 3}))
	assert.Equal(t, []float64{1, 2, 3}, n.At(1))

	err := n.Set(-1, []float64{1, 2})
	assert.True(t, errors.Is(err, common.ErrDimensionMismatch))

	err = n.Set(3, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, common.ErrInvalidConfig))
}

func TestDeltaCustomVectors(t *testing.T) {
	n := NewNeighbors(2)
	require.NoError(t, n.Set(-2, []float64{1, 0}))
	require.NoError(t, n.Set(-1, []float64{2, 0}))
	require.NoError(t, n.Set(0, []float64{3, 0}))
	require.NoError(t, n.Set(1, []float64{4, 0}))
	require.NoError(t, n.Set(2, []float64{5, 0}))

	assert.Equal(t, []float64{1, 0}, DeltaCustomVectors(n))
	assert.Equal(t, []float64{0, 0}, DeltaDeltaCustomVectors(n))
}

func TestCustomAllSignal(t *testing.T) {
	constant := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 1}}
	linear := make([][]float64, 7)
	quadratic := make([][]float64, 7)
	for i := range linear {
		x := float64(i)
		linear[i] = []float64{x}
		quadratic[i] = []float64{x * x}
	}

	t.Run("constant", func(t *testing.T) {
		deltas, err := DeltaCustomAllSignal(constant)
		require.NoError(t, err)
		deltaDeltas, err := DeltaDeltaCustomAllSignal(constant)
		require.NoError(t, err)

		for i := 2; i < len(constant)-2; i++ {
			assertAllNear(t, 0, deltas[i])
			assertAllNear(t, 0, deltaDeltas[i])
		}
	})

	t.Run("linear", func(t *testing.T) {
		deltas, err := DeltaCustomAllSignal(linear)
		require.NoError(t, err)
		deltaDeltas, err := DeltaDeltaCustomAllSignal(linear)
		require.NoError(t, err)

		for i := 2; i < len(linear)-2; i++ {
			assertAllNear(t, 1, deltas[i])
			assertAllNear(t, 0, deltaDeltas[i])
		}
	})

	t.Run("quadratic", func(t *testing.T) {
		deltaDeltas, err := DeltaDeltaCustomAllSignal(quadratic)
		require.NoError(t, err)

		for i := 2; i < len(quadratic)-2; i++ {
			assertAllNear(t, 2, deltaDeltas[i])
		}
	})

	t.Run("edges read zeros", func(t *testing.T) {
		deltas, err := DeltaCustomAllSignal([][]float64{{1}, {1}, {1}})
		require.NoError(t, err)
		assert.InDelta(t, 7.0/12.0, deltas[0][0], 1e-12)
		assert.InDelta(t, -7.0/12.0, deltas[2][0], 1e-12)
	})

	t.Run("ragged", func(t *testing.T) {
		_, err := DeltaCustomAllSignal([][]float64{{1, 2}, {1}, {1, 2}})
		assert.True(t, errors.Is(err, common.ErrDimensionMismatch))
	})

	t.Run("empty", func(t *testing.T) {
		deltas, err := DeltaDeltaCustomAllSignal(nil)
		require.NoError(t, err)
		assert.Empty(t, deltas)
	})
}
