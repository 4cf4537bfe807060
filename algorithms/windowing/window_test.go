package windowing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		wantType string
	}{
		{"", TypeRectangular},
		{"none", TypeRectangular},
		{"Hann", TypeHann},
		{"hanning", TypeHann},
		{" hamming ", TypeHamming},
	}

	for _, tt := range tests {
		t.Run(tt.wantType+"/"+tt.name, func(t *testing.T) {
			w, err := New(tt.name, 8)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, w.Type())
			assert.Equal(t, 8, w.Size())
		})
	}

	_, err := New("kaiser", 8)
	assert.True(t, errors.Is(err, common.ErrInvalidConfig))

	_, err = New("hann", 0)
	assert.True(t, errors.Is(err, common.ErrInvalidConfig))
}

func TestHannCoefficients(t *testing.T) {
	periodic := NewHann(4, false).Coefficients()
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5}, periodic, 1e-12)

	symmetric := NewHann(5, true)
	assert.True(t, symmetric.Symmetric())
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5, 0}, symmetric.Coefficients(), 1e-12)
}

func TestHammingCoefficients(t *testing.T) {
	h := NewHamming(4, false)
	assert.False(t, h.Symmetric())
	assert.InDeltaSlice(t, []float64{0.08, 0.54, 1, 0.54}, h.Coefficients(), 1e-12)
}

func TestApply(t *testing.T) {
	frame := []float64{2, 2, 2, 2}

	rect, err := NewRectangular(4).Apply(frame)
	require.NoError(t, err)
	assert.Equal(t, frame, rect)

	hann, err := NewHann(4, false).Apply(frame)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 2, 1}, hann, 1e-12)
	assert.Equal(t, []float64{2, 2, 2, 2}, frame, "input must not be modified")

	_, err = NewHamming(4, false).Apply(frame[:3])
	assert.True(t, errors.Is(err, common.ErrSizeMismatch))
}

func TestSingleSampleWindow(t *testing.T) {
	assert.Equal(t, []float64{1}, NewHann(1, true).Coefficients())
}
