package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortTimeEnergy(t *testing.T) {
	e := NewEnergy(0)
	energies := e.ShortTimeEnergy([][]float64{{1, -1, 1, -1}, {0, 0, 0, 0}, {3, 4}, {}})
	assert.InDeltaSlice(t, []float64{1, 0, 3.5355339059, 0}, energies, 1e-9)
}

func TestLogEnergy(t *testing.T) {
	e := NewEnergy(1e-5)
	assert.InDeltaSlice(t, []float64{0, 20, -100}, e.LogEnergy([]float64{1, 10, 0}), 1e-9)
}

func TestLowEnergyRatio(t *testing.T) {
	e := NewEnergy(0)

	tests := []struct {
		name     string
		energies []float64
		want     float64
	}{
		{"one loud frame", []float64{1, 1, 1, 9}, 0.75},
		{"constant", []float64{2, 2, 2}, 0},
		{"half", []float64{0, 1, 0, 1}, 0.5},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.LowEnergyRatio(tt.energies))
		})
	}
}

func TestEntropy(t *testing.T) {
	e := NewEnergy(0)
	assert.InDelta(t, 2.0, e.Entropy([]float64{1, 1, 1, 1}), 1e-12)
	assert.Zero(t, e.Entropy([]float64{0, 0}))
	assert.Zero(t, e.Entropy([]float64{5}))
}

func TestSummarize(t *testing.T) {
	e := NewEnergy(0)

	s := e.Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 2.5, s.Mean)
	assert.InDelta(t, 5.0/3.0, s.Variance, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, 0.5, s.LowRatio)

	single := e.Summarize([]float64{7})
	assert.Equal(t, 7.0, single.Mean)
	assert.Zero(t, single.Variance)

	assert.Equal(t, Statistics{}, e.Summarize(nil))
}
