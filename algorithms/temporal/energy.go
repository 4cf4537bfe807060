package temporal

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// Energy computes energy-based temporal features over already framed signal
type Energy struct {
	floor float64
}

// NewEnergy creates an energy calculator. floor bounds log energies from
// below; values <= 0 select 1e-10.
func NewEnergy(floor float64) *Energy {
	if floor <= 0 {
		floor = 1e-10
	}
	return &Energy{floor: floor}
}

// FrameEnergy is the RMS of a single frame
func (e *Energy) FrameEnergy(frame []float64) float64 {
	return common.RMS(frame)
}

// ShortTimeEnergy returns the RMS of every frame
func (e *Energy) ShortTimeEnergy(frames [][]float64) []float64 {
	energies := make([]float64, len(frames))
	for i, frame := range frames {
		energies[i] = e.FrameEnergy(frame)
	}
	return energies
}

// LogEnergy converts RMS energies to dB, clamped at the floor
func (e *Energy) LogEnergy(energies []float64) []float64 {
	logEnergies := make([]float64, len(energies))
	for i, energy := range energies {
		logEnergies[i] = 20.0 * math.Log10(max(energy, e.floor))
	}
	return logEnergies
}

// LowEnergyRatio is the fraction of frames whose energy lies below the mean
// frame energy. Speech typically scores higher than music. Returns 0 for no
// frames.
func (e *Energy) LowEnergyRatio(energies []float64) float64 {
	if len(energies) == 0 {
		return 0.0
	}

	mean := stat.Mean(energies, nil)
	low := 0
	for _, energy := range energies {
		if energy < mean {
			low++
		}
	}
	return float64(low) / float64(len(energies))
}

// Entropy is the Shannon entropy (bits) of the energy distribution across
// frames
func (e *Energy) Entropy(energies []float64) float64 {
	total := floats.Sum(energies)
	if total == 0.0 {
		return 0.0
	}

	entropy := 0.0
	for _, energy := range energies {
		if energy > 0.0 {
			p := energy / total
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// Statistics summarizes frame energies
type Statistics struct {
	Mean     float64 `json:"mean" yaml:"mean"`
	Variance float64 `json:"variance" yaml:"variance"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Entropy  float64 `json:"entropy" yaml:"entropy"`
	LowRatio float64 `json:"low_energy_ratio" yaml:"low_energy_ratio"`
}

// Summarize computes Statistics over frame energies. Variance is the
// unbiased sample variance and is 0 for fewer than two frames.
func (e *Energy) Summarize(energies []float64) Statistics {
	if len(energies) == 0 {
		return Statistics{}
	}

	s := Statistics{
		Min:      floats.Min(energies),
		Max:      floats.Max(energies),
		Entropy:  e.Entropy(energies),
		LowRatio: e.LowEnergyRatio(energies),
	}
	if len(energies) < 2 {
		s.Mean = energies[0]
		return s
	}

	s.Mean, s.Variance = stat.MeanVariance(energies, nil)
	return s
}
