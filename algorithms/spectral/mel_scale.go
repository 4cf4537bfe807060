package spectral

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// HzToMels converts frequency in Hz to the mel scale (natural log form)
func HzToMels(hz float64) float64 {
	return 1127.0 * math.Log(1.0+hz/700.0)
}

// MelsToHz converts mels back to frequency in Hz
func MelsToHz(mels float64) float64 {
	return 700.0 * (math.Exp(mels/1127.0) - 1.0)
}

// MelConfig describes a mel filter bank. Every field is required.
type MelConfig struct {
	FFTSize       int     `json:"fft_size" yaml:"fft_size" mapstructure:"fft_size"`
	BankCount     int     `json:"bank_count" yaml:"bank_count" mapstructure:"bank_count"`
	LowFrequency  float64 `json:"low_frequency" yaml:"low_frequency" mapstructure:"low_frequency"`
	HighFrequency float64 `json:"high_frequency" yaml:"high_frequency" mapstructure:"high_frequency"`
	SampleRate    int     `json:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate"`
}

// DefaultMelConfig returns the 16 kHz speech configuration
func DefaultMelConfig() MelConfig {
	return MelConfig{
		FFTSize:       32,
		BankCount:     24,
		LowFrequency:  1,
		HighFrequency: 8000,
		SampleRate:    16000,
	}
}

// Validate reports ErrInvalidConfig for missing, non-positive or
// contradictory parameters
func (c MelConfig) Validate() error {
	var missing []string
	if c.FFTSize <= 0 {
		missing = append(missing, "fft_size")
	}
	if c.BankCount <= 0 {
		missing = append(missing, "bank_count")
	}
	if c.LowFrequency <= 0 {
		missing = append(missing, "low_frequency")
	}
	if c.HighFrequency <= 0 {
		missing = append(missing, "high_frequency")
	}
	if c.SampleRate <= 0 {
		missing = append(missing, "sample_rate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing or non-positive parameter(s) %s: %w",
			strings.Join(missing, ", "), common.ErrInvalidConfig)
	}

	if c.HighFrequency <= c.LowFrequency {
		return fmt.Errorf("high frequency %.2f must exceed low frequency %.2f: %w",
			c.HighFrequency, c.LowFrequency, common.ErrInvalidConfig)
	}

	return nil
}

// Filter is one triangular mel filter over FFT bins
type Filter struct {
	Name      string    `json:"name"`
	Peak      int       `json:"peak"`       // Bin holding weight 1
	HalfWidth int       `json:"half_width"` // Bins from peak to zero on each side
	Weights   []float64 `json:"weights"`    // One weight per FFT bin
}

// FilterBank is an ordered set of triangular filters spaced on the mel scale
type FilterBank struct {
	Filters  []Filter `json:"filters"`
	FFTSize  int      `json:"fft_size"`
	LowMel   float64  `json:"low_mel"`
	HighMel  float64  `json:"high_mel"`
	DeltaMel float64  `json:"delta_mel"`
	LowFreq  float64  `json:"low_freq"`
	HighFreq float64  `json:"high_freq"`
}

// NewFilterBank builds cfg.BankCount triangular filters whose peaks are
// evenly spaced in mels between the low and high frequencies. Each filter
// reaches zero at the neighbouring peak, so adjacent triangles meet at their
// edges. Peaks are non-decreasing; they are strictly increasing once the FFT
// resolution separates every center frequency.
func NewFilterBank(cfg MelConfig) (*FilterBank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lowMel := HzToMels(cfg.LowFrequency)
	highMel := HzToMels(cfg.HighFrequency)
	deltaMel := (highMel - lowMel) / float64(cfg.BankCount+1)
	nyquist := float64(cfg.SampleRate) / 2.0

	bins := make([]int, cfg.BankCount)
	for i := range bins {
		center := MelsToHz(lowMel + float64(i)*deltaMel)
		bins[i] = int(math.Floor(float64(cfg.FFTSize+1) * center / nyquist))
	}

	filters := make([]Filter, cfg.BankCount)
	for i, peak := range bins {
		filters[i] = Filter{
			Name:      fmt.Sprintf("mel-%02d", i),
			Peak:      peak,
			HalfWidth: halfWidth(bins, i, cfg.FFTSize),
		}
		filters[i].Weights = triangle(peak, filters[i].HalfWidth, cfg.FFTSize)
	}

	return &FilterBank{
		Filters:  filters,
		FFTSize:  cfg.FFTSize,
		LowMel:   lowMel,
		HighMel:  highMel,
		DeltaMel: deltaMel,
		LowFreq:  cfg.LowFrequency,
		HighFreq: cfg.HighFrequency,
	}, nil
}

// halfWidth is the distance to the next peak, or to the previous one for the
// last filter. A lone filter spans to the end of the spectrum.
func halfWidth(bins []int, i, fftSize int) int {
	switch {
	case len(bins) == 1:
		return max(fftSize-bins[0], 1)
	case i == len(bins)-1:
		return bins[i] - bins[i-1]
	default:
		return bins[i+1] - bins[i]
	}
}

// triangle returns fftSize weights: 1 at peak, falling linearly to 0 at
// peak±width and 0 beyond
func triangle(peak, width, fftSize int) []float64 {
	weights := make([]float64, fftSize)
	for f := range weights {
		distance := f - peak
		if distance < 0 {
			distance = -distance
		}

		switch {
		case distance == 0:
			weights[f] = 1.0
		case distance <= width:
			weights[f] = 1.0 - float64(distance)/float64(width)
		}
	}
	return weights
}

// Apply returns one energy per filter: the dot product of its weights with
// the spectrum. The spectrum must hold exactly FFTSize bins.
func (fb *FilterBank) Apply(spectrum []float64) ([]float64, error) {
	if len(spectrum) != fb.FFTSize {
		return nil, fmt.Errorf("filter bank expects %d bins, got %d: %w",
			fb.FFTSize, len(spectrum), common.ErrDimensionMismatch)
	}

	energies := make([]float64, len(fb.Filters))
	for i, filter := range fb.Filters {
		energies[i] = floats.Dot(filter.Weights, spectrum)
	}

	return energies, nil
}

// Peaks returns the peak bin of every filter in bank order
func (fb *FilterBank) Peaks() []int {
	peaks := make([]int, len(fb.Filters))
	for i, filter := range fb.Filters {
		peaks[i] = filter.Peak
	}
	return peaks
}

// Describe renders one line per filter with its peak bin, support and the
// center frequency of the peak bin
func (fb *FilterBank) Describe(sampleRate int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mel filter bank: %d filters over %d bins, %.1f-%.1f Hz (%.2f-%.2f mel, step %.2f)\n",
		len(fb.Filters), fb.FFTSize, fb.LowFreq, fb.HighFreq, fb.LowMel, fb.HighMel, fb.DeltaMel)

	binHz := float64(sampleRate) / 2.0 / float64(fb.FFTSize+1)
	for _, filter := range fb.Filters {
		fmt.Fprintf(&b, "  %s peak=%-4d support=[%d,%d] ~%.1f Hz\n",
			filter.Name, filter.Peak,
			max(filter.Peak-filter.HalfWidth, 0),
			min(filter.Peak+filter.HalfWidth, fb.FFTSize-1),
			float64(filter.Peak)*binHz)
	}
	return b.String()
}
