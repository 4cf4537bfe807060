package extractor

import (
	"encoding/json"
	"math"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/temporal"
)

// Series is a per-frame scalar feature. Non-finite values (the centroid of a
// silent frame) encode as JSON null and YAML ~.
type Series []float64

func (s Series) MarshalJSON() ([]byte, error) {
	values := make([]*float64, len(s))
	for i := range s {
		if !math.IsNaN(s[i]) && !math.IsInf(s[i], 0) {
			values[i] = &s[i]
		}
	}
	return json.Marshal(values)
}

func (s Series) MarshalYAML() (any, error) {
	values := make([]*float64, len(s))
	for i := range s {
		if !math.IsNaN(s[i]) && !math.IsInf(s[i], 0) {
			values[i] = &s[i]
		}
	}
	return values, nil
}

// Params bundles every feature of a signal, all indexed by frame
type Params struct {
	SampleRate int `json:"sample_rate" yaml:"sample_rate"`
	FFTSize    int `json:"fft_size" yaml:"fft_size"`
	WindowSize int `json:"window_size" yaml:"window_size"`
	Step       int `json:"step" yaml:"step"`
	FrameCount int `json:"frame_count" yaml:"frame_count"`

	MFCC [][]float64 `json:"mfcc" yaml:"mfcc"`

	// FFT holds the lower-half magnitude spectrum of every frame
	FFT [][]float64 `json:"fft,omitempty" yaml:"fft,omitempty"`

	ZCR   Series `json:"zcr" yaml:"zcr"`
	SC    Series `json:"sc" yaml:"sc"`
	SCSRF Series `json:"scsrf" yaml:"scsrf"`
	SRF   Series `json:"srf" yaml:"srf"`

	Flatness Series `json:"flatness" yaml:"flatness"`
	Flux     Series `json:"flux" yaml:"flux"`

	Energy      Series              `json:"energy" yaml:"energy"`
	LogEnergy   Series              `json:"log_energy" yaml:"log_energy"`
	EnergyRatio float64             `json:"energy_ratio" yaml:"energy_ratio"`
	EnergyStats temporal.Statistics `json:"energy_stats" yaml:"energy_stats"`

	Delta      [][]float64 `json:"delta,omitempty" yaml:"delta,omitempty"`
	DeltaDelta [][]float64 `json:"delta_delta,omitempty" yaml:"delta_delta,omitempty"`
}

// WithoutSpectra returns a shallow copy without the FFT matrix, which
// dominates output size
func (p *Params) WithoutSpectra() *Params {
	c := *p
	c.FFT = nil
	return &c
}

// newParams pre-sizes every per-frame slot so workers write by index
func newParams(frames int) *Params {
	return &Params{
		FrameCount: frames,
		MFCC:       make([][]float64, frames),
		FFT:        make([][]float64, frames),
		ZCR:        make(Series, frames),
		SC:         make(Series, frames),
		SCSRF:      make(Series, frames),
		SRF:        make(Series, frames),
		Flatness:   make(Series, frames),
		Energy:     make(Series, frames),
	}
}
