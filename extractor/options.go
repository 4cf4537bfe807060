package extractor

import (
	"fmt"
	"runtime"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/filters"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/windowing"
)

// Options configure an Extractor
type Options struct {
	Mel      spectral.MelConfig
	MFCCSize int

	// Overlap is the hop between successive windows as a share of the
	// window length
	Overlap common.Ratio

	// Cutoff is the energy share used for the roll-off point
	Cutoff common.Ratio

	// ZCRThreshold is the clipping band of the zero-crossing rate
	ZCRThreshold float64

	// Window names the analysis window applied before the FFT
	Window string

	// PreEmphasis is the first-order high-pass coefficient applied to the
	// whole signal before framing; 0 disables it
	PreEmphasis float64

	// RemoveDC runs a DC blocking filter over the signal before framing
	RemoveDC bool

	// Workers bounds per-frame concurrency; <= 0 picks from the CPU count
	Workers int

	// Normalization names the per-coefficient normalization of the MFCC
	// matrix across frames: "none", "cmn" or "cmvn"
	Normalization string

	// Deltas adds five-point delta and delta-delta MFCC sequences
	Deltas bool

	// Resample converts decoded files to Mel.SampleRate when their rate
	// differs
	Resample        bool
	ResampleQuality string
}

// DefaultOptions returns the speech defaults: 16 kHz mel bank over 32 bins,
// 12 coefficients, 50% overlap, 85% roll-off cutoff, rectangular window
func DefaultOptions() Options {
	return Options{
		Mel:             spectral.DefaultMelConfig(),
		MFCCSize:        spectral.DefaultMFCCSize,
		Overlap:         common.Half,
		Cutoff:          common.MustParsePercent("85%"),
		ZCRThreshold:    0,
		Window:          windowing.TypeRectangular,
		PreEmphasis:     0,
		RemoveDC:        false,
		Workers:         0,
		Normalization:   "none",
		Deltas:          false,
		Resample:        true,
		ResampleQuality: "high",
	}
}

// WindowSize is the analysis window length, twice the FFT size so the
// non-redundant half of the transform has exactly FFTSize bins
func (o Options) WindowSize() int {
	return 2 * o.Mel.FFTSize
}

// Validate checks everything that can be checked without a signal
func (o Options) Validate() error {
	if err := o.Mel.Validate(); err != nil {
		return err
	}
	if o.Overlap <= 0 {
		return fmt.Errorf("overlap %s must be positive: %w", o.Overlap, common.ErrInvalidOverlap)
	}
	if o.Cutoff <= 0 {
		return fmt.Errorf("cutoff %s must be positive: %w", o.Cutoff, common.ErrInvalidConfig)
	}
	if o.ZCRThreshold < 0 {
		return fmt.Errorf("zcr threshold %.4f must not be negative: %w", o.ZCRThreshold, common.ErrInvalidConfig)
	}
	if _, err := common.ParseNormalization(o.Normalization); err != nil {
		return err
	}
	if o.PreEmphasis != 0 {
		if _, err := filters.NewPreEmphasis(o.PreEmphasis); err != nil {
			return err
		}
	}
	if _, err := windowing.New(o.Window, o.WindowSize()); err != nil {
		return err
	}
	return nil
}

// workerCount resolves Options.Workers for a workload of numFrames
func (o Options) workerCount(numFrames int) int {
	if o.Workers > 0 {
		return o.Workers
	}

	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if numFrames < 100 {
		return max(1, min(numCPU/2, numFrames))
	}
	return numCPU
}
