package windowing

import (
	"fmt"
	"math"
	"strings"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// Window is an analysis window applied to a frame before the FFT
type Window interface {
	// Apply returns a windowed copy of frame
	Apply(frame []float64) ([]float64, error)
	Coefficients() []float64
	Size() int
	Type() string
}

// Supported window names
const (
	TypeRectangular = "rectangular"
	TypeHann        = "hann"
	TypeHamming     = "hamming"
)

// New creates a periodic window by name. An empty name selects the
// rectangular window, which leaves frames unchanged.
func New(name string, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d: %w", size, common.ErrInvalidConfig)
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TypeRectangular, "none":
		return NewRectangular(size), nil
	case TypeHann, "hanning":
		return NewHann(size, false), nil
	case TypeHamming:
		return NewHamming(size, false), nil
	default:
		return nil, fmt.Errorf("unknown window %q: %w", name, common.ErrInvalidConfig)
	}
}

// coefficientWindow carries the shared size/coefficients state
type coefficientWindow struct {
	kind         string
	coefficients []float64
}

func (w *coefficientWindow) Apply(frame []float64) ([]float64, error) {
	if len(frame) != len(w.coefficients) {
		return nil, fmt.Errorf("frame length (%d) doesn't match %s window size (%d): %w",
			len(frame), w.kind, len(w.coefficients), common.ErrSizeMismatch)
	}

	windowed := make([]float64, len(frame))
	for i, x := range frame {
		windowed[i] = x * w.coefficients[i]
	}
	return windowed, nil
}

// Coefficients returns a copy of the window coefficients
func (w *coefficientWindow) Coefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

func (w *coefficientWindow) Size() int {
	return len(w.coefficients)
}

func (w *coefficientWindow) Type() string {
	return w.kind
}

// cosineSum builds a0 - a1*cos(2πi/D) coefficients, D = size (periodic) or
// size-1 (symmetric)
func cosineSum(size int, symmetric bool, a0, a1 float64) []float64 {
	coefficients := make([]float64, size)
	if size == 1 {
		coefficients[0] = 1
		return coefficients
	}

	denominator := float64(size)
	if symmetric {
		denominator = float64(size - 1)
	}

	for i := range size {
		coefficients[i] = a0 - a1*cosTwoPi(float64(i)/denominator)
	}
	return coefficients
}

func cosTwoPi(x float64) float64 {
	return math.Cos(2 * math.Pi * x)
}
