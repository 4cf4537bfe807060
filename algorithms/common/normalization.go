package common

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// NormalizationType defines how a feature matrix is normalized across frames
type NormalizationType int

const (
	// NoNormalization leaves features untouched
	NoNormalization NormalizationType = iota
	// MeanNormalization subtracts the per-coefficient mean (CMN)
	MeanNormalization
	// ZScore subtracts the mean and divides by the standard deviation (CMVN)
	ZScore
)

// ParseNormalization maps "none", "mean"/"cmn" and "zscore"/"cmvn"
func ParseNormalization(s string) (NormalizationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoNormalization, nil
	case "mean", "cmn":
		return MeanNormalization, nil
	case "zscore", "cmvn":
		return ZScore, nil
	default:
		return NoNormalization, fmt.Errorf("unknown normalization %q: %w", s, ErrInvalidConfig)
	}
}

func (t NormalizationType) String() string {
	switch t {
	case MeanNormalization:
		return "mean"
	case ZScore:
		return "zscore"
	default:
		return "none"
	}
}

// Normalizer normalizes every column of a frame-by-coefficient matrix
type Normalizer struct {
	method NormalizationType
}

// NewNormalizer creates a new normalizer
func NewNormalizer(method NormalizationType) *Normalizer {
	return &Normalizer{method: method}
}

// Method returns the normalization in use
func (n *Normalizer) Method() NormalizationType {
	return n.method
}

// NormalizeColumns returns a normalized copy of frames. Columns with a
// standard deviation below 1e-10 are only mean-centered. Frames must share
// one length.
func (n *Normalizer) NormalizeColumns(frames [][]float64) ([][]float64, error) {
	out := make([][]float64, len(frames))
	for i, frame := range frames {
		out[i] = append([]float64(nil), frame...)
	}
	if n.method == NoNormalization || len(frames) == 0 {
		return out, nil
	}

	dim := len(frames[0])
	for i, frame := range frames {
		if len(frame) != dim {
			return nil, fmt.Errorf("frame %d has %d values, expected %d: %w",
				i, len(frame), dim, ErrDimensionMismatch)
		}
	}

	column := make([]float64, len(frames))
	for c := range dim {
		for i := range frames {
			column[i] = frames[i][c]
		}

		mean, std := stat.MeanStdDev(column, nil)
		if len(column) < 2 {
			std = 0
		}

		for i := range out {
			out[i][c] -= mean
			if n.method == ZScore && std >= 1e-10 {
				out[i][c] /= std
			}
		}
	}

	return out, nil
}
