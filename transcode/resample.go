package transcode

import (
	"fmt"
	"strings"

	resampling "github.com/tphakala/go-audio-resampling"
)

// qualitySpec maps a config string to a resampler quality preset
func qualitySpec(name string) (resampling.QualitySpec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quick":
		return resampling.QualitySpec{Preset: resampling.QualityQuick}, nil
	case "low":
		return resampling.QualitySpec{Preset: resampling.QualityLow}, nil
	case "medium":
		return resampling.QualitySpec{Preset: resampling.QualityMedium}, nil
	case "high", "":
		return resampling.QualitySpec{Preset: resampling.QualityHigh}, nil
	case "very_high", "veryhigh":
		return resampling.QualitySpec{Preset: resampling.QualityVeryHigh}, nil
	default:
		return resampling.QualitySpec{}, fmt.Errorf("unknown resample quality %q", name)
	}
}

// Resample converts mono samples from one rate to another. The whole signal
// is processed in one pass and the filter tail is flushed.
func Resample(samples []float64, fromRate, toRate int, quality string) ([]float64, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("invalid resample rates %d -> %d", fromRate, toRate)
	}
	if fromRate == toRate {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out, nil
	}

	spec, err := qualitySpec(quality)
	if err != nil {
		return nil, err
	}

	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(fromRate),
		OutputRate: float64(toRate),
		Channels:   1,
		Quality:    spec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	output, err := r.Process(samples)
	if err != nil {
		return nil, fmt.Errorf("resample error: %w", err)
	}

	tail, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("resample flush error: %w", err)
	}

	return append(output, tail...), nil
}
