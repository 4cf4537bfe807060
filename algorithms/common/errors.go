package common

import (
	"errors"
)

// Validation failures raised by the feature extraction core. Callers match
// them with errors.Is; the returned errors wrap them with call-site detail.
var (
	// ErrInvalidConfig reports a missing, zero or contradictory mel filter
	// bank parameter
	ErrInvalidConfig = errors.New("invalid config")

	// ErrSizeMismatch reports a spectrum whose length differs from the
	// configured FFT size
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrDimensionMismatch reports vectors of different lengths meeting in a
	// dot product or a delta stencil
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidOverlap reports an overlap percentage that cannot produce a
	// positive hop
	ErrInvalidOverlap = errors.New("invalid overlap")
)
