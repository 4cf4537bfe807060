package windowing

// Hann is the raised cosine window 0.5 - 0.5*cos(2πi/D)
type Hann struct {
	coefficientWindow
	symmetric bool
}

// NewHann creates a Hann window. Periodic windows (symmetric=false) suit
// spectral analysis of overlapping frames.
func NewHann(size int, symmetric bool) *Hann {
	return &Hann{
		coefficientWindow: coefficientWindow{
			kind:         TypeHann,
			coefficients: cosineSum(size, symmetric, 0.5, 0.5),
		},
		symmetric: symmetric,
	}
}

// Symmetric reports whether the window was generated with D = size-1
func (h *Hann) Symmetric() bool {
	return h.symmetric
}
