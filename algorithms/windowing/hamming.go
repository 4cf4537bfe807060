package windowing

// Hamming is the 0.54 - 0.46*cos(2πi/D) window
type Hamming struct {
	coefficientWindow
	symmetric bool
}

// NewHamming creates a Hamming window
func NewHamming(size int, symmetric bool) *Hamming {
	return &Hamming{
		coefficientWindow: coefficientWindow{
			kind:         TypeHamming,
			coefficients: cosineSum(size, symmetric, 0.54, 0.46),
		},
		symmetric: symmetric,
	}
}

// Symmetric reports whether the window was generated with D = size-1
func (h *Hamming) Symmetric() bool {
	return h.symmetric
}
