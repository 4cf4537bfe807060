package windowing

// Rectangular is the boxcar window; applying it copies the frame
type Rectangular struct {
	coefficientWindow
}

// NewRectangular creates a rectangular window
func NewRectangular(size int) *Rectangular {
	coefficients := make([]float64, size)
	for i := range coefficients {
		coefficients[i] = 1.0
	}

	return &Rectangular{
		coefficientWindow: coefficientWindow{
			kind:         TypeRectangular,
			coefficients: coefficients,
		},
	}
}
