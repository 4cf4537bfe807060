package delta

import (
	"fmt"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// MaxOffset is the widest neighbour distance of the five-point stencils
const MaxOffset = 2

// Neighbors holds the acoustic vectors around a current vector, indexed by
// signed offset -2..+2. Slot offset+2 holds the vector at that offset; an
// unset slot reads as a zero vector of the declared dimension.
type Neighbors struct {
	dim   int
	slots [2*MaxOffset + 1][]float64
}

// NewNeighbors creates an empty neighbour set for vectors of length dim
func NewNeighbors(dim int) *Neighbors {
	return &Neighbors{dim: max(dim, 0)}
}

// Dim returns the declared vector length
func (n *Neighbors) Dim() int {
	return n.dim
}

// Set stores vec at offset. The vector is referenced, not copied.
func (n *Neighbors) Set(offset int, vec []float64) error {
	if offset < -MaxOffset || offset > MaxOffset {
		return fmt.Errorf("neighbour offset %d outside [-%d, %d]: %w",
			offset, MaxOffset, MaxOffset, common.ErrInvalidConfig)
	}
	if vec != nil && len(vec) != n.dim {
		return fmt.Errorf("neighbour at offset %d has %d values, expected %d: %w",
			offset, len(vec), n.dim, common.ErrDimensionMismatch)
	}

	n.slots[offset+MaxOffset] = vec
	return nil
}

// At returns the vector at offset, or a fresh zero vector when the slot is
// empty or the offset is out of range
func (n *Neighbors) At(offset int) []float64 {
	if offset < -MaxOffset || offset > MaxOffset {
		return common.Zeros(n.dim)
	}
	if vec := n.slots[offset+MaxOffset]; vec != nil {
		return vec
	}
	return common.Zeros(n.dim)
}

// NeighborsAt gathers the vectors around index i. Positions before the first
// or after the last vector stay empty.
func NeighborsAt(vectors [][]float64, i int) (*Neighbors, error) {
	if i < 0 || i >= len(vectors) {
		return nil, fmt.Errorf("vector index %d outside [0, %d): %w",
			i, len(vectors), common.ErrInvalidConfig)
	}

	n := NewNeighbors(len(vectors[i]))
	for offset := -MaxOffset; offset <= MaxOffset; offset++ {
		j := i + offset
		if j < 0 || j >= len(vectors) {
			continue
		}
		if err := n.Set(offset, vectors[j]); err != nil {
			return nil, fmt.Errorf("vector %d: %w", j, err)
		}
	}
	return n, nil
}

// DeltaCustomVectors is the five-point first derivative
// (-(a2 - b2) + 8*(a1 - b1)) / 12, where bK and aK are the vectors K
// positions before and after the current one
func DeltaCustomVectors(n *Neighbors) []float64 {
	b2, b1 := n.At(-2), n.At(-1)
	a1, a2 := n.At(1), n.At(2)

	delta := make([]float64, n.dim)
	for i := range delta {
		delta[i] = (-(a2[i] - b2[i]) + 8*(a1[i]-b1[i])) / 12
	}
	return delta
}

// DeltaDeltaCustomVectors is the five-point second derivative
// -(b2 - 16*b1 + 30*c - 16*a1 + a2) / 12
func DeltaDeltaCustomVectors(n *Neighbors) []float64 {
	b2, b1, c := n.At(-2), n.At(-1), n.At(0)
	a1, a2 := n.At(1), n.At(2)

	deltaDelta := make([]float64, n.dim)
	for i := range deltaDelta {
		deltaDelta[i] = -(b2[i] - 16*b1[i] + 30*c[i] - 16*a1[i] + a2[i]) / 12
	}
	return deltaDelta
}

// DeltaCustomAllSignal applies DeltaCustomVectors across a sequence of
// acoustic vectors. Every vector must share the same length.
func DeltaCustomAllSignal(vectors [][]float64) ([][]float64, error) {
	return applyStencil(vectors, DeltaCustomVectors)
}

// DeltaDeltaCustomAllSignal applies DeltaDeltaCustomVectors across a
// sequence of acoustic vectors
func DeltaDeltaCustomAllSignal(vectors [][]float64) ([][]float64, error) {
	return applyStencil(vectors, DeltaDeltaCustomVectors)
}

func applyStencil(vectors [][]float64, stencil func(*Neighbors) []float64) ([][]float64, error) {
	out := make([][]float64, len(vectors))
	for i := range vectors {
		n, err := NeighborsAt(vectors, i)
		if err != nil {
			return nil, err
		}
		out[i] = stencil(n)
	}
	return out, nil
}
