package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Ratio is a fraction parsed once from a percentage string such as "50%".
// Overlap and roll-off cutoff settings travel through the pipeline as a
// Ratio so hot loops never re-parse text.
type Ratio float64

// Frequently used ratios
const (
	Half    Ratio = 0.5
	Percent Ratio = 0.01
)

// ParsePercent converts "50%", "85" or " 12.5 % " into a Ratio. A bare
// number is read as a percentage.
func ParsePercent(s string) (Ratio, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	if trimmed == "" {
		return 0, fmt.Errorf("empty percentage")
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
	}

	return Ratio(value / 100.0), nil
}

// MustParsePercent is ParsePercent for package-level constants and tests
func MustParsePercent(s string) Ratio {
	r, err := ParsePercent(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Float returns the ratio as a plain fraction
func (r Ratio) Float() float64 {
	return float64(r)
}

// Divisor returns 100/percentage, the number of hops per window
func (r Ratio) Divisor() float64 {
	return 1.0 / float64(r)
}

// Of returns the integer share of n covered by the ratio, truncated
func (r Ratio) Of(n int) int {
	return int(float64(n) * float64(r))
}

// String formats the ratio back as a percentage
func (r Ratio) String() string {
	return strconv.FormatFloat(float64(r)*100.0, 'f', -1, 64) + "%"
}
