// Package floats summarizes small samples of float64 values.
package floats

import (
	"slices"
)

func midpoint(x, y float64) float64 {
	return x + (y-x)/2.0
}

// Median returns the median of fs. It sorts a copy, so fs keeps its order.
func Median(fs []float64) float64 {
	n := len(fs)
	if n == 0 {
		panic("unexpected number of values")
	}
	s := slices.Clone(fs)
	slices.Sort(s)
	i := n / 2
	if n%2 != 0 {
		return s[i]
	}
	return midpoint(s[i-1], s[i])
}

// RelSpread returns (max-min)/median of fs, a measure of how evenly a load
// was shared. It is 0 when the median is 0.
func RelSpread(fs []float64) float64 {
	m := Median(fs)
	if m == 0 {
		return 0
	}
	return (slices.Max(fs) - slices.Min(fs)) / m
}
