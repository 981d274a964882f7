// Package timemath implements rational scaling of time counts.
package timemath

import (
	"math"
	"math/bits"
)

func Sgn(x int64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

func abs(x int64) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}

func saturate(neg bool) int64 {
	if neg {
		return -math.MaxInt64
	}
	return math.MaxInt64
}

// Scale returns count*num/den rounded half away from zero. Results that do not
// fit into an int64 saturate at ±math.MaxInt64.
func Scale(count, num, den int64) int64 {
	if num <= 0 || den <= 0 {
		panic("unexpected ratio")
	}
	if count == 0 {
		return 0
	}
	neg := count < 0
	hi, lo := bits.Mul64(abs(count), uint64(num))
	if hi >= uint64(den) {
		return saturate(neg)
	}
	q, r := bits.Div64(hi, lo, uint64(den))
	if q >= math.MaxInt64 {
		return saturate(neg)
	}
	if r >= uint64(den)-r {
		q++
	}
	if q > math.MaxInt64 {
		return saturate(neg)
	}
	if neg {
		return -int64(q)
	}
	return int64(q)
}

// ScaleFloat is the floating point variant of Scale. NaN scales to 0.
func ScaleFloat(x float64, num, den int64) int64 {
	if num <= 0 || den <= 0 {
		panic("unexpected ratio")
	}
	if math.IsNaN(x) {
		return 0
	}
	v := math.Round(x * float64(num) / float64(den))
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	if v <= -math.MaxInt64 {
		return -math.MaxInt64
	}
	return int64(v)
}

// Reduce returns num/den in lowest terms.
func Reduce(num, den int64) (int64, int64) {
	if num <= 0 || den <= 0 {
		panic("unexpected ratio")
	}
	a, b := num, den
	for b != 0 {
		a, b = b, a%b
	}
	return num / a, den / a
}
