package common

import "math"

// CeilDiv returns ceil(a/b) for a >= 0 and b > 0. Negative numerators are
// treated as zero so the result is never negative.
func CeilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a-1)/b + 1
}

// SaturatingAdd adds two non-negative integers, clamping at math.MaxInt
// instead of wrapping around.
func SaturatingAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// SaturatingSub subtracts b from a, clamping at zero.
func SaturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

// SaturatingMul multiplies two non-negative integers, clamping at math.MaxInt.
func SaturatingMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// Clamp limits v to the inclusive range [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
