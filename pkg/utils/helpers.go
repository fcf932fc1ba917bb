package utils

import (
	"math"
)

// MetersPerSecondToKmh is the fixed factor applied to upstream wind speeds
const MetersPerSecondToKmh = 3.6

// RoundHalfUp rounds to the nearest integer, with halves going towards +Inf.
// -2.5 rounds to -2, unlike math.Round. NaN yields 0 and values outside the
// int range saturate.
func RoundHalfUp(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	r := math.Round(value)
	if r-value == -0.5 {
		// math.Round took a negative half away from zero
		r++
	}
	switch {
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}

// WindKmh converts a wind speed in m/s to whole km/h
func WindKmh(metersPerSecond float64) int {
	return RoundHalfUp(metersPerSecond * MetersPerSecondToKmh)
}

// Clamp limits a value between min and max
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
