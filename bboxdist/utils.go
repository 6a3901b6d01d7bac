package bboxdist

import (
	"sort"
)

// middleMean returns the mean of the two middle values of four sorted coordinates.
// For two intervals sharing a projection this is the center of their common part.
func middleMean(a, b, c, d float64) float64 {
	values := []float64{a, b, c, d}
	sort.Float64s(values)
	return (values[1] + values[2]) / 2.0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
