package terrain

import "math"

const degreesPerRadian = 180 / math.Pi

// ComputeCell returns the straight-line distance from a sample to its right-hand
// neighbour and the slope angle between them in degrees, positive uphill.
func ComputeCell(height, next, spacing float64) (distance, angle float64) {
	vertical := next - height
	distance = math.Hypot(vertical, spacing)
	if distance == 0 {
		return 0, 0
	}
	// Rounding can push the ratio just outside asin's domain
	ratio := vertical / distance
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	return distance, math.Asin(ratio) * degreesPerRadian
}

// Apply the kernel across one row. The last column wraps around to column 0.
func computeRow(heights, distances, angles []float64, spacing float64) {
	last := len(heights) - 1
	for x := 0; x != last; x++ {
		distances[x], angles[x] = ComputeCell(heights[x], heights[x+1], spacing)
	}
	distances[last], angles[last] = ComputeCell(heights[last], heights[0], spacing)
}
