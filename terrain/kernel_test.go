package terrain

import (
	"math"
	"testing"
)

func TestComputeRowWrapsAround(t *testing.T) {
	heights := []float64{10, 10, 10, 15}
	distances := make([]float64, 4)
	angles := make([]float64, 4)
	computeRow(heights, distances, angles, 50)

	// Column 3 compares 15 against column 0
	if math.Abs(distances[3]-math.Sqrt(2525)) > 1e-12 {
		t.Errorf("distance[3] = %v, want %v", distances[3], math.Sqrt(2525))
	}
	if math.Abs(distances[3]-50.25) > 0.01 {
		t.Errorf("distance[3] = %v, want about 50.25", distances[3])
	}
	if math.Abs(angles[3]-(-5.71)) > 0.01 {
		t.Errorf("angle[3] = %v, want about -5.71", angles[3])
	}
	// Column 2 climbs by 5
	if math.Abs(angles[2]-5.71) > 0.01 {
		t.Errorf("angle[2] = %v, want about 5.71", angles[2])
	}
	for x := 0; x != 2; x++ {
		if distances[x] != 50 || angles[x] != 0 {
			t.Errorf("column %d = (%v, %v), want (50, 0)", x, distances[x], angles[x])
		}
	}
}

func TestComputeRowFlat(t *testing.T) {
	for _, spacing := range []float64{50, 1, 0.3, 1234.5678} {
		heights := []float64{123.456, 123.456, 123.456, 123.456, 123.456}
		distances := make([]float64, len(heights))
		angles := make([]float64, len(heights))
		computeRow(heights, distances, angles, spacing)
		for x := range heights {
			if distances[x] != spacing {
				t.Errorf("spacing %v: distance[%d] = %v", spacing, x, distances[x])
			}
			if angles[x] != 0 {
				t.Errorf("spacing %v: angle[%d] = %v", spacing, x, angles[x])
			}
		}
	}
}

func TestComputeRowSingleColumn(t *testing.T) {
	distances := make([]float64, 1)
	angles := make([]float64, 1)
	computeRow([]float64{42}, distances, angles, 50)
	if distances[0] != 50 || angles[0] != 0 {
		t.Errorf("got (%v, %v), want (50, 0)", distances[0], angles[0])
	}
}

func TestComputeCellStaysInDomain(t *testing.T) {
	cases := []struct{ height, next, spacing float64 }{
		{0, 0, 0},
		{0, 1, 0},
		{0, -1, 0},
		{0, 1e-300, 1e-300},
		{1e300, -1e300, 1},
		{5, 5 + 1e-320, 0},
	}
	for _, c := range cases {
		distance, angle := ComputeCell(c.height, c.next, c.spacing)
		if math.IsNaN(distance) || math.IsNaN(angle) {
			t.Errorf("ComputeCell(%v, %v, %v) = (%v, %v)", c.height, c.next, c.spacing, distance, angle)
		}
		if angle < -90 || angle > 90 {
			t.Errorf("ComputeCell(%v, %v, %v) angle %v out of range", c.height, c.next, c.spacing, angle)
		}
	}
	// Large but finite heights must not overflow the distance
	distance, angle := ComputeCell(1e300, -1e300, 1)
	if math.IsInf(distance, 0) || math.Abs(distance-2e300) > 1e285 {
		t.Errorf("ComputeCell(1e300, -1e300, 1) distance = %v, want about 2e300", distance)
	}
	if math.Abs(angle+90) > 1e-9 {
		t.Errorf("ComputeCell(1e300, -1e300, 1) angle = %v, want about -90", angle)
	}
	if _, angle := ComputeCell(0, 1, 0); math.Abs(angle-90) > 1e-9 {
		t.Errorf("vertical rise gave %v degrees", angle)
	}
	if _, angle := ComputeCell(0, -1, 0); math.Abs(angle+90) > 1e-9 {
		t.Errorf("vertical drop gave %v degrees", angle)
	}
}
