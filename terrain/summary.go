package terrain

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate figures for a finished run.
type Summary struct {
	MeanDistance float64
	MaxDistance  float64
	MeanAngle    float64
	MinAngle     float64
	MaxAngle     float64
	MeanWorker   float64 // Seconds
	StdDevWorker float64 // Seconds, zero with a single worker
}

func summarise(grid *Grid, workers []WorkerResult) Summary {
	distances := grid.Distances()
	angles := grid.Angles()
	summary := Summary{
		MeanDistance: stat.Mean(distances, nil),
		MaxDistance:  floats.Max(distances),
		MeanAngle:    stat.Mean(angles, nil),
		MinAngle:     floats.Min(angles),
		MaxAngle:     floats.Max(angles),
	}
	if len(workers) == 0 {
		return summary
	}
	seconds := make([]float64, len(workers))
	for i, result := range workers {
		seconds[i] = result.Elapsed.Seconds()
	}
	if len(seconds) == 1 {
		summary.MeanWorker = seconds[0]
		return summary
	}
	summary.MeanWorker, summary.StdDevWorker = stat.MeanStdDev(seconds, nil)
	return summary
}
