package terrain

import "time"

// WorkerResult is the outcome of one worker for one run.
type WorkerResult struct {
	Worker  int
	Block   Block
	Elapsed time.Duration
}

// worker computes every row of its view. The view is the only part of the
// grid it can reach.
func worker(id int, view RowView, spacing float64) WorkerResult {
	start := time.Now()
	processView(view, spacing)
	return WorkerResult{
		Worker:  id,
		Block:   view.Block(),
		Elapsed: time.Since(start),
	}
}

// Rows are processed in increasing order
func processView(view RowView, spacing float64) {
	for i := 0; i != view.Len(); i++ {
		heights, distances, angles := view.Row(i)
		computeRow(heights, distances, angles, spacing)
	}
}
