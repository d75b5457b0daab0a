package main

import (
	"fmt"
	"io"

	"github.com/SamiJones/Threading/terrain"
)

// printReport writes the phase timings of a finished run and, for the
// parallel strategy, one line per worker in worker order.
func printReport(w io.Writer, report terrain.CompletionReport) {
	if report.Load > 0 {
		fmt.Fprintf(w, "Loading heights and allocating the grid took %.6f seconds.\n", report.Load.Seconds())
	}
	if report.Strategy == terrain.Parallel {
		fmt.Fprintf(w, "Up to the point where workers are joined, the run has taken %.6f seconds.\n",
			(report.Load + report.Spawn).Seconds())
		fmt.Fprintln(w, "Worker run-time data:")
		for _, result := range report.Workers {
			fmt.Fprintf(w, "Worker %d completed %d rows in %.6f seconds.\n",
				result.Worker, result.Block.Count, result.Elapsed.Seconds())
		}
		fmt.Fprintf(w, "Joining of workers took %.6f seconds.\n", report.Join.Seconds())
	}
	if report.Strategy == terrain.Batched {
		fmt.Fprintf(w, "Processed in %d batches.\n", report.Batches)
	}
	s := report.Summary
	fmt.Fprintf(w, "Distance mean %.4f max %.4f; angle mean %.4f min %.4f max %.4f degrees.\n",
		s.MeanDistance, s.MaxDistance, s.MeanAngle, s.MinAngle, s.MaxAngle)
	fmt.Fprintf(w, "The run took %.6f seconds from start to finish.\n", report.Elapsed.Seconds())
}
