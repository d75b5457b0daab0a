package terrain

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CompletionReport describes a finished run.
type CompletionReport struct {
	RunID    uuid.UUID
	Strategy Strategy
	Workers  []WorkerResult // Ordered by worker index
	Batches  int            // Cursor steps taken (batched strategy only)
	Load     time.Duration  // Reading the input and allocating the grid (Run only)
	Spawn    time.Duration  // Partitioning and starting the workers (parallel only)
	Join     time.Duration  // Waiting for the workers (parallel only)
	Elapsed  time.Duration  // From the start of Run or Distribute to Done
	Summary  Summary
}

// Splits rows between workers for the parallel strategy
var partition = Partition

// Distribute computes distances and angles for an already loaded grid.
// The grid shape overrides p.Height and p.Width.
// On error no report is returned; the distance and angle buffers may be partially written.
func Distribute(p Params, grid *Grid, events chan<- Event, logger logrus.FieldLogger) (CompletionReport, error) {
	start := time.Now()
	logger = orDiscard(logger)
	p.Height = grid.Height()
	p.Width = grid.Width()
	emit(events, StateChange{Initialising})
	if err := p.Validate(); err != nil {
		emit(events, StateChange{Failed})
		return CompletionReport{}, err
	}
	return distribute(p, grid, events, logger, start)
}

// distribute divides the work between workers and waits for all of them.
// p must already be valid for grid. Elapsed is measured from start.
func distribute(p Params, grid *Grid, events chan<- Event, logger logrus.FieldLogger, start time.Time) (CompletionReport, error) {
	report := CompletionReport{
		RunID:    uuid.New(),
		Strategy: p.Strategy,
	}
	log := logger.WithFields(logrus.Fields{
		"run":      report.RunID.String(),
		"strategy": string(p.Strategy),
	})

	var err error
	switch p.Strategy {
	case Parallel:
		err = runParallel(p, grid, events, log, &report)
	case Batched:
		err = runBatched(p, grid, events, log, &report)
	default:
		err = runSequential(p, grid, events, &report)
	}
	if err != nil {
		log.WithError(err).Error("Run aborted")
		emit(events, StateChange{Failed})
		return CompletionReport{}, err
	}
	emit(events, StateChange{Joined})

	report.Elapsed = time.Since(start)
	report.Summary = summarise(grid, report.Workers)
	log.WithField("elapsed", report.Elapsed).Info("Run complete")
	emit(events, StateChange{Done})
	return report, nil
}

func runSequential(p Params, grid *Grid, events chan<- Event, report *CompletionReport) error {
	view, err := grid.Rows(0, grid.Height())
	if err != nil {
		return err
	}
	emit(events, StateChange{Running})
	result := worker(0, view, p.Spacing)
	emit(events, WorkerComplete{result})
	report.Workers = []WorkerResult{result}
	return nil
}

func runBatched(p Params, grid *Grid, events chan<- Event, log logrus.FieldLogger, report *CompletionReport) error {
	emit(events, StateChange{Running})
	start := time.Now()
	cursor := NewCursor(grid, p.Spacing)
	batches := 0
	for !cursor.Done() {
		if _, err := cursor.Next(p.BatchRows); err != nil {
			return err
		}
		batches++
	}
	result := WorkerResult{
		Worker:  0,
		Block:   Block{Start: 0, Count: grid.Height()},
		Elapsed: time.Since(start),
	}
	log.WithFields(logrus.Fields{"batches": batches, "batch_rows": p.BatchRows}).Debug("Cursor finished")
	emit(events, WorkerComplete{result})
	report.Workers = []WorkerResult{result}
	report.Batches = batches
	return nil
}

func runParallel(p Params, grid *Grid, events chan<- Event, log logrus.FieldLogger, report *CompletionReport) error {
	spawn_start := time.Now()
	blocks, err := partition(grid.Height(), p.Threads)
	if err != nil {
		return err
	}

	// Every view is checked before any worker starts, so a bad block aborts
	// the run with nothing written
	views := make([]RowView, len(blocks))
	for i, block := range blocks {
		if views[i], err = grid.Rows(block.Start, block.Count); err != nil {
			return err
		}
	}

	// Each goroutine writes only its own slot
	result_buffer := make([]WorkerResult, len(views))
	var group errgroup.Group
	emit(events, StateChange{Running})
	for i, view := range views {
		i, view := i, view
		group.Go(func() error {
			result := worker(i, view, p.Spacing)
			result_buffer[i] = result
			emit(events, WorkerComplete{result})
			return nil
		})
	}
	report.Spawn = time.Since(spawn_start)
	log.WithField("workers", len(views)).Debug("Workers started")

	join_start := time.Now()
	if err := group.Wait(); err != nil {
		return err
	}
	report.Join = time.Since(join_start)
	report.Workers = result_buffer
	return nil
}
