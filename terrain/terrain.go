package terrain

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Strategy selects how rows are scheduled. All strategies produce identical results.
type Strategy string

const (
	Sequential Strategy = "sequential" // Whole grid on the calling goroutine
	Batched    Strategy = "batched"    // Calling goroutine, BatchRows rows per cursor step
	Parallel   Strategy = "parallel"   // One goroutine per partition, joined at the end
)

// Params provides the grid shape, the scheduling strategy and which file to load.
type Params struct {
	Strategy  Strategy
	Threads   int
	BatchRows int
	Height    int
	Width     int
	Spacing   float64 // Horizontal distance between adjacent columns
	Input     string
}

func (p Params) String() string {
	switch p.Strategy {
	case Parallel:
		return fmt.Sprintf("%dx%d-%s-%d", p.Width, p.Height, p.Strategy, p.Threads)
	case Batched:
		return fmt.Sprintf("%dx%d-%s-%d", p.Width, p.Height, p.Strategy, p.BatchRows)
	default:
		return fmt.Sprintf("%dx%d-%s", p.Width, p.Height, p.Strategy)
	}
}

// Validate checks the static setup. It allocates nothing.
func (p Params) Validate() error {
	if p.Height < 1 {
		return &ConfigurationError{Field: "height", Reason: fmt.Sprintf("must be positive, got %d", p.Height)}
	}
	if p.Width < 1 {
		return &ConfigurationError{Field: "width", Reason: fmt.Sprintf("must be positive, got %d", p.Width)}
	}
	if math.IsNaN(p.Spacing) || math.IsInf(p.Spacing, 0) || p.Spacing < 0 {
		return &ConfigurationError{Field: "spacing", Reason: fmt.Sprintf("must be finite and non-negative, got %v", p.Spacing)}
	}
	switch p.Strategy {
	case Sequential:
	case Batched:
		if p.BatchRows < 1 {
			return &ConfigurationError{Field: "batch-rows", Reason: fmt.Sprintf("must be positive, got %d", p.BatchRows)}
		}
	case Parallel:
		if p.Threads < 1 {
			return &ConfigurationError{Field: "threads", Reason: fmt.Sprintf("must be positive, got %d", p.Threads)}
		}
		if p.Threads > p.Height {
			return &ConfigurationError{
				Field:  "threads",
				Reason: fmt.Sprintf("%d workers requested for %d rows", p.Threads, p.Height),
			}
		}
	default:
		return &ConfigurationError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %q", p.Strategy)}
	}
	return nil
}

// Run loads the height grid named by p.Input and computes distances and angles
// with the selected strategy. Events are sent on events (which may be nil) and
// the channel is closed before Run returns.
// A ConfigurationError is returned before the input is read or any buffer allocated.
func Run(p Params, events chan<- Event, logger logrus.FieldLogger) (*Grid, CompletionReport, error) {
	start := time.Now()
	if events != nil {
		defer close(events)
	}
	logger = orDiscard(logger)

	emit(events, StateChange{Initialising})
	if err := p.Validate(); err != nil {
		emit(events, StateChange{Failed})
		return nil, CompletionReport{}, err
	}

	io := &ioState{
		params: p,
		cond:   sync.NewCond(new(sync.Mutex)),
	}
	io.cond.L.Lock()
	go startIo(io) // transfer ownership of lock to startIo
	defer io.quit()

	operation := ioOperation{
		command:  ioInput,
		filename: p.Input,
	}
	io.sendIoRequest(&operation)
	io.waitIoRequest()
	if operation.err != nil {
		emit(events, StateChange{Failed})
		return nil, CompletionReport{}, operation.err
	}
	grid, err := NewGridFromHeights(p.Height, p.Width, operation.heights)
	if err != nil {
		emit(events, StateChange{Failed})
		return nil, CompletionReport{}, err
	}
	load := time.Since(start)
	logger.WithFields(logrus.Fields{"file": p.Input, "elapsed": load}).Info("Heights loaded")

	report, err := distribute(p, grid, events, logger, start)
	if err != nil {
		return nil, CompletionReport{}, err
	}
	report.Load = load
	emit(events, RunComplete{Report: report, Grid: grid})
	return grid, report, nil
}

// Generate writes a random height file of the shape in p to p.Input.
func Generate(p Params, seed int64) error {
	if p.Height < 1 || p.Width < 1 {
		return &ConfigurationError{Field: "shape", Reason: fmt.Sprintf("%dx%d has no cells", p.Width, p.Height)}
	}
	io := &ioState{
		params: p,
		cond:   sync.NewCond(new(sync.Mutex)),
	}
	io.cond.L.Lock()
	go startIo(io)
	defer io.quit()

	operation := ioOperation{
		command:  ioGenerate,
		filename: p.Input,
		seed:     seed,
	}
	io.sendIoRequest(&operation)
	io.waitIoRequest()
	return operation.err
}

func orDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger != nil {
		return logger
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}
