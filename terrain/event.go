package terrain

import (
	"fmt"
	"time"
)

// Event represents any progress reported during a run.
type Event interface {
	fmt.Stringer
}

// State is the coordinator state announced by StateChange.
type State int

const (
	Initialising State = iota
	Running
	Joined
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Initialising:
		return "Initialising"
	case Running:
		return "Running"
	case Joined:
		return "Joined"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StateChange is sent whenever the coordinator changes state.
type StateChange struct {
	NewState State
}

func (event StateChange) String() string {
	return event.NewState.String()
}

// WorkerComplete is sent by each worker once its block is written.
// Workers finish in any order.
type WorkerComplete struct {
	Result WorkerResult
}

func (event WorkerComplete) String() string {
	return fmt.Sprintf("Worker %d completed rows [%d, %d) in %v",
		event.Result.Worker, event.Result.Block.Start, event.Result.Block.End(), event.Result.Elapsed)
}

// RunComplete is the last event of a successful run.
type RunComplete struct {
	Report CompletionReport
	Grid   *Grid
}

func (event RunComplete) String() string {
	return fmt.Sprintf("Run %s completed in %v", event.Report.RunID, event.Report.Elapsed.Round(time.Microsecond))
}

// Send an event if anyone is listening
func emit(events chan<- Event, event Event) {
	if events != nil {
		events <- event
	}
}
