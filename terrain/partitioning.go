package terrain

import "fmt"

// Block is a contiguous range of rows [Start, Start+Count).
type Block struct {
	Start int
	Count int
}

func (b Block) End() int { return b.Start + b.Count }

// Partition divides rows between workers as evenly as possible.
// The first rows%workers blocks get one extra row. Blocks are returned in
// increasing row order and cover [0, rows) exactly once.
func Partition(rows, workers int) ([]Block, error) {
	if rows < 1 {
		return nil, &ConfigurationError{Field: "height", Reason: fmt.Sprintf("must be positive, got %d", rows)}
	}
	if workers < 1 {
		return nil, &ConfigurationError{Field: "threads", Reason: fmt.Sprintf("must be positive, got %d", workers)}
	}
	if workers > rows {
		// A worker would get no rows
		return nil, &ConfigurationError{
			Field:  "threads",
			Reason: fmt.Sprintf("%d workers requested for %d rows", workers, rows),
		}
	}
	base := rows / workers
	remainder := rows % workers
	blocks := make([]Block, workers)
	start := 0
	for i := 0; i != workers; i++ {
		count := base
		if i < remainder {
			count++
		}
		blocks[i] = Block{Start: start, Count: count}
		start += count
	}
	return blocks, nil
}
