package terrain

import "fmt"

// Cursor walks a grid in batches of rows on the calling goroutine.
// A Cursor can be stopped and resumed between calls to Next.
type Cursor struct {
	grid    *Grid
	spacing float64
	row     int
}

func NewCursor(grid *Grid, spacing float64) *Cursor {
	return &Cursor{grid: grid, spacing: spacing}
}

// Next processes up to rows rows from the current position and returns how
// many were processed. The final batch may be shorter than rows.
// Calling Next once the cursor is done returns a RangeError.
func (c *Cursor) Next(rows int) (int, error) {
	if rows < 1 {
		return 0, &ConfigurationError{Field: "batch-rows", Reason: fmt.Sprintf("must be positive, got %d", rows)}
	}
	if c.row >= c.grid.height {
		return 0, &RangeError{Start: c.row, Count: rows, Rows: c.grid.height}
	}
	count := min(rows, c.grid.height-c.row)
	view, err := c.grid.Rows(c.row, count)
	if err != nil {
		return 0, err
	}
	processView(view, c.spacing)
	c.row += count
	return count, nil
}

// Row is the next row to be processed.
func (c *Cursor) Row() int { return c.row }

func (c *Cursor) Done() bool { return c.row >= c.grid.height }
