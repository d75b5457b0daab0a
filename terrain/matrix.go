package terrain

import "fmt"

// Grid owns the height, distance and angle buffers of an H×W grid.
// Each buffer is one contiguous row-major slice; the row slices index into it.
type Grid struct {
	width         int
	height        int
	height_data   []float64
	distance_data []float64
	angle_data    []float64
	heights       [][]float64 // Read-only after construction
	distances     [][]float64
	angles        [][]float64
}

// NewGrid allocates a grid with zeroed heights.
func NewGrid(height, width int) (*Grid, error) {
	if height < 1 || width < 1 {
		return nil, &ConfigurationError{Field: "shape", Reason: fmt.Sprintf("%dx%d has no cells", width, height)}
	}
	return NewGridFromHeights(height, width, make([]float64, height*width))
}

// NewGridFromHeights builds a grid over row-major height data.
// Ownership of height_data is transferred to the grid.
func NewGridFromHeights(height, width int, height_data []float64) (*Grid, error) {
	if height < 1 || width < 1 {
		return nil, &ConfigurationError{Field: "shape", Reason: fmt.Sprintf("%dx%d has no cells", width, height)}
	}
	if len(height_data) != height*width {
		return nil, &ConfigurationError{
			Field:  "heights",
			Reason: fmt.Sprintf("got %d values for a %dx%d grid", len(height_data), width, height),
		}
	}
	grid := &Grid{
		width:         width,
		height:        height,
		height_data:   height_data,
		distance_data: make([]float64, height*width),
		angle_data:    make([]float64, height*width),
	}
	grid.heights = splitRows(grid.height_data, height, width)
	grid.distances = splitRows(grid.distance_data, height, width)
	grid.angles = splitRows(grid.angle_data, height, width)
	return grid, nil
}

// Slice a flat buffer into rows. Each row is capped so appends cannot spill into the next one.
func splitRows(data []float64, height, width int) [][]float64 {
	rows := make([][]float64, height)
	for y := 0; y != height; y++ {
		rows[y] = data[y*width : (y+1)*width : (y+1)*width]
	}
	return rows
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }

func (g *Grid) HeightAt(y, x int) float64   { return g.heights[y][x] }
func (g *Grid) DistanceAt(y, x int) float64 { return g.distances[y][x] }
func (g *Grid) AngleAt(y, x int) float64    { return g.angles[y][x] }

// Heights returns the whole height buffer in row-major order.
func (g *Grid) Heights() []float64 { return g.height_data }

// Distances returns the whole distance buffer in row-major order.
// It must not be read while a run is writing to the grid.
func (g *Grid) Distances() []float64 { return g.distance_data }

// Angles returns the whole angle buffer in row-major order, in degrees.
// It must not be read while a run is writing to the grid.
func (g *Grid) Angles() []float64 { return g.angle_data }

// Rows returns a view over rows [start, start+count).
// Views handed to different workers must not overlap.
func (g *Grid) Rows(start, count int) (RowView, error) {
	// Compare against the remaining rows so a huge count cannot overflow
	if start < 0 || start >= g.height || count < 1 || count > g.height-start {
		return RowView{}, &RangeError{Start: start, Count: count, Rows: g.height}
	}
	end := start + count
	return RowView{
		block:     Block{Start: start, Count: count},
		width:     g.width,
		heights:   g.heights[start:end:end],
		distances: g.distances[start:end:end],
		angles:    g.angles[start:end:end],
	}, nil
}

// RowView grants access to a contiguous range of rows of a Grid.
// Height rows are shared and must only be read; distance and angle rows are
// owned by the holder of the view.
type RowView struct {
	block     Block
	width     int
	heights   [][]float64
	distances [][]float64
	angles    [][]float64
}

func (v RowView) Block() Block { return v.block }
func (v RowView) Len() int     { return len(v.heights) }

// Row returns the height, distance and angle slices of the i-th row of the view.
func (v RowView) Row(i int) (heights, distances, angles []float64) {
	return v.heights[i], v.distances[i], v.angles[i]
}
