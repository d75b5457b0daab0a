package terrain

import "fmt"

// ConfigurationError reports an invalid static setup, detected before any
// buffer is allocated or worker started.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// LoadError reports a malformed or missing height input.
// Line and Column are 1-based; zero means not applicable.
type LoadError struct {
	Line   int
	Column int
	Token  string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Column > 0:
		return fmt.Sprintf("load: line %d column %d (%q): %v", e.Line, e.Column, e.Token, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load: line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("load: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// RangeError reports a row range that does not lie inside the grid.
type RangeError struct {
	Start int
	Count int
	Rows  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rows [%d, %d) out of bounds of grid with %d rows", e.Start, e.Start+e.Count, e.Rows)
}
