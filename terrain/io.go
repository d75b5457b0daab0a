package terrain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ioState is the internal state of the io goroutine.
type ioState struct {
	params    Params
	operation *ioOperation
	cond      *sync.Cond
}

// ioCommand allows requesting behaviour from the io goroutine.
type ioCommand uint8

const (
	ioInput ioCommand = iota
	ioGenerate
	ioQuit
)

type ioOperation struct {
	command   ioCommand
	filename  string
	seed      int64     // ioGenerate only
	heights   []float64 // Result of ioInput
	err       error
	completed bool
}

// Longest line accepted by the loader
const maxLineBytes = 64 << 20

// readHeights opens the input file and parses it into a row-major buffer.
func (io *ioState) readHeights() {
	file, err := os.Open(io.operation.filename)
	if err != nil {
		io.operation.err = &LoadError{Err: err}
		return
	}
	defer file.Close()
	io.operation.heights, io.operation.err = LoadHeights(file, io.params.Height, io.params.Width)
}

// writeRandomHeights creates the output file and fills it with random heights.
func (io *ioState) writeRandomHeights() {
	file, err := os.Create(io.operation.filename)
	if err != nil {
		io.operation.err = err
		return
	}
	rng := rand.New(rand.NewSource(io.operation.seed))
	err = GenerateHeights(file, io.params.Height, io.params.Width, rng)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	io.operation.err = err
}

// startIo should be the entrypoint of the io goroutine.
func startIo(io *ioState) {
	for {
		io.cond.Wait()
		switch io.operation.command {
		case ioInput:
			io.readHeights()
		case ioGenerate:
			io.writeRandomHeights()
		case ioQuit:
			io.cond.L.Unlock()
			return
		}
		io.operation.completed = true
		io.cond.Signal()
	}
}

// Initiate an IO request
func (io *ioState) sendIoRequest(operation *ioOperation) {
	io.cond.L.Lock()
	io.operation = operation
	io.cond.Signal()
	io.cond.L.Unlock()
}

// Wait until last IO operation completed
func (io *ioState) waitIoRequest() {
	io.cond.L.Lock()
	for !io.operation.completed {
		io.cond.Wait()
	}
	io.cond.L.Unlock()
}

// Send a signal to IO goroutine to quit
func (io *ioState) quit() {
	io.cond.L.Lock()
	io.operation = &ioOperation{command: ioQuit}
	io.cond.Signal()
	io.cond.L.Unlock()
}

var (
	errShortRow  = errors.New("too few values in row")
	errLongRow   = errors.New("too many values in row")
	errMissing   = errors.New("missing row")
	errExtra     = errors.New("unexpected row after the last expected row")
	errNotFinite = errors.New("value is not finite")
)

// LoadHeights parses height rows of width whitespace-separated decimals.
// Blank lines after the last row are ignored; anything else that does not
// match the shape is a LoadError.
func LoadHeights(r io.Reader, height, width int) ([]float64, error) {
	if height < 1 || width < 1 {
		return nil, &ConfigurationError{Field: "shape", Reason: fmt.Sprintf("%dx%d has no cells", width, height)}
	}
	data := make([]float64, 0, height*width)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if line > height {
			if len(fields) != 0 {
				return nil, &LoadError{Line: line, Err: errExtra}
			}
			continue
		}
		if len(fields) < width {
			return nil, &LoadError{Line: line, Err: fmt.Errorf("%w: got %d, want %d", errShortRow, len(fields), width)}
		}
		if len(fields) > width {
			return nil, &LoadError{Line: line, Err: fmt.Errorf("%w: got %d, want %d", errLongRow, len(fields), width)}
		}
		for column, token := range fields {
			value, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return nil, &LoadError{Line: line, Column: column + 1, Token: token, Err: err}
			}
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return nil, &LoadError{Line: line, Column: column + 1, Token: token, Err: errNotFinite}
			}
			data = append(data, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Line: line + 1, Err: err}
	}
	if line < height {
		return nil, &LoadError{Line: line + 1, Err: fmt.Errorf("%w: got %d rows, want %d", errMissing, line, height)}
	}
	return data, nil
}

// GenerateHeights writes height rows of width random values.
// Each value has the form a.b with a and b drawn from [1, 999].
func GenerateHeights(w io.Writer, height, width int, rng *rand.Rand) error {
	buffered := bufio.NewWriter(w)
	scratch := make([]byte, 0, 16)
	for y := 0; y != height; y++ {
		for x := 0; x != width; x++ {
			scratch = strconv.AppendInt(scratch[:0], int64(rng.Intn(999)+1), 10)
			scratch = append(scratch, '.')
			scratch = strconv.AppendInt(scratch, int64(rng.Intn(999)+1), 10)
			scratch = append(scratch, ' ')
			if _, err := buffered.Write(scratch); err != nil {
				return err
			}
		}
		if err := buffered.WriteByte('\n'); err != nil {
			return err
		}
	}
	return buffered.Flush()
}
