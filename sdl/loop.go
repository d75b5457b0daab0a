package sdl

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/SamiJones/Threading/terrain"
)

// Run drains events until the run finishes, then shows the slope map of the
// grid until the window is closed or q/Esc is pressed. A failed run opens no window.
// SDL must be driven from the main OS thread.
func Run(events <-chan terrain.Event, logger logrus.FieldLogger) error {
	var grid *terrain.Grid
	for event := range events {
		logger.Debug(event.String())
		if complete, ok := event.(terrain.RunComplete); ok {
			grid = complete.Grid
		}
	}
	if grid == nil {
		return nil
	}

	width := int32(min(grid.Width(), maxWindowWidth))
	height := int32(min(grid.Height(), maxWindowHeight))
	w, err := NewWindow(fmt.Sprintf("Slope %dx%d", grid.Width(), grid.Height()), width, height)
	if err != nil {
		return err
	}
	defer w.Destroy()

	// Nearest-neighbour sampling of the angle grid, -90° black to +90° white
	err = w.Draw(func(y, x int) uint8 {
		row := y * grid.Height() / int(height)
		column := x * grid.Width() / int(width)
		return uint8((grid.AngleAt(row, column) + 90) / 180 * 255)
	})
	if err != nil {
		return err
	}

	for {
		switch e := sdl.PollEvent().(type) {
		case *sdl.QuitEvent:
			return nil
		case *sdl.KeyboardEvent:
			if e.State == sdl.PRESSED && (e.Keysym.Sym == sdl.K_ESCAPE || e.Keysym.Sym == sdl.K_q) {
				return nil
			}
		case nil:
			sdl.Delay(16)
		}
	}
}
