package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// Largest window opened; bigger grids are sampled down to fit
const (
	maxWindowWidth  = 1024
	maxWindowHeight = 768
)

type Window struct {
	Width, Height int32
	window        *sdl.Window
	renderer      *sdl.Renderer
}

func NewWindow(title string, width, height int32) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return &Window{
		Width:    width,
		Height:   height,
		window:   window,
		renderer: renderer,
	}, nil
}

func (w *Window) Destroy() {
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}

// Draw paints shade(y, x) for every pixel and presents the frame.
func (w *Window) Draw(shade func(y, x int) uint8) error {
	if err := w.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := w.renderer.Clear(); err != nil {
		return err
	}
	for y := int32(0); y != w.Height; y++ {
		for x := int32(0); x != w.Width; x++ {
			s := shade(int(y), int(x))
			if err := w.renderer.SetDrawColor(s, s, s, 255); err != nil {
				return err
			}
			if err := w.renderer.DrawPoint(x, y); err != nil {
				return err
			}
		}
	}
	w.renderer.Present()
	return nil
}
