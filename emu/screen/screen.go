// Package screen implements the windowed frontend on top of pixelgl.
package screen

import (
	"fmt"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/host"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

var _ host.Frontend = (*Window)(nil)

type Window struct {
	*pixelgl.Window
	KeyMap map[uint16]pixelgl.Button

	title   string
	scale   float64
	imd     *imdraw.IMDraw
	buzzing bool
}

// NewWindow opens a window showing the display scaled by scale.
// It must be called from the function passed to pixelgl.Run.
func NewWindow(title string, scale int) (*Window, error) {
	if scale < 1 {
		scale = 1
	}

	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, float64(cpu.DisplayWidth*scale), float64(cpu.DisplayHeight*scale)),
		VSync:  true,
	}

	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	win.Clear(colornames.Black)
	win.Update()

	return &Window{
		Window: win,
		KeyMap: newKeyMap(),
		title:  title,
		scale:  float64(scale),
		imd:    imdraw.New(nil),
	}, nil
}

func (w *Window) PollKeys() ([cpu.KeyCount]bool, bool) {
	w.UpdateInput()

	var keys [cpu.KeyCount]bool
	for code, button := range w.KeyMap {
		keys[code] = w.Pressed(button)
	}
	return keys, w.Closed() || w.JustPressed(pixelgl.KeyEscape)
}

// Draw renders the frame, row 0 of the display is the top of the window.
func (w *Window) Draw(frame []uint32) {
	s := w.scale
	w.imd.Clear()
	w.imd.Color = colornames.White

	for y := 0; y < cpu.DisplayHeight; y++ {
		top := float64(cpu.DisplayHeight-y) * s
		for x := 0; x < cpu.DisplayWidth; x++ {
			if frame[y*cpu.DisplayWidth+x] == cpu.PixelOff {
				continue
			}
			left := float64(x) * s
			w.imd.Push(pixel.V(left, top-s), pixel.V(left+s, top))
			w.imd.Rectangle(0)
		}
	}

	w.Clear(colornames.Black)
	w.imd.Draw(w)
	w.Update()
}

// Buzz marks the title while the sound timer runs.
func (w *Window) Buzz(on bool) {
	if on == w.buzzing {
		return
	}
	w.buzzing = on

	if on {
		w.SetTitle(w.title + " *BEEP*")
	} else {
		w.SetTitle(w.title)
	}
}

func (w *Window) Close() error {
	w.Destroy()
	return nil
}
