// Package hostwindow is the host's pixelgl window: it rasterizes the VM's
// display buffer at integer scale and translates host keyboard events to
// the CHIP-8 hex keypad via the standard QWERTY layout. It is a host
// collaborator, not part of the CHIP-8 core -- the core never imports it.
package hostwindow

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/MedCy1/chip8-go/internal/display"
)

const title = "chip8-go"

// Host control keys, not part of the CHIP-8 keypad: Esc quits, P toggles
// pause, R resets and reloads the running ROM.
const (
	KeyEscape = pixelgl.KeyEscape
	KeyPause  = pixelgl.KeyP
	KeyReset  = pixelgl.KeyR
)

// KeyMap translates pixelgl key codes to CHIP-8 hex keys using the
// standard QWERTY layout: 1234/QWER/ASDF/ZXCV -> 1,2,3,C / 4,5,6,D /
// 7,8,9,E / A,0,B,F.
var KeyMap = map[pixelgl.Button]byte{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// Window embeds a pixelgl window sized to the CHIP-8 frame buffer scaled
// up by an integer factor.
type Window struct {
	*pixelgl.Window
	scale float64
}

// New creates a pixelgl window titled "chip8-go", scale pixels per CHIP-8
// pixel.
func New(scale int) (*Window, error) {
	if scale < 1 {
		scale = 1
	}
	w := float64(display.Width * scale)
	h := float64(display.Height * scale)

	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, w, h),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating host window: %w", err)
	}
	return &Window{Window: win, scale: float64(scale)}, nil
}

// Render rasterizes a row-major 0/255 display buffer (as returned by
// vm.DisplayBuffer) with nearest-neighbor sampling: every lit CHIP-8
// pixel becomes one scale x scale filled rectangle.
func (w *Window) Render(buf []byte) {
	w.Clear(colornames.Black)

	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(1, 1, 1)

	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			if buf[y*display.Width+x] == 0 {
				continue
			}
			// pixelgl's origin is bottom-left; the buffer's is top-left.
			flippedY := display.Height - 1 - y
			draw.Push(pixel.V(float64(x)*w.scale, float64(flippedY)*w.scale))
			draw.Push(pixel.V(float64(x)*w.scale+w.scale, float64(flippedY)*w.scale+w.scale))
			draw.Rectangle(0)
		}
	}

	draw.Draw(w)
	w.Update()
}

// PolledKeys reports every CHIP-8 key that was just pressed or just
// released since the prior call, for the host frame loop to forward to
// vm.KeyDown/KeyUp.
func (w *Window) PolledKeys() (pressed, released []byte) {
	for btn, key := range KeyMap {
		if w.JustPressed(btn) {
			pressed = append(pressed, key)
		}
		if w.JustReleased(btn) {
			released = append(released, key)
		}
	}
	return pressed, released
}
