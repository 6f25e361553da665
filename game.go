package animator

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var canvasBackground = color.NRGBA{R: 0x18, G: 0x18, B: 0x1c, A: 0xff}

// Update implements ebiten.Game. All work runs on the UI goroutine in
// response to widget events or canvas clicks.
func (a *Animator) Update() error {
	a.controls.ui.Update()
	a.pollWatcher()
	a.handleMouse()
	return nil
}

// handleMouse turns a pointer press on the live canvas region into a
// ClickEvent for the registered click callback. Presses over the control
// strip belong to the widgets and are ignored here; clicks in cached mode
// are ignored, matching the live-surface-only hookup of the click handler.
func (a *Animator) handleMouse() {
	if a.view != viewLive {
		return
	}
	var btn MouseButton
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		btn = MouseButtonLeft
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		btn = MouseButtonRight
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		btn = MouseButtonMiddle
	default:
		return
	}
	x, y := ebiten.CursorPosition()
	if y >= a.cfg.Height-controlsHeight {
		return
	}
	ev := ClickEvent{X: x, Y: y, Button: btn, Modifiers: currentModifiers()}
	if err := a.handleClick(ev); err != nil {
		// The click callback already ran; report the redisplay failure
		// without tearing down the event loop.
		log.Printf("redisplay after click: %v", err)
	}
}

// Draw implements ebiten.Game, blitting whichever side of the stacked view
// is active and the widget strip on top.
func (a *Animator) Draw(screen *ebiten.Image) {
	screen.Fill(canvasBackground)

	switch a.view {
	case viewStill:
		if a.stillDirty && a.still != nil {
			a.stillImg = ebiten.NewImageFromImage(a.still)
			a.stillDirty = false
		}
		if a.stillImg != nil {
			a.drawCanvasImage(screen, a.stillImg)
		}
	default:
		if a.canvas != nil {
			a.drawCanvasImage(screen, a.canvas.image())
		}
	}

	a.controls.ui.Draw(screen)
}

// drawCanvasImage fits img into the canvas region above the control strip,
// preserving aspect ratio.
func (a *Animator) drawCanvasImage(screen, img *ebiten.Image) {
	cw := float64(a.cfg.Width)
	ch := float64(a.cfg.Height - controlsHeight)
	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	if iw <= 0 || ih <= 0 {
		return
	}
	scale := cw / iw
	if s := ch / ih; s < scale {
		scale = s
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((cw-iw*scale)/2, (ch-ih*scale)/2)
	screen.DrawImage(img, op)
}

// Layout implements ebiten.Game with a fixed logical size so canvas pixel
// coordinates match the configured window dimensions.
func (a *Animator) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Width, a.cfg.Height
}
