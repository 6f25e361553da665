package animator

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameFunc draws one frame of the animation onto the shared live surface.
type FrameFunc func(frame int, dst *ebiten.Image)

// Surface is the live drawing target shared between the frame callback, the
// prerender loop, and the on-screen canvas.
type Surface interface {
	// Render invokes the registered frame callback for the given index.
	Render(frame int)
	// Capture snapshots the surface's current pixels.
	Capture() (image.Image, error)
}

// canvasSurface backs Surface with an offscreen ebiten image.
type canvasSurface struct {
	img  *ebiten.Image
	draw FrameFunc
}

func newCanvasSurface(w, h int) *canvasSurface {
	return &canvasSurface{img: ebiten.NewImage(w, h)}
}

func (s *canvasSurface) Render(frame int) {
	s.draw(frame, s.img)
}

func (s *canvasSurface) Capture() (image.Image, error) {
	rgba := image.NewRGBA(s.img.Bounds())
	s.img.ReadPixels(rgba.Pix)
	return rgba, nil
}

func (s *canvasSurface) image() *ebiten.Image { return s.img }
