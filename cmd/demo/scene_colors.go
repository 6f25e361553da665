package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animator"
)

// colorScene fills each frame with a distinct hue swept across the frame
// range. Clicking rotates the hue offset so the whole animation shifts.
type colorScene struct {
	frames    int
	hueOffset float64
}

func newColorScene(frames int) *colorScene {
	return &colorScene{frames: frames}
}

func (s *colorScene) Frames() int { return s.frames }

func (s *colorScene) Draw(frame int, dst *ebiten.Image) {
	hue := s.hueOffset + 360*float64(frame)/float64(s.frames)
	dst.Fill(hsvColor(hue, 0.85, 0.9))
}

func (s *colorScene) Click(ev animator.ClickEvent) {
	step := 30.0
	if ev.Button == animator.MouseButtonRight {
		step = -30.0
	}
	s.hueOffset += step
}

// hsvColor converts an HSV triple (hue in degrees, s and v in [0,1]) to an
// opaque RGBA color.
func hsvColor(h, sat, val float64) color.RGBA {
	h = h - 360*float64(int(h)/360)
	if h < 0 {
		h += 360
	}
	c := val * sat
	hp := h / 60
	x := c * (1 - abs(mod2(hp)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := val - c
	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 0xff,
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func mod2(f float64) float64 {
	for f >= 2 {
		f -= 2
	}
	return f
}
