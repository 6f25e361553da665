package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/animator"
)

// scriptScene delegates frame content to a tengo script. The script sees the
// globals frame, frames, click_x, and click_y, and reports its output through
// the background ([r, g, b]) and circles ([[x, y, radius, hue], ...])
// variables.
//
// Example script:
//
//	t := frame / frames
//	background = [20, 20, 40]
//	circles = [[100 + t*700, 300, 40, t*360]]
type scriptScene struct {
	frames   int
	compiled *tengo.Compiled

	clickX int
	clickY int
}

func newScriptScene(path string, frames int) (*scriptScene, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, v := range map[string]any{
		"frame":      0,
		"frames":     frames,
		"click_x":    -1,
		"click_y":    -1,
		"background": []any{},
		"circles":    []any{},
	} {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("bind script variable %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script %s: %w", path, err)
	}

	return &scriptScene{
		frames:   frames,
		compiled: compiled,
		clickX:   -1,
		clickY:   -1,
	}, nil
}

func (s *scriptScene) Frames() int { return s.frames }

// circleSpec is one circle reported by the script.
type circleSpec struct {
	x, y, radius, hue float64
}

// evaluate runs the compiled script for a frame and decodes its output
// variables.
func (s *scriptScene) evaluate(frame int) (color.NRGBA, []circleSpec, error) {
	if err := s.compiled.Set("frame", frame); err != nil {
		return color.NRGBA{}, nil, fmt.Errorf("set frame: %w", err)
	}
	if err := s.compiled.Set("click_x", s.clickX); err != nil {
		return color.NRGBA{}, nil, fmt.Errorf("set click_x: %w", err)
	}
	if err := s.compiled.Set("click_y", s.clickY); err != nil {
		return color.NRGBA{}, nil, fmt.Errorf("set click_y: %w", err)
	}
	if err := s.compiled.Run(); err != nil {
		return color.NRGBA{}, nil, fmt.Errorf("run frame %d: %w", frame, err)
	}

	bg := rgbFromScript(s.compiled.Get("background").Array())
	var circles []circleSpec
	for _, entry := range s.compiled.Get("circles").Array() {
		vals, ok := entry.([]any)
		if !ok || len(vals) < 4 {
			continue
		}
		circles = append(circles, circleSpec{
			x:      floatFromScript(vals[0]),
			y:      floatFromScript(vals[1]),
			radius: floatFromScript(vals[2]),
			hue:    floatFromScript(vals[3]),
		})
	}
	return bg, circles, nil
}

func (s *scriptScene) Draw(frame int, dst *ebiten.Image) {
	bg, circles, err := s.evaluate(frame)
	if err != nil {
		fmt.Printf("script: %v\n", err)
		return
	}
	dst.Fill(bg)
	for _, c := range circles {
		vector.DrawFilledCircle(dst, float32(c.x), float32(c.y), float32(c.radius), hsvColor(c.hue, 0.8, 0.95), true)
	}
}

func (s *scriptScene) Click(ev animator.ClickEvent) {
	s.clickX = ev.X
	s.clickY = ev.Y
}

func rgbFromScript(vals []any) color.NRGBA {
	c := color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
	if len(vals) >= 3 {
		c.R = uint8(intFromScript(vals[0]))
		c.G = uint8(intFromScript(vals[1]))
		c.B = uint8(intFromScript(vals[2]))
	}
	return c
}

func intFromScript(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func floatFromScript(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
