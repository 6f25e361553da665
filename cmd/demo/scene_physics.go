package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/animator"
)

const (
	worldWidth    = 960
	worldHeight   = 632
	ballRadius    = 14
	stepDT        = 1.0 / 120.0
	stepsPerFrame = 4
)

type ballSpawn struct {
	pos cp.Vector
	hue float64
}

// physicsScene simulates bouncing balls in a box. Frames map to fixed
// simulation steps; scrubbing backwards rebuilds the space and re-steps from
// zero so any frame is reproducible.
type physicsScene struct {
	frames int
	spawns []ballSpawn

	space     *cp.Space
	bodies    []*cp.Body
	lastFrame int
}

func newPhysicsScene(frames int) *physicsScene {
	s := &physicsScene{
		frames: frames,
		spawns: []ballSpawn{
			{pos: cp.Vector{X: 200, Y: 80}, hue: 0},
			{pos: cp.Vector{X: 480, Y: 40}, hue: 120},
			{pos: cp.Vector{X: 740, Y: 120}, hue: 240},
		},
	}
	s.rebuild()
	return s
}

func (s *physicsScene) Frames() int { return s.frames }

func (s *physicsScene) rebuild() {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: 600})

	corners := []cp.Vector{
		{X: 0, Y: 0},
		{X: worldWidth, Y: 0},
		{X: worldWidth, Y: worldHeight},
		{X: 0, Y: worldHeight},
	}
	for i := range corners {
		wall := cp.NewSegment(space.StaticBody, corners[i], corners[(i+1)%len(corners)], 0)
		wall.SetElasticity(0.9)
		wall.SetFriction(0.4)
		space.AddShape(wall)
	}

	s.bodies = s.bodies[:0]
	for _, sp := range s.spawns {
		body := space.AddBody(cp.NewBody(1, cp.MomentForCircle(1, 0, ballRadius, cp.Vector{})))
		body.SetPosition(sp.pos)
		shape := space.AddShape(cp.NewCircle(body, ballRadius, cp.Vector{}))
		shape.SetElasticity(0.85)
		shape.SetFriction(0.4)
		s.bodies = append(s.bodies, body)
	}

	s.space = space
	s.lastFrame = 0
}

// stepTo advances the simulation to the given frame, rebuilding from the
// initial conditions when scrubbed backwards.
func (s *physicsScene) stepTo(frame int) {
	if frame < s.lastFrame {
		s.rebuild()
	}
	for f := s.lastFrame; f < frame; f++ {
		for i := 0; i < stepsPerFrame; i++ {
			s.space.Step(stepDT)
		}
	}
	s.lastFrame = frame
}

func (s *physicsScene) Draw(frame int, dst *ebiten.Image) {
	s.stepTo(frame)
	dst.Fill(color.NRGBA{R: 0x10, G: 0x14, B: 0x20, A: 0xff})
	for i, body := range s.bodies {
		p := body.Position()
		c := hsvColor(s.spawns[i].hue, 0.8, 0.95)
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), ballRadius, c, true)
	}
}

// Click drops a new ball at the click position. The spawn becomes part of
// the scene's initial conditions so scrubbing stays reproducible.
func (s *physicsScene) Click(ev animator.ClickEvent) {
	s.spawns = append(s.spawns, ballSpawn{
		pos: cp.Vector{X: float64(ev.X), Y: float64(ev.Y)},
		hue: math.Mod(float64(len(s.spawns))*67, 360),
	})
	s.rebuild()
}
