// Package drive steers a point with stick input.
package drive

import (
	"math"

	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/stick"
)

// Puck is a point whose velocity follows the stick direction.
type Puck struct {
	Pos    geom.Vec2
	Bounds geom.Vec2 // half extents around the origin; zero means unbounded

	speed     float64
	maxOffset float64
	input     geom.Vec2
}

// NewPuck creates a puck moving at most speed units per second when the
// stick is pushed maxOffset or further.
func NewPuck(speed, maxOffset float64) *Puck {
	return &Puck{speed: speed, maxOffset: maxOffset}
}

// Attach subscribes the puck to a controller's notifications.
func (p *Puck) Attach(c *stick.Controller) (move, release stick.ListenerID) {
	p.maxOffset = c.MaxOffset()
	return c.OnMove(p.SetInput), c.OnRelease(p.Release)
}

// SetInput stores the normalized stick direction, saturating at unit length.
func (p *Puck) SetInput(m stick.MovePayload) {
	if p.maxOffset <= 0 {
		p.input = geom.Vec2{}
		return
	}
	v := geom.V(m.X, m.Y).ClampLen(p.maxOffset)
	p.input = geom.V(v.X/p.maxOffset, v.Y/p.maxOffset)
}

// Release stops the puck.
func (p *Puck) Release() {
	p.input = geom.Vec2{}
}

// Input returns the current normalized direction.
func (p *Puck) Input() geom.Vec2 { return p.input }

// Step advances the puck by dt seconds with an explicit Euler step.
func (p *Puck) Step(dt float64) {
	p.Pos = p.Pos.Add(p.input.Scale(p.speed * dt))
	if p.Bounds.X > 0 {
		p.Pos.X = math.Max(-p.Bounds.X, math.Min(p.Bounds.X, p.Pos.X))
	}
	if p.Bounds.Y > 0 {
		p.Pos.Y = math.Max(-p.Bounds.Y, math.Min(p.Bounds.Y, p.Pos.Y))
	}
}
