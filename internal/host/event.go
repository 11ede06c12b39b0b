package host

import (
	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/stick"
)

// Transform maps absolute toolkit coordinates to control-local ones.
type Transform struct {
	Origin geom.Vec2 // absolute position of the control centre
	Scale  geom.Vec2 // absolute units per local unit; zero components mean 1
}

// Local converts an absolute position to local coordinates.
func (t Transform) Local(abs geom.Vec2) geom.Vec2 {
	d := abs.Sub(t.Origin)
	sx, sy := t.Scale.X, t.Scale.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return geom.V(d.X/sx, d.Y/sy)
}

// Absolute converts a local position back to absolute coordinates.
func (t Transform) Absolute(local geom.Vec2) geom.Vec2 {
	sx, sy := t.Scale.X, t.Scale.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return geom.V(local.X*sx, local.Y*sy).Add(t.Origin)
}

// Event is a concrete stick.Event produced by the trackers.
type Event struct {
	Kind      stick.Kind
	Input     stick.Modality
	ID        stick.ContactID
	Position  geom.Vec2 // absolute
	Transform Transform

	stopped bool
}

func (e *Event) Modality() stick.Modality { return e.Input }
func (e *Event) Contact() stick.ContactID { return e.ID }

// LocalPosition resolves Position through the event's transform.
func (e *Event) LocalPosition() geom.Vec2 {
	return e.Transform.Local(e.Position)
}

func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether a listener stopped propagation.
func (e *Event) Stopped() bool { return e.stopped }

// HitArea is a square around the control centre, in local units, inside
// which a press may start a drag.
type HitArea struct {
	HalfSize float64
}

// Contains reports whether a local position lies inside the area.
func (h HitArea) Contains(local geom.Vec2) bool {
	return local.X >= -h.HalfSize && local.X <= h.HalfSize &&
		local.Y >= -h.HalfSize && local.Y <= h.HalfSize
}
