package host

import "github.com/san-kum/analogstick/internal/geom"

// Frame is one polled sample of pointer state, in absolute coordinates.
type Frame struct {
	MouseDown bool
	Mouse     geom.Vec2
	Touches   []TouchPoint
}

// Pointer merges mouse and touch polling for toolkits that report both.
// Touches take precedence: while any touch is down the mouse counts as
// released, so platforms that mirror touches onto the mouse do not produce
// two starts for one finger. After a touch the mouse stays suppressed until
// the button reads released, since mirrored buttons can lag the lift.
type Pointer struct {
	Mouse *MouseTracker
	Touch *TouchTracker

	suppressed bool
}

// NewPointer creates mouse and touch trackers sharing t and area.
func NewPointer(t Transform, area HitArea) *Pointer {
	return &Pointer{
		Mouse: NewMouseTracker(t, area),
		Touch: NewTouchTracker(t, area),
	}
}

// Update returns the events produced by f. Mouse events come first so a
// mouse drag ended by a landing touch releases before the touch takes over.
func (p *Pointer) Update(f Frame) []*Event {
	touches := p.Touch.Update(f.Touches)
	switch {
	case len(f.Touches) > 0 || p.Touch.Active() > 0:
		p.suppressed = true
	case !f.MouseDown:
		p.suppressed = false
	}
	events := p.Mouse.Update(f.MouseDown && !p.suppressed, f.Mouse)
	return append(events, touches...)
}
