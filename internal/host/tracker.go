package host

import (
	"sort"

	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/stick"
)

// MouseTracker turns button state and cursor position into events.
type MouseTracker struct {
	Transform Transform
	Area      HitArea

	down     bool
	tracking bool
	last     geom.Vec2
}

// NewMouseTracker creates a tracker for one control.
func NewMouseTracker(t Transform, area HitArea) *MouseTracker {
	return &MouseTracker{Transform: t, Area: area}
}

// Update feeds the current button state and absolute cursor position.
func (m *MouseTracker) Update(pressed bool, pos geom.Vec2) []*Event {
	var out []*Event
	switch {
	case pressed && !m.down:
		m.down = true
		if m.Area.Contains(m.Transform.Local(pos)) {
			m.tracking = true
			out = append(out, m.event(stick.Start, pos))
		}
	case pressed && m.tracking && pos != m.last:
		out = append(out, m.event(stick.Move, pos))
	case !pressed && m.down:
		m.down = false
		if m.tracking {
			m.tracking = false
			out = append(out, m.event(endKind(m.Area, m.Transform.Local(pos)), pos))
		}
	}
	m.last = pos
	return out
}

// Tracking reports whether a drag started by this tracker is in progress.
func (m *MouseTracker) Tracking() bool { return m.tracking }

func (m *MouseTracker) event(kind stick.Kind, pos geom.Vec2) *Event {
	return &Event{Kind: kind, Input: stick.Mouse, Position: pos, Transform: m.Transform}
}

// TouchPoint is one active touch in a frame snapshot.
type TouchPoint struct {
	ID       stick.ContactID
	Position geom.Vec2 // absolute
}

// TouchTracker diffs successive touch snapshots into events.
type TouchTracker struct {
	Transform Transform
	Area      HitArea

	active  map[stick.ContactID]geom.Vec2
	ignored map[stick.ContactID]bool
}

// NewTouchTracker creates a tracker for one control.
func NewTouchTracker(t Transform, area HitArea) *TouchTracker {
	return &TouchTracker{
		Transform: t,
		Area:      area,
		active:    make(map[stick.ContactID]geom.Vec2),
		ignored:   make(map[stick.ContactID]bool),
	}
}

// Update takes every touch currently down and returns the events since the
// previous snapshot. Starts and moves follow snapshot order; lifts come last,
// ordered by id.
func (t *TouchTracker) Update(points []TouchPoint) []*Event {
	var out []*Event
	present := make(map[stick.ContactID]bool, len(points))

	for _, p := range points {
		present[p.ID] = true
		if last, ok := t.active[p.ID]; ok {
			if last != p.Position {
				out = append(out, t.event(stick.Move, p.ID, p.Position))
				t.active[p.ID] = p.Position
			}
			continue
		}
		if t.ignored[p.ID] {
			continue
		}
		if t.Area.Contains(t.Transform.Local(p.Position)) {
			t.active[p.ID] = p.Position
			out = append(out, t.event(stick.Start, p.ID, p.Position))
		} else {
			t.ignored[p.ID] = true
		}
	}

	var lifted []stick.ContactID
	for id := range t.active {
		if !present[id] {
			lifted = append(lifted, id)
		}
	}
	sort.Slice(lifted, func(i, j int) bool { return lifted[i] < lifted[j] })
	for _, id := range lifted {
		pos := t.active[id]
		delete(t.active, id)
		out = append(out, t.event(endKind(t.Area, t.Transform.Local(pos)), id, pos))
	}

	for id := range t.ignored {
		if !present[id] {
			delete(t.ignored, id)
		}
	}
	return out
}

// Active returns the number of touches being tracked.
func (t *TouchTracker) Active() int { return len(t.active) }

func (t *TouchTracker) event(kind stick.Kind, id stick.ContactID, pos geom.Vec2) *Event {
	return &Event{Kind: kind, Input: stick.Touch, ID: id, Position: pos, Transform: t.Transform}
}

func endKind(area HitArea, local geom.Vec2) stick.Kind {
	if area.Contains(local) {
		return stick.End
	}
	return stick.EndOutside
}
