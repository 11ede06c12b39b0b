// Package stick implements the virtual joystick interaction state machine.
//
// A [Controller] owns at most one contact at a time. Host bindings translate
// their native pointer events into the unified kinds [Start], [Move], [End]
// and [EndOutside] and forward them through [Controller.Handle]; the host
// then subscribes to move and release notifications to position the knob.
//
// # Usage
//
//	ctrl, err := stick.New(60, 30)
//	id := ctrl.OnMove(func(p stick.MovePayload) { ... })
//	ctrl.OnRelease(func() { ... })
//	ctrl.Handle(stick.Start, ev)
//
// The controller is not safe for concurrent use. Use one per physical stick.
package stick

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/logger"
)

// ErrInvalidConfiguration is returned when the radii do not satisfy
// 0 < inner < outer.
var ErrInvalidConfiguration = errors.New("invalid stick configuration")

// ListenerID identifies a subscription so it can be removed with Off.
type ListenerID uint64

type moveListener struct {
	id ListenerID
	fn func(MovePayload)
}

type releaseListener struct {
	id ListenerID
	fn func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger for contact lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller tracks a single active contact and derives the knob offset.
type Controller struct {
	outer, inner float64

	contact    ContactID
	modality   Modality
	hasContact bool
	dragging   bool
	anchor     geom.Vec2
	offset     geom.Vec2
	disposed   bool

	nextID    ListenerID
	onMove    []moveListener
	onRelease []releaseListener

	log logger.Logger
}

// ValidateRadii reports whether outer and inner describe a usable stick.
func ValidateRadii(outer, inner float64) error {
	if math.IsNaN(outer) || math.IsInf(outer, 0) || math.IsNaN(inner) {
		return fmt.Errorf("%w: radii must be finite (outer=%v, inner=%v)", ErrInvalidConfiguration, outer, inner)
	}
	if inner <= 0 || inner >= outer {
		return fmt.Errorf("%w: need 0 < inner < outer (outer=%v, inner=%v)", ErrInvalidConfiguration, outer, inner)
	}
	return nil
}

// New creates an idle controller with the given boundary and knob radii.
func New(outerRadius, innerRadius float64, opts ...Option) (*Controller, error) {
	if err := ValidateRadii(outerRadius, innerRadius); err != nil {
		return nil, err
	}
	c := &Controller{
		outer: outerRadius,
		inner: innerRadius,
		log:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) OuterRadius() float64 { return c.outer }
func (c *Controller) InnerRadius() float64 { return c.inner }

// MaxOffset is the farthest the knob centre may travel from rest.
func (c *Controller) MaxOffset() float64 { return c.outer - c.inner }

func (c *Controller) Dragging() bool    { return c.dragging }
func (c *Controller) Offset() geom.Vec2 { return c.offset }
func (c *Controller) Anchor() geom.Vec2 { return c.anchor }
func (c *Controller) Disposed() bool    { return c.disposed }

// Contact returns the owned contact, if any.
func (c *Controller) Contact() (ContactID, bool) {
	return c.contact, c.hasContact
}

// OnMove subscribes fn to move notifications.
func (c *Controller) OnMove(fn func(MovePayload)) ListenerID {
	c.nextID++
	c.onMove = append(c.onMove, moveListener{id: c.nextID, fn: fn})
	return c.nextID
}

// OnRelease subscribes fn to release notifications.
func (c *Controller) OnRelease(fn func()) ListenerID {
	c.nextID++
	c.onRelease = append(c.onRelease, releaseListener{id: c.nextID, fn: fn})
	return c.nextID
}

// Off removes a subscription made with OnMove or OnRelease.
// Unknown ids are ignored.
func (c *Controller) Off(id ListenerID) {
	for i, l := range c.onMove {
		if l.id == id {
			c.onMove = append(c.onMove[:i:i], c.onMove[i+1:]...)
			return
		}
	}
	for i, l := range c.onRelease {
		if l.id == id {
			c.onRelease = append(c.onRelease[:i:i], c.onRelease[i+1:]...)
			return
		}
	}
}

// Handle dispatches a unified event kind to the matching operation.
func (c *Controller) Handle(kind Kind, e Event) {
	switch kind {
	case Start:
		c.OnContactStart(e)
	case Move:
		c.OnContactMove(e)
	case End:
		c.OnContactEnd(e)
	case EndOutside:
		c.OnContactEndOutside(e)
	}
}

// OnContactStart adopts e's contact and anchors the drag at its position.
// A start while another contact is active overrides it without a release.
func (c *Controller) OnContactStart(e Event) {
	if c.disposed {
		return
	}
	if c.hasContact && c.dragging {
		c.log.Debug("contact overridden",
			logger.F("previous", int64(c.contact)),
			logger.F("contact", int64(e.Contact())))
	}
	c.contact = e.Contact()
	c.modality = e.Modality()
	c.hasContact = true
	c.dragging = true
	c.anchor = e.LocalPosition()
	c.log.Debug("contact start",
		logger.F("modality", e.Modality().String()),
		logger.F("contact", int64(c.contact)),
		logger.F("x", c.anchor.X),
		logger.F("y", c.anchor.Y))
}

// OnContactMove updates the clamped offset and emits the raw displacement.
func (c *Controller) OnContactMove(e Event) {
	if !c.dragging || !c.acceptable(e) {
		return
	}

	raw := e.LocalPosition().Sub(c.anchor)
	length := raw.Len()
	c.offset = raw.ClampLen(c.MaxOffset())

	c.emitMove(MovePayload{
		X:      raw.X,
		Y:      raw.Y,
		Angle:  raw.AngleDeg(),
		Length: length,
	})
}

// OnContactEnd releases the stick when the owned contact lifts.
func (c *Controller) OnContactEnd(e Event) {
	e.StopPropagation()
	c.endContact(e)
}

// OnContactEndOutside releases the stick when the owned contact lifts
// outside the control's hit area.
func (c *Controller) OnContactEndOutside(e Event) {
	e.StopPropagation()
	c.endContact(e)
}

func (c *Controller) endContact(e Event) {
	if !c.dragging || !c.acceptable(e) {
		return
	}
	c.release()
}

// Reset returns to idle without notifying release listeners.
func (c *Controller) Reset() {
	c.contact = 0
	c.modality = Mouse
	c.hasContact = false
	c.dragging = false
	c.offset = geom.Vec2{}
}

// Dispose drops every subscription and ignores all further events.
func (c *Controller) Dispose() {
	c.Reset()
	c.onMove = nil
	c.onRelease = nil
	c.disposed = true
}

func (c *Controller) release() {
	c.log.Debug("contact released", logger.F("contact", int64(c.contact)))
	c.Reset()
	c.emitRelease()
}

// acceptable reports whether e may continue or end the current drag.
// A mouse has no concurrent contacts; touches must match the owned one.
func (c *Controller) acceptable(e Event) bool {
	if e.Modality() == Mouse {
		return true
	}
	if c.hasContact && c.modality == Touch && e.Contact() == c.contact {
		return true
	}
	c.log.Debug("foreign contact ignored", logger.F("contact", int64(e.Contact())))
	return false
}

func (c *Controller) emitMove(p MovePayload) {
	listeners := append([]moveListener(nil), c.onMove...)
	for _, l := range listeners {
		l.fn(p)
	}
}

func (c *Controller) emitRelease() {
	listeners := append([]releaseListener(nil), c.onRelease...)
	for _, l := range listeners {
		l.fn()
	}
}
