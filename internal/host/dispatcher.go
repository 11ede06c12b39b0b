package host

import "github.com/san-kum/analogstick/internal/stick"

// Listener receives one unified event.
type Listener func(kind stick.Kind, e stick.Event)

// Dispatcher fans events out to listeners registered on overlapping areas.
type Dispatcher struct {
	listeners []Listener
}

// Add appends a listener. Listeners are called in registration order.
func (d *Dispatcher) Add(l Listener) {
	d.listeners = append(d.listeners, l)
}

// Attach registers the controller's Handle method.
func (d *Dispatcher) Attach(c *stick.Controller) {
	d.Add(c.Handle)
}

// Dispatch delivers e until a listener stops propagation.
// It reports how many listeners saw the event.
func (d *Dispatcher) Dispatch(e *Event) int {
	n := 0
	for _, l := range d.listeners {
		if e.Stopped() {
			break
		}
		l(e.Kind, e)
		n++
	}
	return n
}

// DispatchAll delivers a batch in order.
func (d *Dispatcher) DispatchAll(events []*Event) {
	for _, e := range events {
		d.Dispatch(e)
	}
}
