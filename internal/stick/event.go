package stick

import (
	"fmt"

	"github.com/san-kum/analogstick/internal/geom"
)

// Kind is the unified input event kind, independent of modality.
type Kind int

const (
	Start Kind = iota
	Move
	End
	EndOutside
)

var kindNames = map[Kind]string{
	Start:      "start",
	Move:       "move",
	End:        "end",
	EndOutside: "end_outside",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind: %q", s)
}

// Modality is the input device class an event came from.
type Modality int

const (
	Mouse Modality = iota
	Touch
)

func (m Modality) String() string {
	switch m {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	}
	return fmt.Sprintf("modality(%d)", int(m))
}

// ParseModality maps "mouse" or "touch" to its Modality.
func ParseModality(s string) (Modality, error) {
	switch s {
	case "mouse":
		return Mouse, nil
	case "touch":
		return Touch, nil
	}
	return 0, fmt.Errorf("unknown modality: %q", s)
}

// ContactID identifies one touch point among concurrent touches.
// It is meaningless for mouse events.
type ContactID int64

// Event is what a host binding delivers to the controller.
type Event interface {
	Modality() Modality
	Contact() ContactID
	// LocalPosition resolves the event position into control-local coordinates.
	LocalPosition() geom.Vec2
	// StopPropagation keeps the event from reaching peer listeners.
	StopPropagation()
}

// MovePayload is emitted on every accepted move. X, Y and Length describe the
// raw displacement from the anchor, not the clamped knob offset.
type MovePayload struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Angle  float64 `yaml:"angle"`
	Length float64 `yaml:"length"`
}
