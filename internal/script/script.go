// Package script replays recorded gestures against a stick controller.
//
// A script is a YAML list of unified events in control-local coordinates:
//
//	name: flick-right
//	stick: {outer_radius: 60, inner_radius: 30}
//	steps:
//	  - {kind: start, modality: touch, contact: 1, x: 0, y: 0}
//	  - {kind: move, modality: touch, contact: 1, x: 100, y: 0}
//	  - {kind: end, modality: touch, contact: 1, x: 100, y: 0}
package script

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/analogstick/internal/config"
	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/host"
	"github.com/san-kum/analogstick/internal/logger"
	"github.com/san-kum/analogstick/internal/stick"
)

type Script struct {
	Name  string             `yaml:"name"`
	Stick config.StickConfig `yaml:"stick,omitempty"`
	Steps []Step             `yaml:"steps"`
}

type Step struct {
	Kind     string  `yaml:"kind"`
	Modality string  `yaml:"modality,omitempty"` // mouse when empty
	Contact  int64   `yaml:"contact,omitempty"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
}

// Trace is what a replay produced.
type Trace struct {
	Moves    []stick.MovePayload
	Offsets  []geom.Vec2 // knob offset right after each move
	Releases int
	Steps    int
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a script and rejects unknown kinds or modalities.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if _, err := s.events(); err != nil {
		return nil, err
	}
	return &s, nil
}

func Save(path string, s *Script) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Controller builds a controller from the script's geometry, falling back to
// def for any radius the script leaves unset.
func (s *Script) Controller(def config.StickConfig, opts ...stick.Option) (*stick.Controller, error) {
	outer, inner := s.Stick.OuterRadius, s.Stick.InnerRadius
	if outer == 0 {
		outer = def.OuterRadius
	}
	if inner == 0 {
		inner = def.InnerRadius
	}
	return stick.New(outer, inner, opts...)
}

func (s *Script) events() ([]*host.Event, error) {
	events := make([]*host.Event, 0, len(s.Steps))
	for i, st := range s.Steps {
		kind, err := stick.ParseKind(st.Kind)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		modality := stick.Mouse
		if st.Modality != "" {
			if modality, err = stick.ParseModality(st.Modality); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
		}
		pos := geom.V(st.X, st.Y)
		if !pos.IsValid() {
			return nil, fmt.Errorf("step %d: position (%v, %v) is not finite", i, st.X, st.Y)
		}
		events = append(events, &host.Event{
			Kind:     kind,
			Input:    modality,
			ID:       stick.ContactID(st.Contact),
			Position: pos,
		})
	}
	return events, nil
}

// Run replays every step through a dispatcher into ctrl and records the
// notifications it emitted. Subscriptions are removed before returning.
// The logger is taken from ctx; cancelling ctx stops the replay between steps.
func Run(ctx context.Context, ctrl *stick.Controller, s *Script) (*Trace, error) {
	events, err := s.events()
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx).With(logger.F("script", s.Name))

	tr := &Trace{}
	moveID := ctrl.OnMove(func(p stick.MovePayload) {
		tr.Moves = append(tr.Moves, p)
		tr.Offsets = append(tr.Offsets, ctrl.Offset())
	})
	releaseID := ctrl.OnRelease(func() { tr.Releases++ })
	defer ctrl.Off(moveID)
	defer ctrl.Off(releaseID)

	var d host.Dispatcher
	d.Attach(ctrl)
	for i, e := range events {
		if err := ctx.Err(); err != nil {
			return tr, fmt.Errorf("replay stopped at step %d: %w", i, err)
		}
		n := d.Dispatch(e)
		log.Debug("step dispatched",
			logger.F("step", i),
			logger.F("kind", e.Kind.String()),
			logger.F("modality", e.Input.String()),
			logger.F("listeners", n))
		tr.Steps++
	}
	return tr, nil
}

// Lengths returns the length of every recorded move.
func (t *Trace) Lengths() []float64 {
	out := make([]float64, len(t.Moves))
	for i, m := range t.Moves {
		out[i] = m.Length
	}
	return out
}

// Angles returns the angle of every recorded move.
func (t *Trace) Angles() []float64 {
	out := make([]float64, len(t.Moves))
	for i, m := range t.Moves {
		out[i] = m.Angle
	}
	return out
}
