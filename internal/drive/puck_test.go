package drive

import (
	"math"
	"testing"

	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/stick"
)

func TestPuck_SetInputSaturates(t *testing.T) {
	p := NewPuck(10, 30)

	p.SetInput(stick.MovePayload{X: 15, Y: 0, Length: 15})
	if p.Input() != geom.V(0.5, 0) {
		t.Errorf("half deflection: got %v", p.Input())
	}

	p.SetInput(stick.MovePayload{X: 0, Y: -300, Length: 300})
	if in := p.Input(); math.Abs(in.Y+1) > 1e-12 || in.X != 0 {
		t.Errorf("full deflection should saturate at unit length, got %v", in)
	}
}

func TestPuck_Step(t *testing.T) {
	p := NewPuck(10, 30)
	p.SetInput(stick.MovePayload{X: 30, Y: 0, Length: 30})

	for i := 0; i < 10; i++ {
		p.Step(0.1)
	}
	if math.Abs(p.Pos.X-10) > 1e-9 || p.Pos.Y != 0 {
		t.Errorf("expected (10,0) after 1s, got %v", p.Pos)
	}

	p.Release()
	p.Step(1)
	if math.Abs(p.Pos.X-10) > 1e-9 {
		t.Errorf("released puck should not move, got %v", p.Pos)
	}
}

func TestPuck_Bounds(t *testing.T) {
	p := NewPuck(100, 30)
	p.Bounds = geom.V(5, 5)
	p.SetInput(stick.MovePayload{X: -30, Y: 30, Length: 42.4})

	p.Step(1)
	if p.Pos != geom.V(-5, 5) {
		t.Errorf("expected clamp to (-5,5), got %v", p.Pos)
	}
}

func TestPuck_Attach(t *testing.T) {
	ctrl, err := stick.New(60, 30)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPuck(1, 0)
	p.Attach(ctrl)

	ctrl.OnContactStart(mouseAt(0, 0))
	ctrl.OnContactMove(mouseAt(0, 15))
	if p.Input() != geom.V(0, 0.5) {
		t.Errorf("expected (0,0.5), got %v", p.Input())
	}

	ctrl.OnContactEnd(mouseAt(0, 15))
	if p.Input() != (geom.Vec2{}) {
		t.Errorf("release should zero input, got %v", p.Input())
	}
}

type mouseEvent struct{ pos geom.Vec2 }

func (e mouseEvent) Modality() stick.Modality { return stick.Mouse }
func (e mouseEvent) Contact() stick.ContactID { return 0 }
func (e mouseEvent) LocalPosition() geom.Vec2 { return e.pos }
func (e mouseEvent) StopPropagation()         {}

func mouseAt(x, y float64) mouseEvent { return mouseEvent{geom.V(x, y)} }
