// Package gui hosts the stick in a raylib window with mouse and multi-touch input.
package gui

import (
	"context"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/analogstick/internal/config"
	"github.com/san-kum/analogstick/internal/drive"
	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/host"
	"github.com/san-kum/analogstick/internal/logger"
	"github.com/san-kum/analogstick/internal/stick"
)

var (
	ColBg    = rl.NewColor(10, 10, 10, 255)
	ColBase  = rl.NewColor(0xab, 0xaf, 0xb8, 255)
	ColKnob  = rl.NewColor(0x33, 0x33, 0x33, 255)
	ColText  = rl.NewColor(140, 140, 140, 255)
	ColPuck  = rl.NewColor(180, 180, 180, 255)
	ColGuide = rl.NewColor(30, 30, 30, 255)
)

// App owns the window-side bindings of one stick.
type App struct {
	cfg        *config.Config
	ctrl       *stick.Controller
	pointer    *host.Pointer
	dispatcher *host.Dispatcher
	puck       *drive.Puck
	transform  host.Transform
	log        logger.Logger

	last     stick.MovePayload
	releases int
	touches  []host.TouchPoint
}

// NewApp builds the controller and places the stick in the lower left of the window.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}
	ctrl, err := cfg.NewController(stick.WithLogger(log.With(logger.F("component", "stick"))))
	if err != nil {
		return nil, err
	}

	margin := cfg.Stick.OuterRadius * 1.5
	t := host.Transform{Origin: geom.V(margin, float64(cfg.GUI.Height)-margin)}

	a := &App{
		cfg:        cfg,
		ctrl:       ctrl,
		pointer:    host.NewPointer(t, host.HitArea{HalfSize: cfg.Stick.TapArea}),
		dispatcher: &host.Dispatcher{},
		puck:       drive.NewPuck(cfg.Drive.Speed, ctrl.MaxOffset()),
		transform:  t,
		log:        log,
	}
	a.puck.Bounds = geom.V(float64(cfg.GUI.Width)/2, float64(cfg.GUI.Height)/2)
	a.puck.Attach(ctrl)
	a.dispatcher.Attach(ctrl)
	ctrl.OnMove(func(p stick.MovePayload) { a.last = p })
	ctrl.OnRelease(func() {
		a.releases++
		a.last = stick.MovePayload{}
		a.log.Debug("release", logger.F("count", a.releases))
	})
	return a, nil
}

// Run opens the window and blocks until it is closed or ctx is done.
// The logger is taken from ctx.
func Run(ctx context.Context, cfg *config.Config) error {
	a, err := NewApp(cfg, logger.FromContext(ctx))
	if err != nil {
		return err
	}
	rl.InitWindow(int32(cfg.GUI.Width), int32(cfg.GUI.Height), "analogstick")
	rl.SetTargetFPS(int32(cfg.GUI.FPS))
	rl.SetExitKey(0)
	defer rl.CloseWindow()

	a.log.Info("window opened",
		logger.F("width", cfg.GUI.Width),
		logger.F("height", cfg.GUI.Height))
	a.RunLoop(ctx)
	a.ctrl.Dispose()
	return nil
}

func (a *App) RunLoop(ctx context.Context) {
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		a.Update()
		a.Draw()
	}
}

// Update polls input once and advances the puck.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyR) {
		a.ctrl.Reset()
		a.puck.Release()
		a.last = stick.MovePayload{}
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.puck.Pos = geom.Vec2{}
	}

	a.dispatcher.DispatchAll(a.pointer.Update(a.poll()))
	a.puck.Step(float64(rl.GetFrameTime()))
}

func (a *App) poll() host.Frame {
	a.touches = a.touches[:0]
	n := rl.GetTouchPointCount()
	for i := int32(0); i < n; i++ {
		p := rl.GetTouchPosition(i)
		a.touches = append(a.touches, host.TouchPoint{
			ID:       stick.ContactID(rl.GetTouchPointId(i)),
			Position: geom.V(float64(p.X), float64(p.Y)),
		})
	}
	m := rl.GetMousePosition()
	return host.Frame{
		MouseDown: rl.IsMouseButtonDown(rl.MouseLeftButton),
		Mouse:     geom.V(float64(m.X), float64(m.Y)),
		Touches:   a.touches,
	}
}

func vec(v geom.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(ColBg)

	w, h := float64(a.cfg.GUI.Width), float64(a.cfg.GUI.Height)
	centre := geom.V(w/2, h/2)
	rl.DrawLineV(vec(geom.V(0, h/2)), vec(geom.V(w, h/2)), ColGuide)
	rl.DrawLineV(vec(geom.V(w/2, 0)), vec(geom.V(w/2, h)), ColGuide)
	rl.DrawCircleV(vec(centre.Add(a.puck.Pos)), 6, ColPuck)

	base := a.transform.Absolute(geom.Vec2{})
	knob := a.transform.Absolute(a.ctrl.Offset())
	rl.DrawCircleV(vec(base), float32(a.cfg.Stick.OuterRadius), ColBase)
	rl.DrawCircleV(vec(knob), float32(a.cfg.Stick.InnerRadius), ColKnob)

	status := "idle"
	if a.ctrl.Dragging() {
		status = "dragging"
	}
	rl.DrawText(fmt.Sprintf("%s  x %.1f  y %.1f  angle %.1f  length %.1f  releases %d",
		status, a.last.X, a.last.Y, a.last.Angle, a.last.Length, a.releases), 10, 10, 16, ColText)
	rl.DrawText(fmt.Sprintf("touches %d  fps %d   R:Reset C:Centre", len(a.touches), rl.GetFPS()), 10, 30, 16, ColText)

	for _, tp := range a.touches {
		rl.DrawCircleLines(int32(math.Round(tp.Position.X)), int32(math.Round(tp.Position.Y)), 20, ColText)
	}
}
