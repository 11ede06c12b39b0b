// Package tui hosts the stick in a terminal using Bubble Tea mouse events.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/analogstick/internal/config"
	"github.com/san-kum/analogstick/internal/drive"
	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/host"
	"github.com/san-kum/analogstick/internal/logger"
	"github.com/san-kum/analogstick/internal/stick"
)

// canvas position inside the rendered view: padding(1,2) plus the header line
const (
	canvasLeft = 2
	canvasTop  = 2
	fieldCols  = 24
	fieldRows  = 6
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model wires terminal mouse input to a stick controller.
type Model struct {
	cfg        *config.Config
	ctrl       *stick.Controller
	dispatcher *host.Dispatcher
	mouse      *host.MouseTracker
	puck       *drive.Puck
	canvas     *Canvas
	field      *Canvas
	log        logger.Logger

	last     stick.MovePayload
	lengths  []float64
	releases int
	lastTick time.Time
}

// NewModel builds the controller and bindings described by cfg.
func NewModel(cfg *config.Config, log logger.Logger) (*Model, error) {
	if log == nil {
		log = logger.NewNop()
	}
	ctrl, err := cfg.NewController(stick.WithLogger(log.With(logger.F("component", "stick"))))
	if err != nil {
		return nil, err
	}

	dots := int(math.Ceil(2*cfg.Stick.OuterRadius)) + 4
	cols := (dots + 1) / 2
	rows := (dots + 3) / 4

	// cells are 2 dots wide and 4 dots tall, local units are dots
	transform := host.Transform{
		Origin: geom.V(canvasLeft+float64(cols)/2, canvasTop+float64(rows)/2),
		Scale:  geom.V(0.5, 0.25),
	}

	m := &Model{
		cfg:        cfg,
		ctrl:       ctrl,
		dispatcher: &host.Dispatcher{},
		mouse:      host.NewMouseTracker(transform, host.HitArea{HalfSize: cfg.Stick.TapArea}),
		puck:       drive.NewPuck(cfg.Drive.Speed, ctrl.MaxOffset()),
		canvas:     NewCanvas(cols, rows),
		field:      NewCanvas(fieldCols, fieldRows),
		log:        log,
	}
	m.puck.Bounds = geom.V(fieldCols-1, fieldRows*2-1)
	m.puck.Attach(ctrl)
	m.dispatcher.Attach(ctrl)

	ctrl.OnMove(func(p stick.MovePayload) { m.last = p })
	ctrl.OnRelease(func() {
		m.releases++
		m.last = stick.MovePayload{}
	})
	return m, nil
}

// Controller exposes the underlying controller.
func (m *Model) Controller() *stick.Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.TUI.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles mouse, key and tick messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.ctrl.Reset()
			m.puck.Release()
			m.last = stick.MovePayload{}
			m.log.Info("stick reset")
		case "c":
			m.puck.Pos = geom.Vec2{}
		}
	case tea.MouseMsg:
		m.handleMouse(tea.MouseEvent(msg))
	case TickMsg:
		now := time.Time(msg)
		dt := 1 / float64(m.cfg.TUI.FPS)
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick).Seconds()
		}
		m.lastTick = now
		m.step(dt)
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleMouse(ev tea.MouseEvent) {
	// sample the middle of the cell
	pos := geom.V(float64(ev.X)+0.5, float64(ev.Y)+0.5)

	var events []*host.Event
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return
		}
		events = m.mouse.Update(true, pos)
	case tea.MouseActionMotion:
		if !m.mouse.Tracking() {
			return
		}
		events = m.mouse.Update(true, pos)
	case tea.MouseActionRelease:
		events = m.mouse.Update(false, pos)
	}
	m.dispatcher.DispatchAll(events)
}

func (m *Model) step(dt float64) {
	m.puck.Step(dt)

	length := 0.0
	if m.ctrl.Dragging() {
		length = m.last.Length
	}
	m.lengths = append(m.lengths, length)
	if limit := m.cfg.TUI.History; limit > 0 && len(m.lengths) > limit {
		m.lengths = m.lengths[len(m.lengths)-limit:]
	}
}

func (m *Model) draw() {
	c := m.canvas
	c.Clear()
	cx, cy := c.Width, c.Height*2

	c.DrawCircle(cx, cy, int(math.Round(m.cfg.Stick.OuterRadius)))
	off := m.ctrl.Offset()
	kx, ky := cx+int(math.Round(off.X)), cy+int(math.Round(off.Y))
	if !off.IsZero() {
		c.DrawLine(cx, cy, kx, ky)
	}
	c.FillCircle(kx, ky, int(math.Round(m.cfg.Stick.InnerRadius)))

	f := m.field
	f.Clear()
	fx := f.Width + int(math.Round(m.puck.Pos.X))
	fy := f.Height*2 + int(math.Round(m.puck.Pos.Y))
	f.FillCircle(fx, fy, 1)
}

// View renders the stick, its output and the recent deflection history.
func (m *Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(headerStyle.Render("ANALOG STICK") + "\n" + m.canvas.String())

	var s strings.Builder
	status := "IDLE"
	if m.ctrl.Dragging() {
		status = activeStyle.Render("DRAGGING")
	}
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("x") + valueStyle.Render(fmt.Sprintf("%8.2f", m.last.X)) + "\n")
	s.WriteString(labelStyle.Render("y") + valueStyle.Render(fmt.Sprintf("%8.2f", m.last.Y)) + "\n")
	s.WriteString(labelStyle.Render("angle") + valueStyle.Render(fmt.Sprintf("%8.2f°", m.last.Angle)) + "\n")
	s.WriteString(labelStyle.Render("length") + valueStyle.Render(fmt.Sprintf("%8.2f", m.last.Length)) + "\n")
	off := m.ctrl.Offset()
	s.WriteString(labelStyle.Render("knob") + valueStyle.Render(fmt.Sprintf("(%.1f, %.1f)", off.X, off.Y)) + "\n")
	s.WriteString(labelStyle.Render("releases") + valueStyle.Render(fmt.Sprintf("%d", m.releases)) + "\n")

	if len(m.lengths) > 1 {
		chart := asciigraph.Plot(m.lengths, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("length"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(m.field.String() + "\n")
	s.WriteString(helpStyle.Render("drag the knob with the mouse\nR:Reset C:Centre Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts the terminal program and blocks until it quits or ctx is done.
// The logger is taken from ctx.
func Run(ctx context.Context, cfg *config.Config) error {
	m, err := NewModel(cfg, logger.FromContext(ctx))
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	m.ctrl.Dispose()
	return err
}
