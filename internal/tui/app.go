package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/draggable/internal/config"
	"github.com/jask/draggable/internal/drag"
	"github.com/jask/draggable/internal/service"
	"github.com/jask/draggable/internal/touch"
)

// App is the owning view of one draggable box inside a scrollable panel.
type App struct {
	ctx      context.Context
	cfg      config.Config
	log      *zap.Logger
	recorder *service.Recorder

	doc     *drag.Document
	panel   *drag.Panel
	tracker *drag.Tracker
	mounts  int

	width  int
	height int
	status string
	quit   bool
}

// TouchMsg carries one frame from the touch feed into the update loop.
type TouchMsg touch.Frame

type statusMsg string

type errMsg struct{ error }

// maxScroll bounds how far the panel content can scroll.
const maxScroll = 200

// New builds the view. recorder may be nil when the journal is disabled.
func New(ctx context.Context, cfg config.Config, log *zap.Logger, recorder *service.Recorder) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		log:      log,
		recorder: recorder,
		doc:      drag.NewDocument(),
		panel: &drag.Panel{Rect: drag.Rect{
			Left:   float64(cfg.UI.PanelLeft),
			Top:    float64(cfg.UI.PanelTop),
			Width:  float64(cfg.UI.PanelWidth),
			Height: float64(cfg.UI.PanelHeight),
		}},
	}
	a.mount()
	return a
}

// mount attaches a fresh tracker to the box.
func (a *App) mount() {
	a.mounts++
	a.tracker = drag.New(a.doc, &drag.Box{Parent: a.panel},
		drag.WithLogger(a.log),
		drag.WithObserver(func(s drag.Snapshot) {
			a.log.Debug("tracker",
				zap.Stringer("state", s.State),
				zap.Float64("x", s.Translation.X),
				zap.Float64("y", s.Translation.Y))
		}),
	)
}

// unmount tears the tracker down with the box.
func (a *App) unmount() {
	if a.tracker != nil {
		a.tracker.Close()
	}
}

// Tracker exposes the mounted tracker.
func (a *App) Tracker() *drag.Tracker { return a.tracker }

// Document exposes the document-level dispatcher.
func (a *App) Document() *drag.Document { return a.doc }

func (a *App) Init() tea.Cmd {
	if id := a.recorder.ID(); id != "" {
		return func() tea.Msg { return statusMsg("recording " + id) }
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.MouseMsg:
		a.handleMouse(m)
	case TouchMsg:
		a.handleTouch(touch.Frame(m))
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		a.unmount()
		a.quit = true
		return a, tea.Quit
	case "r":
		a.unmount()
		a.mount()
		a.status = fmt.Sprintf("remounted (%d)", a.mounts)
	case "up", "k":
		a.scroll(0, -1)
	case "down", "j":
		a.scroll(0, 1)
	case "left", "h":
		a.scroll(-1, 0)
	case "right", "l":
		a.scroll(1, 0)
	}
	return a, nil
}

// scroll moves the panel content unless a drag holds gesture suppression.
func (a *App) scroll(dx, dy float64) {
	if a.doc.GesturesSuppressed() {
		return
	}
	s := a.panel.Scroll.Add(drag.Point{X: dx, Y: dy})
	a.panel.Scroll = drag.Point{X: clamp(s.X, 0, maxScroll), Y: clamp(s.Y, 0, maxScroll)}
}

func (a *App) handleMouse(m tea.MouseMsg) {
	if tea.MouseEvent(m).IsWheel() {
		switch m.Button {
		case tea.MouseButtonWheelUp:
			a.scroll(0, -1)
		case tea.MouseButtonWheelDown:
			a.scroll(0, 1)
		case tea.MouseButtonWheelLeft:
			a.scroll(-1, 0)
		case tea.MouseButtonWheelRight:
			a.scroll(1, 0)
		}
		return
	}
	in := drag.MouseInput{X: float64(m.X), Y: float64(m.Y), Button: mouseButton(m.Button)}
	switch m.Action {
	case tea.MouseActionPress:
		if !a.boxRect().Contains(drag.Point{X: in.X, Y: in.Y}) {
			return
		}
		a.deliver(drag.PhaseStart, in)
	case tea.MouseActionMotion:
		a.deliver(drag.PhaseMove, in)
	case tea.MouseActionRelease:
		a.deliver(drag.PhaseEnd, in)
	}
}

func (a *App) handleTouch(f touch.Frame) {
	if f.Phase == drag.PhaseStart {
		p, ok := f.Input.Position()
		if !ok || !a.boxRect().Contains(p) {
			return
		}
	}
	a.deliver(f.Phase, f.Input)
}

// deliver journals a notification and routes it to the tracker. Moves are
// only journaled while a drag consumes them.
func (a *App) deliver(phase drag.Phase, in drag.Input) {
	if phase != drag.PhaseStart && !a.tracker.RenderState().Dragging {
		return
	}
	a.recorder.Record(a.ctx, phase, in)
	drag.Deliver(a.doc, a.tracker.RenderState().Handlers, phase, in)
}

func mouseButton(b tea.MouseButton) drag.Button {
	switch b {
	case tea.MouseButtonLeft:
		return drag.ButtonLeft
	case tea.MouseButtonMiddle:
		return drag.ButtonMiddle
	case tea.MouseButtonRight:
		return drag.ButtonRight
	default:
		return drag.ButtonOther
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
