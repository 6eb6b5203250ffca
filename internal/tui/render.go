package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/draggable/internal/drag"
)

// boxOrigin is the box's untranslated position in panel content cells.
var boxOrigin = drag.Point{X: 1, Y: 1}

// boxContent returns the box's top-left corner in panel content cells.
func (a *App) boxContent() drag.Point {
	t := a.tracker.RenderState().Translation
	return boxOrigin.Add(drag.Point{X: math.Round(t.X), Y: math.Round(t.Y)})
}

// boxRect returns the box's screen rectangle, used for hit testing.
func (a *App) boxRect() drag.Rect {
	c := a.boxContent().Sub(a.panel.Scroll)
	return drag.Rect{
		Left:   a.panel.Rect.Left + 1 + c.X,
		Top:    a.panel.Rect.Top + 1 + c.Y,
		Width:  float64(a.cfg.UI.BoxWidth),
		Height: float64(a.cfg.UI.BoxHeight),
	}
}

func (a *App) View() string {
	if a.quit {
		return ""
	}
	var b strings.Builder
	top := max(a.cfg.UI.PanelTop, 0)
	for i := 0; i < top; i++ {
		if i == 0 {
			b.WriteString(titleStyle.Render("draggable") + statusStyle.Render("  drag the box · r remount · arrows scroll · q quit"))
		}
		b.WriteString("\n")
	}
	pad := strings.Repeat(" ", max(a.cfg.UI.PanelLeft, 0))
	for _, line := range strings.Split(a.renderPanel(), "\n") {
		b.WriteString(pad + line + "\n")
	}
	b.WriteString(a.renderStatus())
	return b.String()
}

func (a *App) renderStatus() string {
	rs := a.tracker.RenderState()
	parts := []string{
		"state " + a.tracker.State().String(),
		fmt.Sprintf("translate(%g, %g)", rs.Translation.X, rs.Translation.Y),
		fmt.Sprintf("scroll(%g, %g)", a.panel.Scroll.X, a.panel.Scroll.Y),
	}
	if rs.Dragging {
		parts = append(parts, "source "+a.tracker.Source().String())
	}
	if a.status != "" {
		parts = append(parts, a.status)
	}
	return statusBarStyle.Render(strings.Join(parts, "  │  "))
}

// renderPanel draws the panel interior with the box clipped to the visible area.
func (a *App) renderPanel() string {
	innerW := max(a.cfg.UI.PanelWidth-2, 0)
	innerH := max(a.cfg.UI.PanelHeight-2, 0)
	style := boxStyle
	if a.tracker.RenderState().Dragging {
		style = boxDragStyle
	}
	box := renderBox(style, a.cfg.UI.BoxLabel, a.cfg.UI.BoxWidth, a.cfg.UI.BoxHeight)

	pos := a.boxContent().Sub(a.panel.Scroll)
	body := overlayAt(canvas(innerW, innerH), box, int(pos.X), int(pos.Y), innerW, innerH)
	return panelStyle.Render(body)
}

// renderBox draws the w x h box with the label wrapped inside its border.
func renderBox(style lipgloss.Style, label string, w, h int) string {
	innerW := max(w-2, 1)
	innerH := max(h-2, 1)
	text := splitLines(ansi.Strip(lipgloss.NewStyle().Width(innerW).Render(label)))
	if len(text) > innerH {
		text = text[:innerH]
	}
	return style.Width(innerW).Height(innerH).Render(strings.Join(text, "\n"))
}
