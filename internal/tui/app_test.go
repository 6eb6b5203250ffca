package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/jask/draggable/internal/config"
	"github.com/jask/draggable/internal/database"
	"github.com/jask/draggable/internal/database/repository"
	"github.com/jask/draggable/internal/drag"
	"github.com/jask/draggable/internal/service"
	"github.com/jask/draggable/internal/touch"
)

func testConfig() config.Config {
	return config.Config{UI: config.UIConfig{
		BoxWidth:    10,
		BoxHeight:   4,
		BoxLabel:    "drag me around",
		PanelLeft:   2,
		PanelTop:    1,
		PanelWidth:  40,
		PanelHeight: 12,
		MouseMode:   "cell",
	}}
}

func press(x, y int, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: b}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(a *App, msgs ...tea.Msg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func TestBoxHitRect(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)
	require.Equal(t, drag.Rect{Left: 4, Top: 3, Width: 10, Height: 4}, a.boxRect())
}

func TestMouseDragMovesBox(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)

	send(a, press(5, 4, tea.MouseButtonLeft))
	require.Equal(t, drag.Dragging, a.Tracker().State())
	send(a, motion(8, 6))
	require.Equal(t, drag.Point{X: 3, Y: 2}, a.Tracker().Translation())

	// release outside the box still ends the drag
	send(a, release(30, 10))
	require.Equal(t, drag.Idle, a.Tracker().State())
	require.Equal(t, drag.Point{X: 3, Y: 2}, a.Tracker().Baseline())
	require.Equal(t, drag.Rect{Left: 7, Top: 5, Width: 10, Height: 4}, a.boxRect())

	// moving the box moves its hit area
	send(a, press(5, 4, tea.MouseButtonLeft))
	require.Equal(t, drag.Idle, a.Tracker().State())
	send(a, press(8, 6, tea.MouseButtonLeft), motion(8, 10), release(8, 10))
	require.Equal(t, drag.Point{X: 3, Y: 6}, a.Tracker().Translation())
}

func TestMouseIgnoredCases(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)

	send(a, motion(20, 20), release(20, 20))
	send(a, press(0, 0, tea.MouseButtonLeft), motion(10, 10))
	send(a, press(5, 4, tea.MouseButtonRight), motion(9, 9))
	send(a, press(5, 4, tea.MouseButtonMiddle), motion(9, 9))

	require.Equal(t, drag.Idle, a.Tracker().State())
	require.Equal(t, drag.Point{}, a.Tracker().Translation())
}

func TestScrollIsSuppressedWhileDragging(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)

	send(a, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	require.Equal(t, drag.Point{Y: 1}, a.panel.Scroll)
	send(a, key("k"))
	require.Equal(t, drag.Point{}, a.panel.Scroll)

	send(a, press(5, 3, tea.MouseButtonLeft))
	require.True(t, a.Document().GesturesSuppressed())
	send(a, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}, key("l"))
	require.Equal(t, drag.Point{}, a.panel.Scroll)

	send(a, release(5, 3))
	require.False(t, a.Document().GesturesSuppressed())
	send(a, key("l"))
	require.Equal(t, drag.Point{X: 1}, a.panel.Scroll)
}

func TestDragInsideScrolledPanel(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)
	send(a, key("j"), key("j"), key("l"))
	require.Equal(t, drag.Point{X: 1, Y: 2}, a.panel.Scroll)

	r := a.boxRect()
	require.Equal(t, drag.Rect{Left: 3, Top: 1, Width: 10, Height: 4}, r)

	send(a, press(3, 1, tea.MouseButtonLeft))
	origin, ok := a.Tracker().Origin()
	require.True(t, ok)
	// 3 + 1 - 2, 1 + 2 - 1
	require.Equal(t, drag.Point{X: 2, Y: 2}, origin)

	send(a, motion(7, 2), release(7, 2))
	require.Equal(t, drag.Point{X: 4, Y: 1}, a.Tracker().Translation())
}

func TestTouchDragIsExclusive(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)

	send(a, TouchMsg{Phase: drag.PhaseStart, Input: drag.TouchInput{Touches: []drag.Touch{{ID: 1, X: 5, Y: 4}}}})
	require.Equal(t, drag.SourceTouch, a.Tracker().Source())
	send(a, motion(30, 10), release(30, 10))
	require.Equal(t, drag.Dragging, a.Tracker().State())

	send(a,
		TouchMsg{Phase: drag.PhaseMove, Input: drag.TouchInput{Touches: []drag.Touch{{ID: 1, X: 9, Y: 5}}}},
		TouchMsg{Phase: drag.PhaseEnd},
	)
	require.Equal(t, drag.Idle, a.Tracker().State())
	require.Equal(t, drag.Point{X: 4, Y: 1}, a.Tracker().Baseline())

	// touch outside the box is not a drag start
	send(a, TouchMsg(touch.Frame{Phase: drag.PhaseStart, Input: drag.TouchInput{Touches: []drag.Touch{{X: 0, Y: 0}}}}))
	require.Equal(t, drag.Idle, a.Tracker().State())
}

func TestRemountReleasesSubscriptions(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)

	for i := 0; i < 5; i++ {
		send(a, press(5, 4, tea.MouseButtonLeft), motion(6, 5))
		require.Equal(t, 1, a.Document().Listeners(drag.SourceMouse))
		old := a.Tracker()
		send(a, key("r"))
		require.Zero(t, a.Document().Listeners(drag.SourceMouse))
		require.False(t, a.Document().GesturesSuppressed())

		a.Document().DispatchMove(drag.MouseInput{X: 40, Y: 40})
		require.Equal(t, drag.Point{X: 1, Y: 1}, old.Translation())
		require.Equal(t, drag.Point{}, a.Tracker().Translation())
	}
	require.Contains(t, a.status, "remounted (6)")
}

func TestQuitClosesTracker(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)
	send(a, press(5, 4, tea.MouseButtonLeft))

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Zero(t, a.Document().Listeners(drag.SourceMouse))
	require.Equal(t, drag.Idle, a.Tracker().State())
	require.Empty(t, a.View())
}

func TestViewRendersBoxAndStatus(t *testing.T) {
	a := New(context.Background(), testConfig(), nil, nil)
	send(a, press(5, 4, tea.MouseButtonLeft), motion(7, 4))

	out := a.View()
	require.Contains(t, out, "draggable")
	require.Contains(t, out, "drag me")
	require.Contains(t, out, "state dragging")
	require.Contains(t, out, "translate(2, 0)")
	require.Contains(t, out, "source mouse")
	require.GreaterOrEqual(t, len(strings.Split(out, "\n")), testConfig().UI.PanelHeight+1)
}

func TestViewToleratesNegativePanelOffset(t *testing.T) {
	cfg := testConfig()
	cfg.UI.PanelLeft, cfg.UI.PanelTop = -1, -3
	a := New(context.Background(), cfg, nil, nil)

	require.NotPanics(t, func() { _ = a.View() })
	require.Contains(t, a.View(), "state idle")
}

func TestRenderBoxSize(t *testing.T) {
	box := renderBox(boxStyle, "the snozzberries taste like snozzberries", 12, 5)
	require.Equal(t, 12, lipgloss.Width(box))
	require.Equal(t, 5, lipgloss.Height(box))
}

func TestOverlayClipsAtEdges(t *testing.T) {
	base := canvas(6, 3)
	box := "ab\ncd"

	require.Equal(t, "      \n  ab  \n  cd  ", overlayAt(base, box, 2, 1, 6, 3))
	require.Equal(t, "b     \nd     \n      ", overlayAt(base, box, -1, 0, 6, 3))
	require.Equal(t, "     a\n     c\n      ", overlayAt(base, box, 5, 0, 6, 3))
	require.Equal(t, "cd    \n      \n      ", overlayAt(base, box, 0, -1, 6, 3))
	require.Equal(t, base, overlayAt(base, box, 6, 0, 6, 3))
}

func TestDeliveredInputIsJournaled(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	recs := repository.NewRecordingRepo(db)
	events := repository.NewEventRepo(db)
	rec := &service.Recorder{Recordings: recs, Events: events}
	id, err := rec.Begin(ctx, "tui")
	require.NoError(t, err)

	a := New(ctx, testConfig(), nil, rec)
	// idle motion is not journaled
	send(a, motion(1, 1), press(5, 4, tea.MouseButtonLeft), motion(8, 6), release(8, 6))

	n, err := events.Count(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	res, err := (&service.Replayer{Recordings: recs, Events: events}).Replay(ctx, id)
	require.NoError(t, err)
	require.Equal(t, a.Tracker().Translation(), res.Final)
}
