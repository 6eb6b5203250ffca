package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/draggable/internal/database"
	"github.com/jask/draggable/internal/database/repository"
	"github.com/jask/draggable/internal/drag"
)

func openJournal(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordAndReplay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openJournal(t)
	recs := repository.NewRecordingRepo(db)
	events := repository.NewEventRepo(db)

	rec := &Recorder{Recordings: recs, Events: events}
	id, err := rec.Begin(ctx, "two drags")
	require.NoError(t, err)
	require.Equal(t, id, rec.ID())

	// live run inside a scrolled panel: the correction must not leak into deltas
	panel := &drag.Panel{Rect: drag.Rect{Left: 10, Top: 3}, Scroll: drag.Point{X: 5, Y: 1}}
	doc := drag.NewDocument()
	tr := drag.New(doc, &drag.Box{Parent: panel})
	defer tr.Close()
	h := tr.RenderState().Handlers

	feed := []struct {
		phase drag.Phase
		in    drag.Input
	}{
		{drag.PhaseMove, drag.MouseInput{X: 1, Y: 1}},
		{drag.PhaseStart, drag.MouseInput{X: 50, Y: 50}},
		{drag.PhaseMove, drag.MouseInput{X: 70, Y: 65}},
		{drag.PhaseEnd, drag.MouseInput{X: 70, Y: 65}},
		{drag.PhaseStart, drag.MouseInput{X: 3, Y: 3, Button: drag.ButtonRight}},
		{drag.PhaseStart, drag.TouchInput{Touches: []drag.Touch{{ID: 9, X: 10, Y: 10}, {ID: 10, X: 1, Y: 1}}}},
		{drag.PhaseMove, drag.MouseInput{X: 400, Y: 400}},
		{drag.PhaseMove, drag.TouchInput{Touches: []drag.Touch{{ID: 9, X: 10, Y: 30}}}},
		{drag.PhaseEnd, drag.TouchInput{}},
	}
	for _, f := range feed {
		drag.Deliver(doc, h, f.phase, f.in)
		rec.Record(ctx, f.phase, f.in)
	}
	require.Equal(t, drag.Point{X: 20, Y: 35}, tr.Translation())

	n, err := events.Count(ctx, id)
	require.NoError(t, err)
	require.Equal(t, len(feed), n)

	res, err := (&Replayer{Recordings: recs, Events: events}).Replay(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "two drags", res.Recording.Label)
	require.Len(t, res.Steps, len(feed))
	require.Zero(t, res.Skipped)
	require.Equal(t, tr.Translation(), res.Final)
	require.Equal(t, tr.Baseline(), res.Baseline)
	require.Equal(t, drag.Idle, res.Steps[0].State)
	require.Equal(t, drag.Point{X: 20, Y: 15}, res.Steps[2].Translation)
	require.Equal(t, drag.Idle, res.Steps[4].State)
	require.Equal(t, drag.SourceTouch, res.Steps[5].Source)
	require.Equal(t, drag.Point{X: 20, Y: 15}, res.Steps[6].Translation)
}

func TestReplayUnknownRecording(t *testing.T) {
	t.Parallel()
	db := openJournal(t)
	_, err := (&Replayer{Recordings: repository.NewRecordingRepo(db), Events: repository.NewEventRepo(db)}).
		Replay(context.Background(), "missing")
	require.ErrorContains(t, err, "not found")
}

func TestNilRecorderIsInert(t *testing.T) {
	var rec *Recorder
	id, err := rec.Begin(context.Background(), "x")
	require.NoError(t, err)
	require.Empty(t, id)
	require.NotPanics(t, func() { rec.Record(context.Background(), drag.PhaseMove, drag.MouseInput{}) })
}

func TestRecordFailureDoesNotPanic(t *testing.T) {
	t.Parallel()
	db := openJournal(t)
	rec := &Recorder{Recordings: repository.NewRecordingRepo(db), Events: repository.NewEventRepo(db)}
	_, err := rec.Begin(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NotPanics(t, func() { rec.Record(context.Background(), drag.PhaseStart, drag.MouseInput{}) })
}

func TestInputEventConversion(t *testing.T) {
	ev := EventFromInput(drag.PhaseMove, drag.TouchInput{Touches: []drag.Touch{{ID: 4, X: 2, Y: 3}, {ID: 5}}})
	require.Equal(t, repository.KindMove, ev.Kind)
	require.Equal(t, "touch", ev.Source)
	require.Equal(t, 2, ev.Touches)

	phase, in, err := InputFromEvent(ev)
	require.NoError(t, err)
	require.Equal(t, drag.PhaseMove, phase)
	p, ok := in.Position()
	require.True(t, ok)
	require.Equal(t, drag.Point{X: 2, Y: 3}, p)

	_, _, err = InputFromEvent(repository.InputEvent{Kind: repository.KindMove, Source: "pen"})
	require.Error(t, err)
	_, _, err = InputFromEvent(repository.InputEvent{Kind: "drop", Source: "mouse"})
	require.Error(t, err)
}

func TestEventKindsRoundTrip(t *testing.T) {
	for _, kind := range []string{repository.KindStart, repository.KindMove, repository.KindEnd} {
		phase, in, err := InputFromEvent(repository.InputEvent{Kind: kind, Source: "mouse"})
		require.NoError(t, err)
		require.Equal(t, kind, EventFromInput(phase, in).Kind)
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openJournal(t)
	recs := repository.NewRecordingRepo(db)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, recs.Create(ctx, repository.Recording{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	m := &MaintenanceService{DB: db}
	removed, err := m.Prune(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	list, err := recs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "new", list[0].ID)

	require.NoError(t, m.Reset(ctx))
	list, err = recs.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}
