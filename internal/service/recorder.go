package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/draggable/internal/database"
	"github.com/jask/draggable/internal/database/repository"
	"github.com/jask/draggable/internal/drag"
)

// Recorder journals input notifications as the view delivers them. A nil
// *Recorder records nothing.
type Recorder struct {
	Recordings *repository.RecordingRepo
	Events     *repository.EventRepo
	Log        *zap.Logger
	Now        func() time.Time

	id  string
	seq int64
}

// Begin opens a new recording and returns its id.
func (r *Recorder) Begin(ctx context.Context, label string) (string, error) {
	if r == nil {
		return "", nil
	}
	if r.Recordings == nil || r.Events == nil {
		return "", fmt.Errorf("recorder: repos not configured")
	}
	rec := repository.Recording{ID: uuid.NewString(), Label: label, CreatedAt: r.now()}
	if err := r.Recordings.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("create recording: %w", err)
	}
	r.id = rec.ID
	r.seq = 0
	return rec.ID, nil
}

// ID returns the active recording id, or "" when none is open.
func (r *Recorder) ID() string {
	if r == nil {
		return ""
	}
	return r.id
}

// Record appends one notification. Journal failures are logged and never
// reach the tracker.
func (r *Recorder) Record(ctx context.Context, phase drag.Phase, in drag.Input) {
	if r == nil || r.id == "" || in == nil {
		return
	}
	r.seq++
	ev := EventFromInput(phase, in)
	ev.RecordingID = r.id
	ev.Seq = r.seq
	ev.At = r.now()
	if err := r.Events.Append(ctx, ev); err != nil {
		r.logger().Warn("journal append failed",
			zap.String("recording", r.id),
			zap.Int64("seq", r.seq),
			zap.Error(err))
	}
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return database.Now()
}

func (r *Recorder) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// EventFromInput flattens a notification into a journal row.
func EventFromInput(phase drag.Phase, in drag.Input) repository.InputEvent {
	ev := repository.InputEvent{Kind: eventKind(phase), Source: in.Source().String()}
	switch v := in.(type) {
	case drag.MouseInput:
		ev.X, ev.Y, ev.Button = v.X, v.Y, int(v.Button)
	case drag.TouchInput:
		ev.Touches = len(v.Touches)
		if p, ok := v.Position(); ok {
			ev.X, ev.Y = p.X, p.Y
		}
	}
	return ev
}

// InputFromEvent rebuilds the notification stored in a journal row. Only the
// first touch point is kept by the journal.
func InputFromEvent(ev repository.InputEvent) (drag.Phase, drag.Input, error) {
	phase, err := eventPhase(ev.Kind)
	if err != nil {
		return 0, nil, err
	}
	src, err := drag.ParseSource(ev.Source)
	if err != nil {
		return 0, nil, err
	}
	if src == drag.SourceMouse {
		return phase, drag.MouseInput{X: ev.X, Y: ev.Y, Button: drag.Button(ev.Button)}, nil
	}
	in := drag.TouchInput{}
	if ev.Touches > 0 {
		in.Touches = []drag.Touch{{ID: 0, X: ev.X, Y: ev.Y}}
	}
	return phase, in, nil
}

func eventKind(p drag.Phase) string {
	switch p {
	case drag.PhaseStart:
		return repository.KindStart
	case drag.PhaseMove:
		return repository.KindMove
	case drag.PhaseEnd:
		return repository.KindEnd
	}
	return p.String()
}

func eventPhase(kind string) (drag.Phase, error) {
	switch kind {
	case repository.KindStart:
		return drag.PhaseStart, nil
	case repository.KindMove:
		return drag.PhaseMove, nil
	case repository.KindEnd:
		return drag.PhaseEnd, nil
	}
	return 0, fmt.Errorf("unknown event kind %q", kind)
}
