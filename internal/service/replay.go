package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/draggable/internal/database/repository"
	"github.com/jask/draggable/internal/drag"
)

// Step is the tracker state after one replayed notification.
type Step struct {
	Seq         int64
	Phase       drag.Phase
	Source      drag.Source
	State       drag.State
	Translation drag.Point
}

// ReplayResult is the outcome of a replay.
type ReplayResult struct {
	Recording repository.Recording
	Steps     []Step
	Final     drag.Point
	Baseline  drag.Point
	Skipped   int
}

// Replayer feeds journaled input through a fresh tracker.
type Replayer struct {
	Recordings *repository.RecordingRepo
	Events     *repository.EventRepo
	Log        *zap.Logger
}

// Replay rebuilds the translation trajectory of a recording. The tracker
// starts from a zero baseline on a root-positioned element; deltas do not
// depend on the offset parent, so the trajectory matches the live run.
func (s *Replayer) Replay(ctx context.Context, recordingID string) (ReplayResult, error) {
	if s.Recordings == nil || s.Events == nil {
		return ReplayResult{}, fmt.Errorf("replay: repos not configured")
	}
	rec, err := s.Recordings.Get(ctx, recordingID)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("load recording: %w", err)
	}
	if rec == nil {
		return ReplayResult{}, fmt.Errorf("recording %q not found", recordingID)
	}
	events, err := s.Events.ListByRecording(ctx, recordingID)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("load events: %w", err)
	}

	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	doc := drag.NewDocument()
	tr := drag.New(doc, &drag.Box{}, drag.WithLogger(log))
	defer tr.Close()
	h := tr.RenderState().Handlers

	res := ReplayResult{Recording: *rec, Steps: make([]Step, 0, len(events))}
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return ReplayResult{}, err
		}
		phase, in, err := InputFromEvent(ev)
		if err != nil {
			log.Warn("skipping journal row", zap.Int64("seq", ev.Seq), zap.Error(err))
			res.Skipped++
			continue
		}
		drag.Deliver(doc, h, phase, in)
		res.Steps = append(res.Steps, Step{
			Seq:         ev.Seq,
			Phase:       phase,
			Source:      in.Source(),
			State:       tr.State(),
			Translation: tr.Translation(),
		})
	}
	res.Final = tr.Translation()
	res.Baseline = tr.Baseline()
	return res, nil
}
