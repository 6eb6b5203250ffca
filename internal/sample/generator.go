package sample

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/draggable/internal/database/repository"
	"github.com/jask/draggable/internal/drag"
	"github.com/jask/draggable/internal/service"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Recordings *repository.RecordingRepo
	Events     *repository.EventRepo
}

// Seed journals a synthetic recording of drags mixing mouse and touch input,
// stray moves and non-primary clicks. It returns the recording id.
func Seed(ctx context.Context, repos Repos, drags int, seed int64) (string, error) {
	rng := rand.New(rand.NewSource(seed))
	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	rec := &service.Recorder{
		Recordings: repos.Recordings,
		Events:     repos.Events,
		Now: func() time.Time {
			at = at.Add(16 * time.Millisecond)
			return at
		},
	}
	id, err := rec.Begin(ctx, "seed "+uuid.NewString()[:8])
	if err != nil {
		return "", err
	}

	x, y := 40.0, 12.0
	for i := 0; i < drags; i++ {
		// noise the tracker must ignore
		rec.Record(ctx, drag.PhaseMove, drag.MouseInput{X: x + 3, Y: y + 1})
		if rng.Intn(4) == 0 {
			rec.Record(ctx, drag.PhaseStart, drag.MouseInput{X: x, Y: y, Button: drag.ButtonRight})
		}

		useTouch := rng.Intn(3) == 0
		rec.Record(ctx, drag.PhaseStart, input(useTouch, x, y))
		steps := 2 + rng.Intn(6)
		for s := 0; s < steps; s++ {
			x += float64(rng.Intn(7) - 3)
			y += float64(rng.Intn(5) - 2)
			rec.Record(ctx, drag.PhaseMove, input(useTouch, x, y))
		}
		rec.Record(ctx, drag.PhaseEnd, input(useTouch, x, y))
	}
	return id, nil
}

func input(touch bool, x, y float64) drag.Input {
	if touch {
		return drag.TouchInput{Touches: []drag.Touch{{ID: 1, X: x, Y: y}}}
	}
	return drag.MouseInput{X: x, Y: y, Button: drag.ButtonLeft}
}
