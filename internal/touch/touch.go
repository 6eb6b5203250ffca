// Package touch reads touch frames from a JSON-lines feed, one frame per
// line:
//
//	{"phase":"begin","touches":[{"id":1,"x":12,"y":4}]}
//
// Phases are begin, move and end. The first touch of a frame is the one a
// tracker follows.
package touch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/draggable/internal/drag"
)

// Frame is one decoded touch notification.
type Frame struct {
	Phase drag.Phase
	Input drag.TouchInput
}

type wireTouch struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type wireFrame struct {
	Phase   string      `json:"phase"`
	Touches []wireTouch `json:"touches"`
}

// Decode parses one feed line.
func Decode(line []byte) (Frame, error) {
	var w wireFrame
	if err := json.Unmarshal(line, &w); err != nil {
		return Frame{}, fmt.Errorf("decode touch frame: %w", err)
	}
	name := strings.ToLower(strings.TrimSpace(w.Phase))
	switch name {
	case "begin":
		name = "start"
	case "cancel":
		name = "end"
	}
	phase, err := drag.ParsePhase(name)
	if err != nil {
		return Frame{}, fmt.Errorf("decode touch frame: %w", err)
	}
	f := Frame{Phase: phase}
	for _, t := range w.Touches {
		f.Input.Touches = append(f.Input.Touches, drag.Touch{ID: t.ID, X: t.X, Y: t.Y})
	}
	return f, nil
}

// Feed reads frames from r and hands each one to send until EOF, a read
// error, or ctx is done. Malformed lines are logged and skipped.
func Feed(ctx context.Context, r io.Reader, log *zap.Logger, send func(Frame)) error {
	if log == nil {
		log = zap.NewNop()
	}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		raw := sc.Bytes()
		if len(strings.TrimSpace(string(raw))) == 0 {
			continue
		}
		f, err := Decode(raw)
		if err != nil {
			log.Warn("skipping touch frame", zap.Int("line", line), zap.Error(err))
			continue
		}
		send(f)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read touch feed: %w", err)
	}
	return nil
}
