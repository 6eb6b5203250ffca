package repository

import "time"

// Recording represents a recordings row: one journaled run of the view.
type Recording struct {
	ID        string
	Label     string
	CreatedAt time.Time
}

// InputEvent represents an input_events row.
type InputEvent struct {
	RecordingID string
	Seq         int64
	Kind        string // start, move, end
	Source      string // mouse, touch
	X           float64
	Y           float64
	Button      int
	Touches     int
	At          time.Time
}

const (
	KindStart = "start"
	KindMove  = "move"
	KindEnd   = "end"
)
