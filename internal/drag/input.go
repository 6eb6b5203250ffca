package drag

import "fmt"

// Source identifies the input channel that drives a drag session.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// ParseSource is the inverse of Source.String.
func ParseSource(s string) (Source, error) {
	switch s {
	case "mouse":
		return SourceMouse, nil
	case "touch":
		return SourceTouch, nil
	}
	return 0, fmt.Errorf("unknown input source %q", s)
}

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonOther
)

// Input is one pointer notification: either a MouseInput or a TouchInput.
type Input interface {
	Source() Source
	// Position returns the tracked point. It is false when there is nothing
	// to track.
	Position() (Point, bool)
	// IsPrimary reports whether the input may start a drag.
	IsPrimary() bool
}

// MouseInput is a mouse notification in viewport coordinates.
type MouseInput struct {
	X      float64
	Y      float64
	Button Button
}

func (m MouseInput) Source() Source { return SourceMouse }

func (m MouseInput) Position() (Point, bool) { return Point{X: m.X, Y: m.Y}, true }
func (m MouseInput) IsPrimary() bool { return m.Button == ButtonLeft }

// Touch is one active touch point.
type Touch struct {
	ID int
	X  float64
	Y  float64
}

// TouchInput carries the active touch points of a touch notification. Only
// the first one is tracked.
type TouchInput struct {
	Touches []Touch
}

func (t TouchInput) Source() Source { return SourceTouch }

func (t TouchInput) Position() (Point, bool) {
	if len(t.Touches) == 0 {
		return Point{}, false
	}
	return Point{X: t.Touches[0].X, Y: t.Touches[0].Y}, true
}

func (t TouchInput) IsPrimary() bool { return len(t.Touches) > 0 }
