package drag

import "fmt"

// Phase is the stage of a pointer notification.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "start":
		return PhaseStart, nil
	case "move":
		return PhaseMove, nil
	case "end":
		return PhaseEnd, nil
	}
	return 0, fmt.Errorf("unknown input phase %q", s)
}

// Deliver routes one notification the way a view binds a tracker: starts go
// to the element's handlers, moves go to the document, and ends go to both
// (an end outside the element must still finish the drag).
func Deliver(doc *Document, h Handlers, phase Phase, in Input) {
	if in == nil {
		return
	}
	switch phase {
	case PhaseStart:
		switch v := in.(type) {
		case MouseInput:
			if h.OnMouseDown != nil {
				h.OnMouseDown(v)
			}
		case TouchInput:
			if h.OnTouchStart != nil {
				h.OnTouchStart(v)
			}
		}
	case PhaseMove:
		doc.DispatchMove(in)
	case PhaseEnd:
		switch in.Source() {
		case SourceMouse:
			if h.OnMouseUp != nil {
				h.OnMouseUp()
			}
		case SourceTouch:
			if h.OnTouchEnd != nil {
				h.OnTouchEnd()
			}
		}
		doc.DispatchEnd(in.Source())
	}
}
