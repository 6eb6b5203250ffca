// Package drag turns pointer and touch notifications into a translation
// offset for one draggable element.
package drag

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the drag state of a Tracker.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Snapshot is a copy of a Tracker's observable state.
type Snapshot struct {
	TrackerID   string
	State       State
	Source      Source
	Translation Point
	Baseline    Point
	Origin      Point
	HasOrigin   bool
}

// Handlers are bound by the owning view to down/start and up/end input on the
// element itself.
type Handlers struct {
	OnMouseDown  func(MouseInput)
	OnTouchStart func(TouchInput)
	OnMouseUp    func()
	OnTouchEnd   func()
}

// RenderState is what the owning view needs to draw the element.
type RenderState struct {
	Translation Point
	Dragging    bool
	// SuppressGestures is true while native scroll and touch gestures must
	// be disabled on the document.
	SuppressGestures bool
	Handlers         Handlers
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker's logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithObserver registers fn to receive a Snapshot after every state change.
func WithObserver(fn func(Snapshot)) Option {
	return func(t *Tracker) { t.observer = fn }
}

// WithBaseline starts the tracker at a non-zero translation.
func WithBaseline(p Point) Option {
	return func(t *Tracker) {
		t.baseline = p
		t.translation = p
	}
}

// Tracker is the drag state machine for one element. It is not safe for
// concurrent use.
type Tracker struct {
	id       string
	doc      *Document
	el       Element
	log      *zap.Logger
	observer func(Snapshot)

	state       State
	source      Source
	origin      Point
	hasOrigin   bool
	corr        Point
	translation Point
	baseline    Point

	sub      *Subscription
	release  func()
	closed   bool
	handlers Handlers
}

// New returns an idle tracker for el that subscribes to doc while dragging.
func New(doc *Document, el Element, opts ...Option) *Tracker {
	if doc == nil {
		doc = NewDocument()
	}
	t := &Tracker{
		id:  uuid.NewString(),
		doc: doc,
		el:  el,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With(zap.String("tracker", t.id))
	t.handlers = Handlers{
		OnMouseDown:  func(in MouseInput) { t.Start(in) },
		OnTouchStart: func(in TouchInput) { t.Start(in) },
		OnMouseUp:    func() { t.endFrom(SourceMouse) },
		OnTouchEnd:   func() { t.endFrom(SourceTouch) },
	}
	return t
}

// Start begins a drag session when in is a primary input and no session is
// active.
func (t *Tracker) Start(in Input) {
	if t.closed || in == nil || t.state == Dragging || !in.IsPrimary() {
		return
	}
	p, ok := in.Position()
	if !ok {
		return
	}
	t.corr = correction(t.el)
	t.origin = p.Add(t.corr)
	t.hasOrigin = true
	t.source = in.Source()
	t.state = Dragging
	t.sub = t.doc.Subscribe(t.source, listener{t})
	t.release = t.doc.SuppressGestures()
	t.log.Debug("drag start",
		zap.Stringer("source", t.source),
		zap.Float64("origin_x", t.origin.X),
		zap.Float64("origin_y", t.origin.Y))
	t.notify()
}

// Move updates the translation from the current pointer position. Input from
// a source other than the one that started the session is ignored.
func (t *Tracker) Move(in Input) {
	if t.state != Dragging || in == nil || in.Source() != t.source {
		return
	}
	p, ok := in.Position()
	if !ok {
		return
	}
	delta := p.Add(t.corr).Sub(t.origin)
	next := t.baseline.Add(delta)
	if next == t.translation {
		return
	}
	t.translation = next
	t.notify()
}

// End commits the translation as the new baseline and returns to Idle.
func (t *Tracker) End() {
	if t.state != Dragging {
		return
	}
	t.baseline = t.translation
	t.state = Idle
	t.unsubscribe()
	t.log.Debug("drag end",
		zap.Float64("x", t.translation.X),
		zap.Float64("y", t.translation.Y))
	t.notify()
}

func (t *Tracker) endFrom(src Source) {
	if t.state == Dragging && t.source == src {
		t.End()
	}
}

// Close tears the tracker down with its element. Any active session is ended
// and every subscription released. Close is idempotent.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.End()
	t.unsubscribe()
	t.closed = true
}

func (t *Tracker) unsubscribe() {
	t.sub.Release()
	t.sub = nil
	if t.release != nil {
		t.release()
		t.release = nil
	}
}

// RenderState returns the translation and handlers for the owning view.
func (t *Tracker) RenderState() RenderState {
	return RenderState{
		Translation:      t.translation,
		Dragging:         t.state == Dragging,
		SuppressGestures: t.state == Dragging,
		Handlers:         t.handlers,
	}
}

func (t *Tracker) ID() string { return t.id }
func (t *Tracker) State() State { return t.state }
func (t *Tracker) Source() Source { return t.source }
func (t *Tracker) Translation() Point { return t.translation }
func (t *Tracker) Baseline() Point { return t.baseline }
func (t *Tracker) Origin() (Point, bool) { return t.origin, t.hasOrigin }

// Snapshot returns a copy of the tracker's state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		TrackerID:   t.id,
		State:       t.state,
		Source:      t.source,
		Translation: t.translation,
		Baseline:    t.baseline,
		Origin:      t.origin,
		HasOrigin:   t.hasOrigin,
	}
}

func (t *Tracker) notify() {
	if t.observer != nil {
		t.observer(t.Snapshot())
	}
}

// listener routes document-level notifications into the tracker.
type listener struct{ t *Tracker }

func (l listener) HandleMove(in Input) { l.t.Move(in) }
func (l listener) HandleEnd() { l.t.End() }
