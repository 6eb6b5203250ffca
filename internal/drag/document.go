package drag

// Listener receives document-level move and end notifications for one source.
type Listener interface {
	HandleMove(in Input)
	HandleEnd()
}

// Document owns the document-level input subscriptions shared by every
// tracker mounted in one view, plus the native gesture suppression flag.
//
// A Document is not safe for concurrent use; hosts deliver notifications from
// a single event loop.
type Document struct {
	nextID    int
	listeners []subscription
	suppress  int
}

type subscription struct {
	id     int
	source Source
	l      Listener
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	doc *Document
	id  int
}

// Release removes the listener. It is idempotent and safe on a zero value.
func (s *Subscription) Release() {
	if s == nil || s.doc == nil {
		return
	}
	s.doc.remove(s.id)
	s.doc = nil
}

// Subscribe registers l for move and end input of src.
func (d *Document) Subscribe(src Source, l Listener) *Subscription {
	d.nextID++
	d.listeners = append(d.listeners, subscription{id: d.nextID, source: src, l: l})
	return &Subscription{doc: d, id: d.nextID}
}

func (d *Document) remove(id int) {
	for i, s := range d.listeners {
		if s.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}

// snapshot copies the listeners of src so they may unsubscribe during dispatch.
func (d *Document) snapshot(src Source) []Listener {
	var out []Listener
	for _, s := range d.listeners {
		if s.source == src {
			out = append(out, s.l)
		}
	}
	return out
}

// DispatchMove delivers a move notification to the listeners of its source.
func (d *Document) DispatchMove(in Input) {
	if d == nil || in == nil {
		return
	}
	for _, l := range d.snapshot(in.Source()) {
		l.HandleMove(in)
	}
}

// DispatchEnd delivers an end notification to the listeners of src.
func (d *Document) DispatchEnd(src Source) {
	if d == nil {
		return
	}
	for _, l := range d.snapshot(src) {
		l.HandleEnd()
	}
}

// Listeners returns the number of live listeners for src.
func (d *Document) Listeners(src Source) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, s := range d.listeners {
		if s.source == src {
			n++
		}
	}
	return n
}

// SuppressGestures disables native scroll and touch gestures until the
// returned release func is called. Calls nest; release is idempotent.
func (d *Document) SuppressGestures() func() {
	d.suppress++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		d.suppress--
	}
}

// GesturesSuppressed reports whether any tracker holds gesture suppression.
func (d *Document) GesturesSuppressed() bool {
	return d != nil && d.suppress > 0
}
