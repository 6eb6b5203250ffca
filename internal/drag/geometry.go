package drag

// Point is a 2D coordinate or offset.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is a bounding rectangle in viewport coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width &&
		p.Y >= r.Top && p.Y < r.Top+r.Height
}

// Container is the nearest positioned ancestor of a dragged element.
type Container interface {
	// IsRoot reports whether this is the document's root container.
	IsRoot() bool
	ScrollOffset() Point
	BoundingRect() Rect
}

// Element is the geometry surface of the element being dragged.
type Element interface {
	// OffsetParent returns the nearest positioned ancestor, or nil when the
	// element is positioned against the root.
	OffsetParent() Container
}

// correction returns the offset that maps viewport coordinates into the
// coordinate space of el's offset parent.
func correction(el Element) Point {
	if el == nil {
		return Point{}
	}
	parent := el.OffsetParent()
	if parent == nil || parent.IsRoot() {
		return Point{}
	}
	scroll := parent.ScrollOffset()
	rect := parent.BoundingRect()
	return Point{X: scroll.X - rect.Left, Y: scroll.Y - rect.Top}
}

// Root is the document root container. It never scrolls the drag space.
type Root struct{}

func (Root) IsRoot() bool { return true }
func (Root) ScrollOffset() Point { return Point{} }
func (Root) BoundingRect() Rect { return Rect{} }
func (Root) OffsetParent() Container { return Root{} }

// Panel is a positioned, scrollable container.
type Panel struct {
	Rect   Rect
	Scroll Point
}

// A nil *Panel behaves as the root.
func (p *Panel) IsRoot() bool { return p == nil }

func (p *Panel) ScrollOffset() Point {
	if p == nil {
		return Point{}
	}
	return p.Scroll
}

func (p *Panel) BoundingRect() Rect {
	if p == nil {
		return Rect{}
	}
	return p.Rect
}

// Box is an element positioned inside a Parent. A nil Parent means the root.
type Box struct {
	Parent Container
}

func (b *Box) OffsetParent() Container {
	if b == nil || b.Parent == nil {
		return Root{}
	}
	return b.Parent
}
