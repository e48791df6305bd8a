package screen

// Point represents a 2D cell coordinate
type Point struct {
	X, Y int
}

// Add returns the point translated by p2
func (p Point) Add(p2 Point) Point {
	return Point{p.X + p2.X, p.Y + p2.Y}
}

// Sub returns the point translated by -p2
func (p Point) Sub(p2 Point) Point {
	return Point{p.X - p2.X, p.Y - p2.Y}
}

// Rect is an axis-aligned cell region, Min inclusive, Max exclusive.
// Degenerate rects (Min == Max on either axis) are legal and draw nothing.
type Rect struct {
	Min, Max Point
}

// NewRect builds a rect from origin and size. Negative sizes collapse to
// an empty rect at the origin.
func NewRect(x, y, w, h int) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{Point{x, y}, Point{x + w, y + h}}
}

// Dx returns the width
func (r Rect) Dx() int {
	return r.Max.X - r.Min.X
}

// Dy returns the height
func (r Rect) Dy() int {
	return r.Max.Y - r.Min.Y
}

// Empty reports whether the rect contains no cells
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and r2, empty if they do not meet
func (r Rect) Intersect(r2 Rect) Rect {
	if r2.Min.X > r.Min.X {
		r.Min.X = r2.Min.X
	}
	if r2.Min.Y > r.Min.Y {
		r.Min.Y = r2.Min.Y
	}
	if r2.Max.X < r.Max.X {
		r.Max.X = r2.Max.X
	}
	if r2.Max.Y < r.Max.Y {
		r.Max.Y = r2.Max.Y
	}
	if r.Empty() {
		return Rect{}
	}
	return r
}

// Union returns the smallest rect containing both r and r2
func (r Rect) Union(r2 Rect) Rect {
	if r.Empty() {
		return r2
	}
	if r2.Empty() {
		return r
	}
	if r2.Min.X < r.Min.X {
		r.Min.X = r2.Min.X
	}
	if r2.Min.Y < r.Min.Y {
		r.Min.Y = r2.Min.Y
	}
	if r2.Max.X > r.Max.X {
		r.Max.X = r2.Max.X
	}
	if r2.Max.Y > r.Max.Y {
		r.Max.Y = r2.Max.Y
	}
	return r
}

// Offset returns the rect translated by p
func (r Rect) Offset(p Point) Rect {
	return Rect{r.Min.Add(p), r.Max.Add(p)}
}

// Inset returns the rect shrunk by n cells on all sides
func (r Rect) Inset(n int) Rect {
	r.Min.X += n
	r.Min.Y += n
	r.Max.X -= n
	r.Max.Y -= n
	if r.Empty() {
		return Rect{}
	}
	return r
}
