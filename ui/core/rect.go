package core

// Rect is an integer rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect clamps r to b, returning the overlapping region.
func (r Rect) Intersect(b Rect) Rect {
	x0 := max(r.X, b.X)
	y0 := max(r.Y, b.Y)
	x1 := min(r.X+r.W, b.X+b.W)
	y1 := min(r.Y+r.H, b.Y+b.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle covering both r and b.
func (r Rect) Union(b Rect) Rect {
	if r.Empty() {
		return b
	}
	if b.Empty() {
		return r
	}
	x0 := min(r.X, b.X)
	y0 := min(r.Y, b.Y)
	x1 := max(r.X+r.W, b.X+b.W)
	y1 := max(r.Y+r.H, b.Y+b.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Overlaps reports whether r and b share any cell.
func (r Rect) Overlaps(b Rect) bool {
	if r.Empty() || b.Empty() {
		return false
	}
	return r.X < b.X+b.W && r.X+r.W > b.X && r.Y < b.Y+b.H && r.Y+r.H > b.Y
}
