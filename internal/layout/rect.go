package layout

// Rect represents a rectangle with integer coordinates.
// X and Y are the top-left corner; Width and Height are dimensions.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point (x, y) is inside the rectangle.
// Points on the left and top edges are inside; points on the right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the intersection of two rectangles.
// If the rectangles don't overlap, returns an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())

	width := right - x
	height := bottom - y

	if width <= 0 || height <= 0 {
		return Rect{}
	}

	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Clip reports how much of r lies outside bounds on each side.
// start holds the cells cut from the left and top, end the cells cut from
// the right and bottom. A rectangle entirely outside bounds is clipped
// completely on both axes.
func (r Rect) Clip(bounds Rect) (start, end Point) {
	if r.IsEmpty() {
		return Point{}, Point{}
	}
	if r.Intersect(bounds).IsEmpty() {
		return Point{X: r.Width, Y: r.Height}, Point{}
	}

	start.X = clamp(bounds.X-r.X, 0, r.Width)
	start.Y = clamp(bounds.Y-r.Y, 0, r.Height)
	end.X = clamp(r.Right()-bounds.Right(), 0, r.Width-start.X)
	end.Y = clamp(r.Bottom()-bounds.Bottom(), 0, r.Height-start.Y)
	return start, end
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
