// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides reports whether two circles overlap. Touching circles do not
// collide.
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Rect represents a rectangular area around a center point
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// RectAround returns the square that encloses a circle.
func RectAround(c Circle) Rect {
	return Rect{Center: c.Center, Width: c.Radius * 2, Height: c.Radius * 2}
}

// Contains uses half-open intervals so that adjacent quadrants never share a
// point.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

func (r Rect) intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// maxQuadDepth stops subdivision when many items share one point.
const maxQuadDepth = 12

// QuadTree is a point quadtree used as a collision broad phase.
type QuadTree[T any] struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	Items     []T
	Divided   bool
	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]

	depth int
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Items:    make([]T, 0, capacity),
	}
}

// Insert adds an item at point. It returns false when the point lies outside
// the tree boundary.
func (qt *QuadTree[T]) Insert(point Vector2D, item T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if !qt.Divided && (len(qt.Points) < qt.Capacity || qt.depth >= maxQuadDepth) {
		qt.Points = append(qt.Points, point)
		qt.Items = append(qt.Items, item)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, item) ||
		qt.NorthEast.Insert(point, item) ||
		qt.SouthWest.Insert(point, item) ||
		qt.SouthEast.Insert(point, item)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree[T]) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}
	ne := Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}
	sw := Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}
	se := Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}

	qt.NorthWest = qt.child(nw)
	qt.NorthEast = qt.child(ne)
	qt.SouthWest = qt.child(sw)
	qt.SouthEast = qt.child(se)
	qt.Divided = true
}

func (qt *QuadTree[T]) child(boundary Rect) *QuadTree[T] {
	c := NewQuadTree[T](boundary, qt.Capacity)
	c.depth = qt.depth + 1
	return c
}

// Query returns all items whose points lie inside area. Order is unspecified.
func (qt *QuadTree[T]) Query(area Rect) []T {
	return qt.query(area, nil)
}

func (qt *QuadTree[T]) query(area Rect, found []T) []T {
	if !qt.Boundary.intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Items[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.query(area, found)
	found = qt.NorthEast.query(area, found)
	found = qt.SouthWest.query(area, found)
	found = qt.SouthEast.query(area, found)
	return found
}

// Clear empties the tree while keeping its boundary and capacity.
func (qt *QuadTree[T]) Clear() {
	qt.Points = qt.Points[:0]
	qt.Items = qt.Items[:0]
	qt.Divided = false
	qt.NorthWest = nil
	qt.NorthEast = nil
	qt.SouthWest = nil
	qt.SouthEast = nil
}

// Len returns the number of items stored in the tree.
func (qt *QuadTree[T]) Len() int {
	n := len(qt.Points)
	if qt.Divided {
		n += qt.NorthWest.Len() + qt.NorthEast.Len() + qt.SouthWest.Len() + qt.SouthEast.Len()
	}
	return n
}
