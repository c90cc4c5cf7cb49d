package domain

import "fmt"

// Rect is a tile rectangle in grid cells. Origin (0,0) is top-left.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// NewRect constructs a rect and rejects empty sizes.
func NewRect(x, y, w, h int) (Rect, error) {
	r := Rect{X: x, Y: y, W: w, H: h}
	if !r.Valid() {
		return Rect{}, ErrInvalidRect
	}
	return r, nil
}

// Valid reports whether the rect has a usable size.
func (r Rect) Valid() bool {
	return r.W >= 1 && r.H >= 1
}

// Contains reports whether grid cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ClampTo keeps the rect inside a cols×rows grid, shrinking it when needed.
func (r Rect) ClampTo(cols, rows int) Rect {
	r.W = min(max(r.W, 1), cols)
	r.H = min(max(r.H, 1), rows)
	r.X = min(max(r.X, 0), cols-r.W)
	r.Y = min(max(r.Y, 0), rows-r.H)
	return r
}

// String returns a compact debug form.
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
