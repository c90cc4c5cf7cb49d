package tui

import (
	"github.com/evanschultz/matter/internal/domain"
)

// gridProjection maps the 12×8 layout grid onto a block of terminal cells.
type gridProjection struct {
	left   int
	top    int
	width  int
	height int
}

// cellX returns the first screen column of grid column col.
func (g gridProjection) cellX(col int) int {
	return g.left + (col*g.width+domain.GridColumns-1)/domain.GridColumns
}

// cellY returns the first screen row of grid row row.
func (g gridProjection) cellY(row int) int {
	return g.top + (row*g.height+domain.GridRows-1)/domain.GridRows
}

// screenRect returns the screen origin and size covered by r.
func (g gridProjection) screenRect(r domain.Rect) (x, y, w, h int) {
	x = g.cellX(r.X)
	y = g.cellY(r.Y)
	w = g.cellX(r.X+r.W) - x
	h = g.cellY(r.Y+r.H) - y
	return x, y, w, h
}

// contains reports whether the screen point lies over the grid.
func (g gridProjection) contains(x, y int) bool {
	return x >= g.left && x < g.left+g.width && y >= g.top && y < g.top+g.height
}

// cellAt maps a screen point to the grid cell under it.
func (g gridProjection) cellAt(x, y int) (col, row int, ok bool) {
	if !g.contains(x, y) || g.width <= 0 || g.height <= 0 {
		return 0, 0, false
	}
	col, row = g.clampedCellAt(x, y)
	return col, row, true
}

// clampedCellAt maps any screen point to the nearest grid cell.
func (g gridProjection) clampedCellAt(x, y int) (col, row int) {
	if g.width <= 0 || g.height <= 0 {
		return 0, 0
	}
	col = clamp((x-g.left)*domain.GridColumns/g.width, 0, domain.GridColumns-1)
	row = clamp((y-g.top)*domain.GridRows/g.height, 0, domain.GridRows-1)
	return col, row
}

// dragKind identifies the gesture a held mouse button is performing.
type dragKind int

// dragNone and related constants define package defaults.
const (
	dragNone dragKind = iota
	dragMove
	dragResize
	dragSidebar
)

// dragState tracks one in-flight mouse gesture. Only the release commits.
type dragState struct {
	kind     dragKind
	index    int
	tileID   int
	origin   domain.Rect
	preview  domain.Rect
	startCol int
	startRow int
}

// active reports whether a gesture is in progress.
func (d dragState) active() bool {
	return d.kind != dragNone
}

// follow updates the preview rect for the cell currently under the pointer.
func (d dragState) follow(col, row int) dragState {
	dx := col - d.startCol
	dy := row - d.startRow
	switch d.kind {
	case dragMove:
		next := d.origin
		next.X += dx
		next.Y += dy
		d.preview = next.ClampTo(domain.GridColumns, domain.GridRows)
	case dragResize:
		d.preview = resizeRect(d.origin, dx, dy)
	}
	return d
}

// moveRect shifts r by one step and keeps it on the grid.
func moveRect(r domain.Rect, dx, dy int) domain.Rect {
	r.X += dx
	r.Y += dy
	return r.ClampTo(domain.GridColumns, domain.GridRows)
}

// resizeRect grows or shrinks r from its bottom-right corner, anchored at its origin.
func resizeRect(r domain.Rect, dw, dh int) domain.Rect {
	r.W = clamp(r.W+dw, 1, domain.GridColumns-r.X)
	r.H = clamp(r.H+dh, 1, domain.GridRows-r.Y)
	return r
}

// tileIndexAt returns the topmost tile covering grid cell (col, row).
// The focused tile draws above the others, so it wins ties.
func tileIndexAt(tiles []domain.Tile, focus, col, row int) (int, bool) {
	if focus >= 0 && focus < len(tiles) && tiles[focus].Rect.Contains(col, row) {
		return focus, true
	}
	for i := len(tiles) - 1; i >= 0; i-- {
		if tiles[i].Rect.Contains(col, row) {
			return i, true
		}
	}
	return 0, false
}
