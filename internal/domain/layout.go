package domain

// Grid dimensions and tile count bounds.
const (
	GridColumns = 12
	GridRows    = 8
	MinTiles    = 1
	MaxTiles    = 5
)

// defaultLayouts stores the canonical arrangement for each tile count.
// The rects are design constants, not derived from the grid size.
var defaultLayouts = [MaxTiles + 1][]Rect{
	1: {
		{X: 1, Y: 0, W: 10, H: 7},
	},
	2: {
		{X: 0, Y: 0, W: 5, H: 7},
		{X: 7, Y: 0, W: 5, H: 7},
	},
	3: {
		{X: 0, Y: 0, W: 5, H: 3},
		{X: 0, Y: 4, W: 5, H: 3},
		{X: 7, Y: 0, W: 5, H: 7},
	},
	4: {
		{X: 0, Y: 0, W: 5, H: 3},
		{X: 7, Y: 0, W: 5, H: 3},
		{X: 0, Y: 4, W: 5, H: 3},
		{X: 7, Y: 4, W: 5, H: 3},
	},
	5: {
		{X: 0, Y: 0, W: 3, H: 3},
		{X: 4, Y: 0, W: 3, H: 3},
		{X: 8, Y: 0, W: 3, H: 3},
		{X: 0, Y: 4, W: 5, H: 3},
		{X: 7, Y: 4, W: 5, H: 3},
	},
}

// ValidTileCount reports whether n is inside [MinTiles, MaxTiles].
func ValidTileCount(n int) bool {
	return n >= MinTiles && n <= MaxTiles
}

// ClampTileCount clamps n into [MinTiles, MaxTiles].
func ClampTileCount(n int) int {
	return min(max(n, MinTiles), MaxTiles)
}

// DefaultRects returns a copy of the canonical rects for n tiles.
func DefaultRects(n int) ([]Rect, error) {
	if !ValidTileCount(n) {
		return nil, ErrInvalidTileCount
	}
	return append([]Rect(nil), defaultLayouts[n]...), nil
}

// IsDefaultLayout reports whether rects equal the canonical arrangement for their count.
func IsDefaultLayout(rects []Rect) bool {
	if !ValidTileCount(len(rects)) {
		return false
	}
	for i, r := range defaultLayouts[len(rects)] {
		if rects[i] != r {
			return false
		}
	}
	return true
}
