package domain

// Tile is one positioned grid cell group bound to optional content.
// IDs are positional and reassigned on every reconciliation.
type Tile struct {
	ID       int      `json:"id"`
	Rect     Rect     `json:"rect"`
	Category Category `json:"category"`
}

// Reconcile lays out n tiles from the canonical table, carrying categories over by index.
// Tiles of prev beyond n are dropped along with their content.
func Reconcile(n int, prev []Tile) ([]Tile, error) {
	rects, err := DefaultRects(n)
	if err != nil {
		return nil, err
	}
	out := make([]Tile, n)
	for i, rect := range rects {
		out[i] = Tile{ID: i + 1, Rect: rect}
		if i < len(prev) {
			out[i].Category = prev[i].Category
		}
	}
	return out, nil
}
