package domain

// Board owns the tile sequence and is the single source of truth for the grid.
// Its length always equals its tile count.
type Board struct {
	tiles  []Tile
	layout LayoutState
}

// NewBoard constructs a board of n canonical tiles, clamping n into range.
func NewBoard(n int) *Board {
	tiles, _ := Reconcile(ClampTileCount(n), nil)
	return &Board{tiles: tiles, layout: LayoutAuto}
}

// Count returns the number of tiles.
func (b *Board) Count() int {
	return len(b.tiles)
}

// LayoutState reports whether the rects are canonical or user-arranged.
func (b *Board) LayoutState() LayoutState {
	return b.layout
}

// Tiles returns a copy of the tile sequence.
func (b *Board) Tiles() []Tile {
	return append([]Tile(nil), b.tiles...)
}

// Tile returns the tile with the given id.
func (b *Board) Tile(id int) (Tile, bool) {
	idx := b.indexOf(id)
	if idx < 0 {
		return Tile{}, false
	}
	return b.tiles[idx], true
}

// SetCount reconciles the sequence to n canonical tiles.
// Setting the current count again snaps a freeform layout back to the table.
func (b *Board) SetCount(n int) error {
	tiles, err := Reconcile(n, b.tiles)
	if err != nil {
		return err
	}
	b.tiles = tiles
	b.layout = LayoutAuto
	return nil
}

// SetSequence replaces the sequence wholesale, renumbering ids by position.
func (b *Board) SetSequence(seq []Tile) error {
	if !ValidTileCount(len(seq)) {
		return ErrInvalidTileCount
	}
	rects := make([]Rect, len(seq))
	for i, tile := range seq {
		if !tile.Rect.Valid() {
			return ErrInvalidRect
		}
		if !tile.Category.Valid() {
			return ErrUnknownCategory
		}
		rects[i] = tile.Rect
	}
	next := make([]Tile, len(seq))
	for i, tile := range seq {
		next[i] = Tile{ID: i + 1, Rect: tile.Rect, Category: tile.Category}
	}
	b.tiles = next
	b.layout = LayoutFreeform
	if IsDefaultLayout(rects) {
		b.layout = LayoutAuto
	}
	return nil
}

// AssignCategory binds content to one tile without touching its rect.
func (b *Board) AssignCategory(id int, c Category) error {
	if !c.Valid() {
		return ErrUnknownCategory
	}
	idx := b.indexOf(id)
	if idx < 0 {
		return ErrUnknownTile
	}
	b.tiles[idx].Category = c
	return nil
}

// UpdateRect moves or resizes one tile in place and marks the layout freeform.
func (b *Board) UpdateRect(id int, r Rect) error {
	if !r.Valid() {
		return ErrInvalidRect
	}
	idx := b.indexOf(id)
	if idx < 0 {
		return ErrUnknownTile
	}
	b.tiles[idx].Rect = r
	b.layout = LayoutFreeform
	return nil
}

// RemoveTile drops one tile and re-lays the survivors out canonically,
// keeping their categories in survivor order.
func (b *Board) RemoveTile(id int) error {
	idx := b.indexOf(id)
	if idx < 0 {
		return ErrUnknownTile
	}
	if len(b.tiles) <= MinTiles {
		return ErrTileFloor
	}
	survivors := make([]Tile, 0, len(b.tiles)-1)
	survivors = append(survivors, b.tiles[:idx]...)
	survivors = append(survivors, b.tiles[idx+1:]...)
	tiles, err := Reconcile(len(survivors), survivors)
	if err != nil {
		return err
	}
	b.tiles = tiles
	b.layout = LayoutAuto
	return nil
}

// indexOf returns the sequence index of id, or -1.
func (b *Board) indexOf(id int) int {
	for i, tile := range b.tiles {
		if tile.ID == id {
			return i
		}
	}
	return -1
}
