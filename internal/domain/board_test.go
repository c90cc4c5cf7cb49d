package domain

import (
	"errors"
	"slices"
	"testing"
)

func TestNewBoardClampsCount(t *testing.T) {
	if got := NewBoard(0).Count(); got != 1 {
		t.Fatalf("NewBoard(0).Count() = %d", got)
	}
	if got := NewBoard(9).Count(); got != MaxTiles {
		t.Fatalf("NewBoard(9).Count() = %d", got)
	}
	b := NewBoard(1)
	if b.LayoutState() != LayoutAuto {
		t.Fatalf("expected auto layout, got %v", b.LayoutState())
	}
	if tile, ok := b.Tile(1); !ok || tile.Rect != (Rect{1, 0, 10, 7}) || tile.Category != Unassigned {
		t.Fatalf("unexpected initial tile %+v", tile)
	}
}

func TestBoardAssignCategoryLeavesRect(t *testing.T) {
	b := NewBoard(2)
	before, _ := b.Tile(2)
	if err := b.AssignCategory(2, CategoryColors); err != nil {
		t.Fatalf("AssignCategory() error = %v", err)
	}
	after, _ := b.Tile(2)
	if after.Category != CategoryColors || after.Rect != before.Rect {
		t.Fatalf("unexpected tile %+v", after)
	}
	if err := b.AssignCategory(7, CategoryColors); !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("expected ErrUnknownTile, got %v", err)
	}
	if err := b.AssignCategory(1, Category(42)); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestBoardUpdateRectMarksFreeform(t *testing.T) {
	b := NewBoard(2)
	if err := b.AssignCategory(1, CategoryMusic); err != nil {
		t.Fatalf("AssignCategory() error = %v", err)
	}
	if err := b.UpdateRect(1, Rect{X: 2, Y: 1, W: 3, H: 3}); err != nil {
		t.Fatalf("UpdateRect() error = %v", err)
	}
	tile, _ := b.Tile(1)
	if tile.Rect != (Rect{2, 1, 3, 3}) || tile.Category != CategoryMusic {
		t.Fatalf("unexpected tile %+v", tile)
	}
	if b.LayoutState() != LayoutFreeform {
		t.Fatalf("expected freeform layout, got %v", b.LayoutState())
	}
	if err := b.UpdateRect(1, Rect{W: 0, H: 2}); !errors.Is(err, ErrInvalidRect) {
		t.Fatalf("expected ErrInvalidRect, got %v", err)
	}
}

func TestBoardSetCountSnapsFreeformBack(t *testing.T) {
	b := NewBoard(2)
	_ = b.UpdateRect(2, Rect{X: 6, Y: 1, W: 6, H: 6})
	if err := b.SetCount(2); err != nil {
		t.Fatalf("SetCount() error = %v", err)
	}
	rects, _ := DefaultRects(2)
	tile, _ := b.Tile(2)
	if tile.Rect != rects[1] || b.LayoutState() != LayoutAuto {
		t.Fatalf("expected canonical rect after reselecting count, got %+v (%v)", tile, b.LayoutState())
	}
	if err := b.SetCount(6); !errors.Is(err, ErrInvalidTileCount) {
		t.Fatalf("expected ErrInvalidTileCount, got %v", err)
	}
	if b.Count() != 2 {
		t.Fatalf("rejected SetCount changed count to %d", b.Count())
	}
}

func TestBoardRemoveTileRenumbersSurvivors(t *testing.T) {
	b := NewBoard(3)
	_ = b.AssignCategory(1, CategoryMusic)
	_ = b.AssignCategory(3, CategoryColors)

	for _, tc := range []struct {
		remove int
		want   []Category
	}{
		{remove: 1, want: []Category{Unassigned, CategoryColors}},
		{remove: 2, want: []Category{CategoryMusic, CategoryColors}},
		{remove: 3, want: []Category{CategoryMusic, Unassigned}},
	} {
		clone := &Board{tiles: b.Tiles(), layout: b.LayoutState()}
		if err := clone.RemoveTile(tc.remove); err != nil {
			t.Fatalf("RemoveTile(%d) error = %v", tc.remove, err)
		}
		if got := categoriesOf(clone.Tiles()); !slices.Equal(got, tc.want) {
			t.Fatalf("RemoveTile(%d) categories = %v, want %v", tc.remove, got, tc.want)
		}
		rects, _ := DefaultRects(2)
		for i, tile := range clone.Tiles() {
			if tile.ID != i+1 || tile.Rect != rects[i] {
				t.Fatalf("RemoveTile(%d) tile %d = %+v", tc.remove, i, tile)
			}
		}
	}
}

func TestBoardRemoveLastTileForbidden(t *testing.T) {
	b := NewBoard(1)
	if err := b.RemoveTile(1); !errors.Is(err, ErrTileFloor) {
		t.Fatalf("expected ErrTileFloor, got %v", err)
	}
	if err := b.RemoveTile(4); !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("expected ErrUnknownTile, got %v", err)
	}
	if b.Count() != 1 {
		t.Fatalf("unexpected count %d", b.Count())
	}
}

func TestBoardSetSequence(t *testing.T) {
	b := NewBoard(1)
	seq := []Tile{
		{ID: 9, Rect: Rect{0, 0, 6, 8}, Category: CategoryFonts},
		{ID: 4, Rect: Rect{6, 0, 6, 8}},
	}
	if err := b.SetSequence(seq); err != nil {
		t.Fatalf("SetSequence() error = %v", err)
	}
	tiles := b.Tiles()
	if tiles[0].ID != 1 || tiles[1].ID != 2 || tiles[0].Category != CategoryFonts {
		t.Fatalf("unexpected tiles %+v", tiles)
	}
	if b.LayoutState() != LayoutFreeform {
		t.Fatalf("expected freeform, got %v", b.LayoutState())
	}
	if err := b.SetSequence(nil); !errors.Is(err, ErrInvalidTileCount) {
		t.Fatalf("expected ErrInvalidTileCount, got %v", err)
	}
	canonical, _ := Reconcile(3, nil)
	if err := b.SetSequence(canonical); err != nil || b.LayoutState() != LayoutAuto {
		t.Fatalf("expected canonical sequence to be auto, got %v (%v)", b.LayoutState(), err)
	}
}

func TestBoardTilesReturnsCopy(t *testing.T) {
	b := NewBoard(2)
	tiles := b.Tiles()
	tiles[0].Category = CategoryMusic
	if tile, _ := b.Tile(1); tile.Category != Unassigned {
		t.Fatal("expected Tiles() to return a detached copy")
	}
}

// categoriesOf returns the category of each tile in order.
func categoriesOf(tiles []Tile) []Category {
	out := make([]Category, len(tiles))
	for i, tile := range tiles {
		out[i] = tile.Category
	}
	return out
}
