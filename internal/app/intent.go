package app

import "github.com/evanschultz/matter/internal/domain"

// IntentKind names one dashboard intent.
type IntentKind string

// IntentKind values.
const (
	IntentToggleMode     IntentKind = "toggle_mode"
	IntentSetMode        IntentKind = "set_mode"
	IntentAddTile        IntentKind = "add_tile"
	IntentSetCount       IntentKind = "set_count"
	IntentDeleteTile     IntentKind = "delete_tile"
	IntentApplyLayout    IntentKind = "apply_layout"
	IntentMoveTile       IntentKind = "move_tile"
	IntentDropTile       IntentKind = "drop_tile"
	IntentPressTile      IntentKind = "press_tile"
	IntentReleaseTile    IntentKind = "release_tile"
	IntentSelectCategory IntentKind = "select_category"
	IntentClearCategory  IntentKind = "clear_category"
)

// Intent is one discrete request raised by the sidebar, keyboard or grid surface.
type Intent interface {
	Kind() IntentKind
}

// ToggleMode flips between assign and arrange mode.
type ToggleMode struct{}

// SetMode switches to an explicit mode.
type SetMode struct {
	Mode domain.Mode
}

// AddTile grows the grid by one tile, snapping every tile back to the canonical layout.
type AddTile struct{}

// SetCount selects a tile count directly.
type SetCount struct {
	N int
}

// DeleteTile removes one tile by id.
type DeleteTile struct {
	ID int
}

// ApplyLayout merges gesture-reported rects into the sequence by index.
type ApplyLayout struct {
	Rects []domain.Rect
}

// MoveTile reports the committed rect of one drag or resize gesture.
type MoveTile struct {
	Index int
	Rect  domain.Rect
}

// DropTile reports the tile released at the end of an arrange-mode drag.
type DropTile struct {
	ID int
}

// PressTile arms a tile for assignment.
type PressTile struct {
	ID int
}

// ReleaseTile completes a click on a tile.
type ReleaseTile struct {
	ID int
}

// SelectCategory arms a sidebar category.
type SelectCategory struct {
	Category domain.Category
}

// ClearCategory disarms the sidebar category.
type ClearCategory struct{}

func (ToggleMode) Kind() IntentKind     { return IntentToggleMode }
func (SetMode) Kind() IntentKind        { return IntentSetMode }
func (AddTile) Kind() IntentKind        { return IntentAddTile }
func (SetCount) Kind() IntentKind       { return IntentSetCount }
func (DeleteTile) Kind() IntentKind     { return IntentDeleteTile }
func (ApplyLayout) Kind() IntentKind    { return IntentApplyLayout }
func (MoveTile) Kind() IntentKind       { return IntentMoveTile }
func (DropTile) Kind() IntentKind       { return IntentDropTile }
func (PressTile) Kind() IntentKind      { return IntentPressTile }
func (ReleaseTile) Kind() IntentKind    { return IntentReleaseTile }
func (SelectCategory) Kind() IntentKind { return IntentSelectCategory }
func (ClearCategory) Kind() IntentKind  { return IntentClearCategory }

// Outcome reports what one dispatched intent did.
// A rejected intent has Applied=false and a domain sentinel in Reason.
type Outcome struct {
	Kind    IntentKind
	Applied bool
	Reason  error
}

// applied builds a successful outcome.
func applied(kind IntentKind) Outcome {
	return Outcome{Kind: kind, Applied: true}
}

// rejected builds a no-op outcome with a reason.
func rejected(kind IntentKind, reason error) Outcome {
	return Outcome{Kind: kind, Reason: reason}
}
