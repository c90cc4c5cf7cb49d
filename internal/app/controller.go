package app

import (
	"fmt"

	"github.com/evanschultz/matter/internal/domain"
)

// ControllerConfig holds the initial grid state.
type ControllerConfig struct {
	InitialTiles int
	StartMode    domain.Mode
}

// Snapshot is the read model handed to the rendering surface after every change.
type Snapshot struct {
	Mode             domain.Mode
	Selection        int
	SelectedCategory domain.Category
	Count            int
	Layout           domain.LayoutState
	Tiles            []domain.Tile
}

// Armed reports whether a tile is mid-selection.
func (s Snapshot) Armed() bool {
	return s.Selection > 0
}

// Controller interprets intents against the current mode and mutates the board.
// It is not safe for concurrent use; Service serializes access.
type Controller struct {
	board    *domain.Board
	mode     domain.Mode
	armed    int
	category domain.Category
}

// NewController constructs a controller with a canonical board.
func NewController(cfg ControllerConfig) *Controller {
	initial := cfg.InitialTiles
	if initial == 0 {
		initial = domain.MinTiles
	}
	return &Controller{
		board: domain.NewBoard(initial),
		mode:  cfg.StartMode,
	}
}

// Dispatch applies one intent. Invalid intents are no-ops reported through Outcome.Reason.
func (c *Controller) Dispatch(in Intent) Outcome {
	if in == nil {
		return rejected("", fmt.Errorf("nil intent"))
	}
	switch in := in.(type) {
	case ToggleMode:
		next := domain.ModeArrange
		if c.mode == domain.ModeArrange {
			next = domain.ModeAssign
		}
		c.setMode(next)
		return applied(in.Kind())

	case SetMode:
		if in.Mode != domain.ModeAssign && in.Mode != domain.ModeArrange {
			return rejected(in.Kind(), fmt.Errorf("unknown mode %d", in.Mode))
		}
		if in.Mode == c.mode {
			return rejected(in.Kind(), domain.ErrModeUnchanged)
		}
		c.setMode(in.Mode)
		return applied(in.Kind())

	case AddTile:
		if c.board.Count() >= domain.MaxTiles {
			return rejected(in.Kind(), domain.ErrTileCap)
		}
		return c.reconcile(in.Kind(), c.board.Count()+1)

	case SetCount:
		if !domain.ValidTileCount(in.N) {
			return rejected(in.Kind(), domain.ErrInvalidTileCount)
		}
		return c.reconcile(in.Kind(), in.N)

	case DeleteTile:
		if c.mode != domain.ModeArrange {
			return rejected(in.Kind(), domain.ErrWrongMode)
		}
		c.armed = 0
		if err := c.board.RemoveTile(in.ID); err != nil {
			return rejected(in.Kind(), err)
		}
		return applied(in.Kind())

	case ApplyLayout:
		if c.mode != domain.ModeArrange {
			return rejected(in.Kind(), domain.ErrWrongMode)
		}
		return c.applyRects(in.Kind(), in.Rects)

	case MoveTile:
		if c.mode != domain.ModeArrange {
			return rejected(in.Kind(), domain.ErrWrongMode)
		}
		if in.Index < 0 || in.Index >= c.board.Count() {
			return rejected(in.Kind(), domain.ErrUnknownTile)
		}
		id := c.board.Tiles()[in.Index].ID
		if err := c.board.UpdateRect(id, in.Rect); err != nil {
			return rejected(in.Kind(), err)
		}
		return applied(in.Kind())

	case DropTile:
		if c.mode != domain.ModeArrange {
			return rejected(in.Kind(), domain.ErrWrongMode)
		}
		if !c.category.Assigned() {
			return rejected(in.Kind(), domain.ErrNoCategory)
		}
		if err := c.board.AssignCategory(in.ID, c.category); err != nil {
			return rejected(in.Kind(), err)
		}
		return applied(in.Kind())

	case PressTile:
		if c.mode != domain.ModeAssign {
			return rejected(in.Kind(), domain.ErrWrongMode)
		}
		if _, ok := c.board.Tile(in.ID); !ok {
			return rejected(in.Kind(), domain.ErrUnknownTile)
		}
		c.armed = in.ID
		return applied(in.Kind())

	case ReleaseTile:
		if c.mode != domain.ModeAssign {
			return rejected(in.Kind(), domain.ErrWrongMode)
		}
		armed := c.armed
		c.armed = 0
		if !c.category.Assigned() {
			return rejected(in.Kind(), domain.ErrNoCategory)
		}
		if armed == 0 || armed != in.ID {
			return rejected(in.Kind(), domain.ErrNotArmed)
		}
		if err := c.board.AssignCategory(in.ID, c.category); err != nil {
			return rejected(in.Kind(), err)
		}
		return applied(in.Kind())

	case SelectCategory:
		if !in.Category.Valid() {
			return rejected(in.Kind(), domain.ErrUnknownCategory)
		}
		if !in.Category.Assigned() {
			return rejected(in.Kind(), domain.ErrNoCategory)
		}
		c.category = in.Category
		return applied(in.Kind())

	case ClearCategory:
		if !c.category.Assigned() {
			return rejected(in.Kind(), domain.ErrNoCategory)
		}
		c.category = domain.Unassigned
		return applied(in.Kind())

	default:
		return rejected(in.Kind(), fmt.Errorf("unsupported intent %q", in.Kind()))
	}
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() domain.Mode {
	return c.mode
}

// Selection returns the armed tile id, if any.
func (c *Controller) Selection() (int, bool) {
	return c.armed, c.armed > 0
}

// SelectedCategory returns the armed sidebar category.
func (c *Controller) SelectedCategory() domain.Category {
	return c.category
}

// Tiles returns a copy of the tile sequence.
func (c *Controller) Tiles() []domain.Tile {
	return c.board.Tiles()
}

// Count returns the tile count.
func (c *Controller) Count() int {
	return c.board.Count()
}

// LayoutState reports whether the layout is canonical or user-arranged.
func (c *Controller) LayoutState() domain.LayoutState {
	return c.board.LayoutState()
}

// Snapshot captures the full read model.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Mode:             c.mode,
		Selection:        c.armed,
		SelectedCategory: c.category,
		Count:            c.board.Count(),
		Layout:           c.board.LayoutState(),
		Tiles:            c.board.Tiles(),
	}
}

// setMode switches mode and drops any half-finished selection.
func (c *Controller) setMode(mode domain.Mode) {
	c.mode = mode
	c.armed = 0
}

// reconcile moves the board to n canonical tiles.
func (c *Controller) reconcile(kind IntentKind, n int) Outcome {
	if err := c.board.SetCount(n); err != nil {
		return rejected(kind, err)
	}
	if c.armed > c.board.Count() {
		c.armed = 0
	}
	return applied(kind)
}

// applyRects merges rects into existing tiles by index; entries past the count are ignored.
func (c *Controller) applyRects(kind IntentKind, rects []domain.Rect) Outcome {
	tiles := c.board.Tiles()
	n := min(len(rects), len(tiles))
	if n == 0 {
		return rejected(kind, domain.ErrInvalidRect)
	}
	for _, rect := range rects[:n] {
		if !rect.Valid() {
			return rejected(kind, domain.ErrInvalidRect)
		}
	}
	for i, rect := range rects[:n] {
		if err := c.board.UpdateRect(tiles[i].ID, rect); err != nil {
			return rejected(kind, err)
		}
	}
	return applied(kind)
}
