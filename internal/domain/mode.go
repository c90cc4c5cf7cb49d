package domain

import (
	"fmt"
	"strings"
)

// Mode selects how pointer gestures on the grid are interpreted.
type Mode int

// ModeAssign is the default: click a tile, then a category, to bind content.
// ModeArrange lets tiles be dragged, resized and deleted.
const (
	ModeAssign Mode = iota
	ModeArrange
)

// ParseMode parses a config or CLI mode name.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "assign":
		return ModeAssign, nil
	case "arrange", "handle":
		return ModeArrange, nil
	default:
		return ModeAssign, fmt.Errorf("unknown mode %q", raw)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeArrange {
		return "arrange"
	}
	return "assign"
}

// LayoutState records whether tile rects follow the canonical table.
type LayoutState int

// LayoutAuto means rects were derived from the table; LayoutFreeform means the user edited them.
const (
	LayoutAuto LayoutState = iota
	LayoutFreeform
)

// String returns the layout state name.
func (s LayoutState) String() string {
	if s == LayoutFreeform {
		return "freeform"
	}
	return "auto"
}
