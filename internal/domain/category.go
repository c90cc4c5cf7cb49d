package domain

import (
	"slices"
	"strings"
)

// Category identifies the content bound to a tile.
type Category int

// Unassigned is the zero value; the rest follow sidebar order.
const (
	Unassigned Category = iota
	CategoryMusic
	CategoryMovies
	CategoryVideos
	CategoryColors
	CategoryFonts
	CategoryLiterature
	CategoryTextures
	CategoryItems
	CategoryFeelings
	CategorySeason
	CategoryProgramming
	CategoryActivities
	CategoryWebsites
)

// categoryLabels stores sidebar labels indexed by Category.
var categoryLabels = []string{
	Unassigned:          "",
	CategoryMusic:       "MUSIC",
	CategoryMovies:      "MOVIES",
	CategoryVideos:      "VIDEOS",
	CategoryColors:      "COLORS",
	CategoryFonts:       "FONTS",
	CategoryLiterature:  "LITERATURE",
	CategoryTextures:    "TEXTURES",
	CategoryItems:       "ITEMS",
	CategoryFeelings:    "FEELINGS",
	CategorySeason:      "SEASON, TEMPERATURE, WEATHER",
	CategoryProgramming: "PROGRAMMING STUFF",
	CategoryActivities:  "ACTIVITIES",
	CategoryWebsites:    "WEBSITES",
}

// Categories returns every assignable category in sidebar order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryLabels)-1)
	for c := CategoryMusic; int(c) < len(categoryLabels); c++ {
		out = append(out, c)
	}
	return out
}

// ParseCategory maps a sidebar label to its category.
func ParseCategory(raw string) (Category, error) {
	label := strings.ToUpper(strings.TrimSpace(raw))
	if label == "" {
		return Unassigned, ErrUnknownCategory
	}
	idx := slices.Index(categoryLabels, label)
	if idx <= 0 {
		return Unassigned, ErrUnknownCategory
	}
	return Category(idx), nil
}

// Valid reports whether c is a known category or Unassigned.
func (c Category) Valid() bool {
	return c >= Unassigned && int(c) < len(categoryLabels)
}

// Assigned reports whether c names real content.
func (c Category) Assigned() bool {
	return c != Unassigned && c.Valid()
}

// String returns the sidebar label, or "unassigned".
func (c Category) String() string {
	if !c.Assigned() {
		return "unassigned"
	}
	return categoryLabels[c]
}
