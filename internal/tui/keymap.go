package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit          key.Binding
	toggleHelp    key.Binding
	toggleMode    key.Binding
	addTile       key.Binding
	deleteTile    key.Binding
	setCount      key.Binding
	nextTile      key.Binding
	prevTile      key.Binding
	moveLeft      key.Binding
	moveRight     key.Binding
	moveUp        key.Binding
	moveDown      key.Binding
	growWidth     key.Binding
	shrinkWidth   key.Binding
	growHeight    key.Binding
	shrinkHeight  key.Binding
	activate      key.Binding
	sidebarUp     key.Binding
	sidebarDown   key.Binding
	pickCategory  key.Binding
	clearCategory key.Binding
	narrowSidebar key.Binding
	widenSidebar  key.Binding
	toggleSidebar key.Binding
	activityLog   key.Binding
	copyContent   key.Binding
	closeOverlay  key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		toggleMode:    key.NewBinding(key.WithKeys("h", "H", "shift+h"), key.WithHelp("h", "arrange mode")),
		addTile:       key.NewBinding(key.WithKeys("t", "T", "shift+t"), key.WithHelp("t", "add tile")),
		deleteTile:    key.NewBinding(key.WithKeys("x", "X", "shift+x"), key.WithHelp("x", "delete tile")),
		setCount:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "tile count")),
		nextTile:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tile")),
		prevTile:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tile")),
		moveLeft:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
		moveRight:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move right")),
		moveUp:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		moveDown:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		growWidth:     key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "wider")),
		shrinkWidth:   key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "narrower")),
		growHeight:    key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "taller")),
		shrinkHeight:  key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "shorter")),
		activate:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "assign/drop on tile")),
		sidebarUp:     key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "category up")),
		sidebarDown:   key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "category down")),
		pickCategory:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select category")),
		clearCategory: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear category")),
		narrowSidebar: key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrow sidebar")),
		widenSidebar:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "widen sidebar")),
		toggleSidebar: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle sidebar")),
		activityLog:   key.NewBinding(key.WithKeys("g", "G", "shift+g"), key.WithHelp("g", "activity log")),
		copyContent:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy tile")),
		closeOverlay:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// applyConfig swaps in configured single-key overrides.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.toggleMode, cfg.ToggleMode, "h", "arrange mode")
	configureBinding(&k.addTile, cfg.AddTile, "t", "add tile")
	configureBinding(&k.deleteTile, cfg.DeleteTile, "x", "delete tile")
	configureBinding(&k.activityLog, cfg.ActivityLog, "g", "activity log")
}

// configureBinding rebinds b to raw, falling back when raw is blank.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, helpKey := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(helpKey, desc)
}

// parseBindingKeys turns one configured key into matcher keys plus help text.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = strings.TrimSpace(fallback)
	}
	if strings.EqualFold(value, "space") || value == "" {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if !unicode.IsLetter(r) || unicode.ToLower(r) == unicode.ToUpper(r) {
			return []string{value}, value
		}
		// Letters match either case; shift+<letter> covers terminals that report the modifier.
		lower, upper := string(unicode.ToLower(r)), string(unicode.ToUpper(r))
		if unicode.IsUpper(r) {
			return []string{upper, lower, "shift+" + lower}, value
		}
		return []string{lower, upper, "shift+" + lower}, value
	}
	return []string{strings.ToLower(value)}, value
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.toggleMode, k.addTile, k.deleteTile, k.pickCategory, k.activate, k.activityLog, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggleMode, k.addTile, k.deleteTile, k.setCount, k.nextTile, k.prevTile, k.activate, k.copyContent},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown, k.growWidth, k.shrinkWidth, k.growHeight, k.shrinkHeight},
		{k.sidebarUp, k.sidebarDown, k.pickCategory, k.clearCategory, k.narrowSidebar, k.widenSidebar, k.toggleSidebar},
		{k.activityLog, k.toggleHelp, k.quit},
	}
}
