package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// TestParseBindingKeys verifies key parsing behavior for configured overrides.
func TestParseBindingKeys(t *testing.T) {
	t.Run("space aliases", func(t *testing.T) {
		keys, help := parseBindingKeys("space", ".")
		if len(keys) != 2 || keys[0] != " " || keys[1] != "space" {
			t.Fatalf("unexpected parsed space keys %#v", keys)
		}
		if help != "space" {
			t.Fatalf("unexpected space help text %q", help)
		}
	})

	t.Run("uppercase letter matches both cases", func(t *testing.T) {
		keys, help := parseBindingKeys("T", "t")
		if len(keys) != 3 || keys[0] != "T" || keys[1] != "t" || keys[2] != "shift+t" {
			t.Fatalf("unexpected uppercase parsed keys %#v", keys)
		}
		if help != "T" {
			t.Fatalf("unexpected uppercase help text %q", help)
		}
	})

	t.Run("multi rune lowercases key matcher", func(t *testing.T) {
		keys, help := parseBindingKeys("Ctrl+A", "t")
		if len(keys) != 1 || keys[0] != "ctrl+a" {
			t.Fatalf("unexpected multi-rune parsed keys %#v", keys)
		}
		if help != "Ctrl+A" {
			t.Fatalf("unexpected multi-rune help text %q", help)
		}
	})

	t.Run("lowercase letter matches both cases", func(t *testing.T) {
		keys, help := parseBindingKeys("h", "t")
		if len(keys) != 3 || keys[0] != "h" || keys[1] != "H" || keys[2] != "shift+h" {
			t.Fatalf("unexpected lowercase parsed keys %#v", keys)
		}
		if help != "h" {
			t.Fatalf("unexpected lowercase help text %q", help)
		}
	})

	t.Run("non-letter rune stays single", func(t *testing.T) {
		keys, _ := parseBindingKeys("?", "t")
		if len(keys) != 1 || keys[0] != "?" {
			t.Fatalf("unexpected symbol parsed keys %#v", keys)
		}
	})

	t.Run("blank uses fallback", func(t *testing.T) {
		keys, help := parseBindingKeys("", "x")
		if len(keys) != 3 || keys[0] != "x" || keys[1] != "X" {
			t.Fatalf("unexpected fallback parsed keys %#v", keys)
		}
		if help != "x" {
			t.Fatalf("unexpected fallback help text %q", help)
		}
	})
}

// TestConfigureBinding verifies binding override application behavior.
func TestConfigureBinding(t *testing.T) {
	b := key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "old"))
	configureBinding(&b, "v", "g", "activity log")
	keys := b.Keys()
	if len(keys) != 3 || keys[0] != "v" || keys[1] != "V" {
		t.Fatalf("unexpected configured keys %#v", keys)
	}
	if b.Help().Key != "v" || b.Help().Desc != "activity log" {
		t.Fatalf("unexpected configured help %#v", b.Help())
	}
}

// TestKeyMapApplyConfig verifies dynamic key map override behavior.
func TestKeyMapApplyConfig(t *testing.T) {
	k := newKeyMap()
	k.applyConfig(KeyConfig{
		ToggleMode:  "m",
		AddTile:     "N",
		DeleteTile:  "",
		ActivityLog: "v",
	})

	assertKeys := func(name string, binding key.Binding, expected ...string) {
		t.Helper()
		got := binding.Keys()
		if len(got) != len(expected) {
			t.Fatalf("%s key count mismatch got=%#v expected=%#v", name, got, expected)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Fatalf("%s key mismatch got=%#v expected=%#v", name, got, expected)
			}
		}
	}

	assertKeys("toggle mode", k.toggleMode, "m", "M", "shift+m")
	assertKeys("add tile", k.addTile, "N", "n", "shift+n")
	assertKeys("delete tile", k.deleteTile, "x", "X", "shift+x")
	assertKeys("activity log", k.activityLog, "v", "V", "shift+v")
}

// TestKeyMapShiftedLettersMatch verifies H and T work with defaults and with configured defaults.
func TestKeyMapShiftedLettersMatch(t *testing.T) {
	shiftH := tea.KeyPressMsg{Code: 'h', Text: "H", Mod: tea.ModShift}
	shiftT := tea.KeyPressMsg{Code: 't', Text: "T", Mod: tea.ModShift}

	k := newKeyMap()
	if !key.Matches(shiftH, k.toggleMode) || !key.Matches(shiftT, k.addTile) {
		t.Fatal("expected built-in bindings to accept H and T")
	}
	k.applyConfig(KeyConfig{ToggleMode: "h", AddTile: "t", DeleteTile: "x", ActivityLog: "g"})
	if !key.Matches(shiftH, k.toggleMode) || !key.Matches(shiftT, k.addTile) {
		t.Fatal("expected configured bindings to accept H and T")
	}
}
