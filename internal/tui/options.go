package tui

import "slices"

// Sidebar width bounds in terminal cells.
const (
	sidebarMinWidth     = 20
	sidebarMaxWidth     = 40
	defaultSidebarWidth = 25
)

// RuntimeConfig holds the settings the model reads from config.toml.
type RuntimeConfig struct {
	SidebarWidth   int
	SidebarVisible bool
	Content        ContentConfig
	ActivityLimit  int
	Keys           KeyConfig
}

// ContentConfig feeds tile content cards.
type ContentConfig struct {
	MusicURL string
	Colors   []string
}

// KeyConfig holds configured key overrides.
type KeyConfig struct {
	ToggleMode  string
	AddTile     string
	DeleteTile  string
	ActivityLog string
}

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter func(string) error

// Option defines a functional option for model configuration.
type Option func(*Model)

// DefaultRuntimeConfig returns the settings used when no config file is present.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		SidebarWidth:   defaultSidebarWidth,
		SidebarVisible: true,
		Content: ContentConfig{
			MusicURL: "https://open.spotify.com/embed/playlist/547oddbhReyozD8Amu9VYl",
			Colors:   []string{"#000000", "#FFFFFF", "#666666", "#999999"},
		},
		ActivityLimit: 50,
	}
}

// WithRuntimeConfig applies loaded config values.
func WithRuntimeConfig(cfg RuntimeConfig) Option {
	return func(m *Model) {
		m.applyRuntimeConfig(cfg)
	}
}

// WithClipboardWriter replaces the system clipboard writer.
func WithClipboardWriter(write ClipboardWriter) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

// applyRuntimeConfig stores cfg, keeping defaults for zero values.
func (m *Model) applyRuntimeConfig(cfg RuntimeConfig) {
	defaults := DefaultRuntimeConfig()
	if cfg.SidebarWidth == 0 {
		cfg.SidebarWidth = defaults.SidebarWidth
	}
	m.sidebarWidth = clamp(cfg.SidebarWidth, sidebarMinWidth, sidebarMaxWidth)
	m.sidebarVisible = cfg.SidebarVisible
	if cfg.Content.MusicURL == "" {
		cfg.Content.MusicURL = defaults.Content.MusicURL
	}
	if len(cfg.Content.Colors) == 0 {
		cfg.Content.Colors = defaults.Content.Colors
	}
	m.content = ContentConfig{
		MusicURL: cfg.Content.MusicURL,
		Colors:   slices.Clone(cfg.Content.Colors),
	}
	if cfg.ActivityLimit <= 0 {
		cfg.ActivityLimit = defaults.ActivityLimit
	}
	m.activityLimit = cfg.ActivityLimit
	m.keys.applyConfig(cfg.Keys)
}
