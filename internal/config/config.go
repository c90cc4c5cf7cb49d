package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Sidebar width bounds in terminal cells.
const (
	SidebarMinWidth     = 20
	SidebarMaxWidth     = 40
	DefaultSidebarWidth = 25
)

// DefaultMusicURL is the playlist linked from MUSIC tiles.
const DefaultMusicURL = "https://open.spotify.com/embed/playlist/547oddbhReyozD8Amu9VYl"

// hexColorPattern matches #RGB and #RRGGBB swatches.
var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Config holds every user-tunable setting loaded from config.toml.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Grid    GridConfig    `toml:"grid"`
	Sidebar SidebarConfig `toml:"sidebar"`
	Content ContentConfig `toml:"content"`
	Journal JournalConfig `toml:"journal"`
	Keys    KeyConfig     `toml:"keys"`
}

// LoggingConfig configures runtime log sinks.
type LoggingConfig struct {
	Level   string           `toml:"level"`
	DevFile DevFileLogConfig `toml:"dev_file"`
}

// DevFileLogConfig configures the dev-mode log file sink.
// A blank Dir selects the platform log dir; a relative one is anchored at the workspace root.
type DevFileLogConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// GridConfig configures the board the dashboard opens with.
type GridConfig struct {
	InitialTiles int    `toml:"initial_tiles"`
	StartMode    string `toml:"start_mode"` // assign | arrange (handle is an alias)
}

// SidebarConfig configures the category sidebar.
type SidebarConfig struct {
	Width   int  `toml:"width"`
	Visible bool `toml:"visible"`
}

// ContentConfig feeds the tile content cards.
type ContentConfig struct {
	MusicURL string   `toml:"music_url"`
	Colors   []string `toml:"colors"`
}

// JournalConfig configures the session activity log.
type JournalConfig struct {
	Enabled       bool `toml:"enabled"`
	ActivityLimit int  `toml:"activity_limit"`
}

// KeyConfig overrides single-key bindings.
type KeyConfig struct {
	ToggleMode  string `toml:"toggle_mode"`
	AddTile     string `toml:"add_tile"`
	DeleteTile  string `toml:"delete_tile"`
	ActivityLog string `toml:"activity_log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileLogConfig{
				Enabled: true,
			},
		},
		Grid: GridConfig{
			InitialTiles: 1,
			StartMode:    "assign",
		},
		Sidebar: SidebarConfig{
			Width:   DefaultSidebarWidth,
			Visible: true,
		},
		Content: ContentConfig{
			MusicURL: DefaultMusicURL,
			Colors:   []string{"#000000", "#FFFFFF", "#666666", "#999999"},
		},
		Journal: JournalConfig{
			Enabled:       true,
			ActivityLimit: 50,
		},
		Keys: KeyConfig{
			ToggleMode:  "h",
			AddTile:     "t",
			DeleteTile:  "x",
			ActivityLog: "g",
		},
	}
}

// Load reads path over defaults. A missing or empty file yields the defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	if c.Grid.InitialTiles < 1 || c.Grid.InitialTiles > 5 {
		return fmt.Errorf("grid.initial_tiles must be between 1 and 5, got %d", c.Grid.InitialTiles)
	}
	switch strings.TrimSpace(strings.ToLower(c.Grid.StartMode)) {
	case "", "assign", "arrange", "handle":
	default:
		return fmt.Errorf("invalid grid.start_mode: %q", c.Grid.StartMode)
	}

	if c.Sidebar.Width < SidebarMinWidth || c.Sidebar.Width > SidebarMaxWidth {
		return fmt.Errorf("sidebar.width must be between %d and %d, got %d", SidebarMinWidth, SidebarMaxWidth, c.Sidebar.Width)
	}

	if strings.TrimSpace(c.Content.MusicURL) == "" {
		return errors.New("content.music_url is required")
	}
	if len(c.Content.Colors) == 0 {
		return errors.New("content.colors must include at least one swatch")
	}
	for i, color := range c.Content.Colors {
		if !hexColorPattern.MatchString(strings.TrimSpace(color)) {
			return fmt.Errorf("content.colors[%d] is not a hex color: %q", i, color)
		}
	}

	if c.Journal.ActivityLimit < 1 {
		return fmt.Errorf("journal.activity_limit must be >= 1, got %d", c.Journal.ActivityLimit)
	}

	keys := map[string]string{
		"keys.toggle_mode":  c.Keys.ToggleMode,
		"keys.add_tile":     c.Keys.AddTile,
		"keys.delete_tile":  c.Keys.DeleteTile,
		"keys.activity_log": c.Keys.ActivityLog,
	}
	seen := map[string]string{}
	for _, name := range []string{"keys.toggle_mode", "keys.add_tile", "keys.delete_tile", "keys.activity_log"} {
		// Letter bindings match either case.
		key := strings.ToLower(strings.TrimSpace(keys[name]))
		if key == "" {
			continue
		}
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%s duplicates %s: %q", name, other, key)
		}
		seen[key] = name
	}

	return nil
}

// Save validates cfg and writes it to path as TOML, creating parent dirs.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EnsureConfigDir creates the parent directory of path.
func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
