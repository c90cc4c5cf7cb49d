package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/matter/internal/adapters/storage/sqlite"
	"github.com/evanschultz/matter/internal/app"
	"github.com/evanschultz/matter/internal/config"
	"github.com/evanschultz/matter/internal/domain"
	"github.com/evanschultz/matter/internal/platform"
	"github.com/evanschultz/matter/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	appName    string
	devMode    bool
	tiles      int
	mode       string
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

// newRootCommand builds the matter command tree.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{appName: "matter"}
	opts.devMode = version == "dev"
	if envDev, ok := parseBoolEnv("MATTER_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("MATTER_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}

	root := &cobra.Command{
		Use:   "matter",
		Short: "A tile dashboard for the terminal",
		Long:  "matter shows up to five tiles on a 12x8 grid. Pick a category in the sidebar, then click a tile to fill it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts, stderr)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/log path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")
	root.Flags().IntVar(&opts.tiles, "tiles", 0, "initial tile count (1-5), overrides config")
	root.Flags().StringVar(&opts.mode, "mode", "", "start mode (assign|arrange), overrides config")

	root.AddCommand(
		&cobra.Command{
			Use:   "paths",
			Short: "Print resolved config and log paths",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runPaths(opts, stdout)
			},
		},
		newConfigCommand(opts, stdout),
		&cobra.Command{
			Use:   "layouts",
			Short: "Print the default layout for each tile count",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runLayouts(stdout)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the matter version",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				_, err := fmt.Fprintf(stdout, "matter %s\n", version)
				return err
			},
		},
	)
	return root
}

// runPaths prints the resolved runtime paths.
func runPaths(opts *rootOptions, stdout io.Writer) error {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
	_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
	_, _ = fmt.Fprintf(stdout, "config: %s\n", resolveConfigPath(opts, paths))
	_, _ = fmt.Fprintf(stdout, "log_dir: %s\n", paths.LogDir)
	return nil
}

// newConfigCommand builds the config command group.
func newConfigCommand(opts *rootOptions, stdout io.Writer) *cobra.Command {
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config.toml",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(opts, force, stdout)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(initCmd)
	return cmd
}

// runConfigInit writes the built-in defaults to the resolved config path.
func runConfigInit(opts *rootOptions, force bool, stdout io.Writer) error {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return err
	}
	configPath := resolveConfigPath(opts, paths)
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config %q already exists, use --force to overwrite", configPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config %q: %w", configPath, err)
		}
	}
	if err := config.Save(configPath, config.Default()); err != nil {
		return fmt.Errorf("write config %q: %w", configPath, err)
	}
	_, err = fmt.Fprintf(stdout, "wrote %s\n", configPath)
	return err
}

// runLayouts prints the canonical rects for every tile count.
func runLayouts(stdout io.Writer) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TILES", "RECTS (x,y wxh)")
	for n := domain.MinTiles; n <= domain.MaxTiles; n++ {
		rects, err := domain.DefaultRects(n)
		if err != nil {
			return fmt.Errorf("default layout for %d tiles: %w", n, err)
		}
		cells := make([]string, 0, len(rects))
		for _, r := range rects {
			cells = append(cells, r.String())
		}
		t.Row(strconv.Itoa(n), strings.Join(cells, " "))
	}
	_, err := fmt.Fprintln(stdout, t.String())
	return err
}

// resolveConfigPath picks the flag, then MATTER_CONFIG, then the platform default.
func resolveConfigPath(opts *rootOptions, paths platform.Paths) string {
	if path := strings.TrimSpace(opts.configPath); path != "" {
		return path
	}
	if envPath := strings.TrimSpace(os.Getenv("MATTER_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// loadConfig loads config.toml and applies command-line overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions, configPath string) (config.Config, error) {
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	overridden := false
	if cmd.Flags().Changed("tiles") {
		cfg.Grid.InitialTiles = opts.tiles
		overridden = true
	}
	if cmd.Flags().Changed("mode") {
		cfg.Grid.StartMode = opts.mode
		overridden = true
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("validate flags: %w", err)
		}
	}
	return cfg, nil
}

// runTUI wires the journal, service and model, then runs the program loop.
func runTUI(cmd *cobra.Command, opts *rootOptions, stderr io.Writer) error {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return err
	}
	configPath := resolveConfigPath(opts, paths)
	cfg, err := loadConfig(cmd, opts, configPath)
	if err != nil {
		return err
	}
	startMode, err := domain.ParseMode(cfg.Grid.StartMode)
	if err != nil {
		return fmt.Errorf("start mode: %w", err)
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, paths.LogDir, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the dashboard is active.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil && logger.shouldLogToSink(logger.consoleSink) {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Debug("runtime paths resolved", "config_path", configPath, "log_dir", paths.LogDir)
	logger.Info("configuration loaded", "config_path", configPath, "log_level", cfg.Logging.Level, "initial_tiles", cfg.Grid.InitialTiles, "start_mode", startMode)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	var journal app.Journal
	if cfg.Journal.Enabled {
		store, err := sqlite.OpenInMemory()
		if err != nil {
			logger.Error("session journal open failed", "err", err)
			return fmt.Errorf("open session journal: %w", err)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.Warn("session journal close failed", "err", closeErr)
			}
		}()
		journal = store
		logger.Info("session journal ready", "activity_limit", cfg.Journal.ActivityLimit)
	}

	svc := app.NewService(journal, uuid.NewString, nil, app.ServiceConfig{
		InitialTiles: cfg.Grid.InitialTiles,
		StartMode:    startMode,
		Logger:       logger,
	})
	logger.Debug("application service initialized", "session_id", svc.SessionID())

	m := tui.NewModel(svc, tui.WithRuntimeConfig(toTUIRuntimeConfig(cfg)))
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// parseBoolEnv parses a boolean environment variable; ok is false when unset or malformed.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// toTUIRuntimeConfig maps config values into the model's runtime settings.
func toTUIRuntimeConfig(cfg config.Config) tui.RuntimeConfig {
	return tui.RuntimeConfig{
		SidebarWidth:   cfg.Sidebar.Width,
		SidebarVisible: cfg.Sidebar.Visible,
		Content: tui.ContentConfig{
			MusicURL: cfg.Content.MusicURL,
			Colors:   append([]string(nil), cfg.Content.Colors...),
		},
		ActivityLimit: cfg.Journal.ActivityLimit,
		Keys: tui.KeyConfig{
			ToggleMode:  cfg.Keys.ToggleMode,
			AddTile:     cfg.Keys.AddTile,
			DeleteTile:  cfg.Keys.DeleteTile,
			ActivityLog: cfg.Keys.ActivityLog,
		},
	}
}
