package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// defaultAppName names the per-user directories when no app name is given.
const defaultAppName = "matter"

// Paths holds where the dashboard reads its config and writes dev logs.
// Nothing else is persisted.
type Paths struct {
	ConfigPath string
	LogDir     string
}

// Options selects the app directory name.
type Options struct {
	AppName string
	DevMode bool
}

// Base carries the per-user roots a platform resolution starts from.
type Base struct {
	GOOS      string
	Home      string
	ConfigDir string
	Env       map[string]string
}

// DefaultPaths returns paths for the default app name.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{AppName: defaultAppName})
}

// DefaultPathsWithOptions resolves paths from the running process's user dirs and environment.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user config dir: %w", err)
	}
	// A missing home only matters on platforms that derive the log dir from it.
	home, _ := os.UserHomeDir()
	return PathsFor(Base{
		GOOS:      runtime.GOOS,
		Home:      home,
		ConfigDir: configDir,
		Env: map[string]string{
			"XDG_STATE_HOME": os.Getenv("XDG_STATE_HOME"),
			"LOCALAPPDATA":   os.Getenv("LOCALAPPDATA"),
		},
	}, AppDirName(opts))
}

// AppDirName returns the directory name used under each per-user root.
func AppDirName(opts Options) string {
	name := strings.TrimSpace(opts.AppName)
	if name == "" {
		name = defaultAppName
	}
	if opts.DevMode {
		name += "-dev"
	}
	return name
}

// PathsFor resolves app paths for one platform without touching the process environment.
// Config always lives under ConfigDir. Logs follow the platform's state or log convention.
func PathsFor(base Base, appName string) (Paths, error) {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, errors.New("empty app name")
	}
	if strings.TrimSpace(base.ConfigDir) == "" {
		return Paths{}, errors.New("empty config dir")
	}
	logDir, err := logDirFor(base, appName)
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		ConfigPath: filepath.Join(base.ConfigDir, appName, "config.toml"),
		LogDir:     logDir,
	}, nil
}

// logDirFor picks the per-user log directory for one platform.
func logDirFor(base Base, appName string) (string, error) {
	switch base.GOOS {
	case "windows":
		root := strings.TrimSpace(base.Env["LOCALAPPDATA"])
		if root == "" {
			root = base.ConfigDir
		}
		return filepath.Join(root, appName, "log"), nil
	case "darwin":
		if base.Home == "" {
			return "", errors.New("empty home dir")
		}
		return filepath.Join(base.Home, "Library", "Logs", appName), nil
	default:
		if v := strings.TrimSpace(base.Env["XDG_STATE_HOME"]); v != "" {
			return filepath.Join(v, appName, "log"), nil
		}
		if base.Home == "" {
			return "", errors.New("empty home dir")
		}
		return filepath.Join(base.Home, ".local", "state", appName, "log"), nil
	}
}
