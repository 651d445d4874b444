package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "drafty"

// ConfigPaths holds the config files found for each layer. Empty means not found.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// projectConfigFiles are searched in each directory walking upward, first match wins.
	projectConfigFiles = []string{
		".drafty.yml",
		".drafty.yaml",
		"drafty.yml",
		"drafty.yaml",
		".drafty.json",
	}

	// dirConfigFiles are looked up in the system and user config directories.
	dirConfigFiles = []string{"config.yaml", "config.yml", "config.json"}

	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the system, user and project config files for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(SystemConfigDir(), dirConfigFiles),
		User:    firstExisting(UserConfigDir(), dirConfigFiles),
		Project: project,
	}, nil
}

// SystemConfigDir is /etc/drafty, or %ProgramData%\drafty on Windows.
func SystemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appName)
}

// UserConfigDir is $XDG_CONFIG_HOME/drafty, falling back to ~/.config/drafty.
// It is empty when neither can be determined.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks from startDir toward the filesystem root and returns the
// first project config file it sees. The walk ends at a VCS root or the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if found := firstExisting(dir, projectConfigFiles); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// firstExisting returns the first of names present as a regular file in dir.
func firstExisting(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
