// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/drafty/pkg/config"
	"github.com/yaklabco/drafty/pkg/fsutil"
)

const (
	// configFilePermissions is the file mode for configuration files (world-readable).
	configFilePermissions = 0o644

	// configDirPermissions is the mode for directories created for config files.
	configDirPermissions = 0o755
)

// ErrConfigExists is returned by WriteConfig when the target file exists.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (DRAFTY_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.drafty.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/drafty/config.yaml)
//  6. System config (/etc/drafty/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	stack := []*config.Config{config.NewConfig()}

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{name: "system", path: paths.System, skipped: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skipped: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skipped: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}

		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		validation := ValidateWithFile(layerCfg, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		if validation.HasWarnings() {
			result.Warnings = append(result.Warnings, warningMessages(validation)...)
		}

		stack = append(stack, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}
	cfg := MergeAll(stack...)

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		verr := validation.Errors[0]
		if !opts.IgnoreEnv {
			verr.FilePath = envSource(verr)
		}
		return nil, &verr
	}

	result.Config = cfg
	return result, nil
}

// envSource names the environment variable that supplied the failing value, if any.
func envSource(verr ValidationError) string {
	name := GetEnvVarName(verr.Field)
	if name == "" {
		return ""
	}
	if value := os.Getenv(name); value != "" && value == fmt.Sprint(verr.Value) {
		return name
	}
	return ""
}

func warningMessages(validation *ValidationResult) []string {
	messages := make([]string, 0, len(validation.Warnings))
	for _, w := range validation.Warnings {
		messages = append(messages, w.Error())
	}
	return messages
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// WriteConfig writes content to path atomically, creating parent directories.
// Unless force is set, an existing file is left untouched and ErrConfigExists returned.
// With force, an existing file is first copied to a backup whose path is returned.
func WriteConfig(ctx context.Context, path string, content []byte, force bool) (string, error) {
	exists := fileExists(path)
	if !force && exists {
		return "", fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirPermissions); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	var backupPath string
	if exists {
		var err error
		if backupPath, err = fsutil.Backup(ctx, path); err != nil {
			return "", err
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return backupPath, nil
}
