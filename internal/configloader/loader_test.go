package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/drafty/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.PreviewLength != config.DefaultPreviewLength {
		t.Errorf("expected preview_length %d, got %d", config.DefaultPreviewLength, result.Config.PreviewLength)
	}
	if result.Config.Output != config.OutputText {
		t.Errorf("expected output %q, got %q", config.OutputText, result.Config.Output)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".drafty.yml"), `
preview_length: 40
color: never
palette:
  - "#112233"
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.PreviewLength != 40 {
		t.Errorf("expected preview_length 40, got %d", result.Config.PreviewLength)
	}
	if result.Config.Color != config.ColorNever {
		t.Errorf("expected color %q, got %q", config.ColorNever, result.Config.Color)
	}
	if result.Config.QuoteLength != config.DefaultQuoteLength {
		t.Errorf("expected default quote_length to survive, got %d", result.Config.QuoteLength)
	}
	if len(result.Config.Palette) != 1 || result.Config.Palette[0] != "#112233" {
		t.Errorf("unexpected palette %v", result.Config.Palette)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, ".drafty.yaml"), "quote_length: 12\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.QuoteLength != 12 {
		t.Errorf("expected quote_length 12, got %d", result.Config.QuoteLength)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".drafty.yml"), "output: json\nmax_attachments: 5\n")
	customPath := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, customPath, "output: cbor\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Output != config.OutputCBOR {
		t.Errorf("expected output %q, got %q", config.OutputCBOR, result.Config.Output)
	}
	if result.Config.MaxAttachments != 5 {
		t.Errorf("expected project max_attachments 5, got %d", result.Config.MaxAttachments)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected explicit config loaded last, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".drafty.yml"), "preview_length: 40\nflavor: commonmark\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		PreviewLength: 20,
		Input:         config.InputJSON,
		Width:         100,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.PreviewLength != 20 {
		t.Errorf("expected preview_length 20 (CLI override), got %d", result.Config.PreviewLength)
	}
	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("expected flavor from project config, got %q", result.Config.Flavor)
	}
	if result.Config.Input != config.InputJSON {
		t.Errorf("expected input %q, got %q", config.InputJSON, result.Config.Input)
	}
	if result.Config.Width != 100 {
		t.Errorf("expected width 100, got %d", result.Config.Width)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".drafty.yml"), "preview_length: 40\n")

	t.Setenv("DRAFTY_PREVIEW_LENGTH", "25")
	t.Setenv("DRAFTY_OUTPUT", "json")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.PreviewLength != 25 {
		t.Errorf("expected preview_length 25 from env, got %d", result.Config.PreviewLength)
	}
	if result.Config.Output != config.OutputJSON {
		t.Errorf("expected output json from env, got %q", result.Config.Output)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("DRAFTY_QUOTE_LENGTH", "many")

	opts := isolatedOptions(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "DRAFTY_QUOTE_LENGTH") {
		t.Fatalf("expected env error naming DRAFTY_QUOTE_LENGTH, got %v", err)
	}
}

func TestLoad_InvalidEnvValueNamesVariable(t *testing.T) {
	t.Setenv("DRAFTY_COLOR", "rainbow")

	opts := isolatedOptions(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.FilePath != "DRAFTY_COLOR" || verr.Field != "color" {
		t.Errorf("unexpected source %q field %q", verr.FilePath, verr.Field)
	}
}

func TestLoad_InvalidCLIValueHasNoSource(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.CLIConfig = &config.Config{Output: "xml"}

	_, err := Load(context.Background(), opts)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.FilePath != "" {
		t.Errorf("expected no source, got %q", verr.FilePath)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".drafty.yml")
	writeFile(t, configPath, "preview_length: 1\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("expected validation error for preview_length 1")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if validationErr.Field != "preview_length" {
		t.Errorf("expected field preview_length, got %q", validationErr.Field)
	}
	if validationErr.FilePath != configPath {
		t.Errorf("expected file path %q, got %q", configPath, validationErr.FilePath)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".drafty.yml"), "palette: [\n")

	if _, err := Load(context.Background(), isolatedOptions(tmpDir)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_DuplicatePaletteWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".drafty.yml"), `
palette:
  - "#AABBCC"
  - "#aabbcc"
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate") && strings.Contains(w, "palette[1]") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about duplicate color, got warnings: %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolatedOptions(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "drafty", "config.yaml")
	backupPath, err := WriteConfig(ctx, path, []byte("output: json\n"), false)
	if err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if backupPath != "" {
		t.Errorf("expected no backup for a new file, got %q", backupPath)
	}

	_, err = WriteConfig(ctx, path, []byte("output: cbor\n"), false)
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}

	backupPath, err = WriteConfig(ctx, path, []byte("output: cbor\n"), true)
	if err != nil {
		t.Fatalf("WriteConfig(force) error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "output: cbor\n" {
		t.Errorf("expected overwritten content, got %q", content)
	}

	backup, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "output: json\n" {
		t.Errorf("expected previous content in backup, got %q", backup)
	}
}
