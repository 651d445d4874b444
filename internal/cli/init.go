package cli

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/drafty/internal/configloader"
	"github.com/yaklabco/drafty/internal/logging"
	"github.com/yaklabco/drafty/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new drafty configuration file",
		Long: `Create a new .drafty.yml configuration file in the current directory
with sensible defaults.

Examples:
  drafty init                       Create minimal .drafty.yml
  drafty init --full                Create a config listing every option
  drafty init --format json         Create .drafty.json instead
  drafty init --file custom.yml     Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate a template with every option")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Template format: yaml or json")
	cmd.Flags().StringVar(&flags.output, "file", "", "Output file path (default: .drafty.yml or .drafty.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), config.DefaultLogLevel)

	// Validate format
	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".drafty.json"
		} else {
			outputPath = ".drafty.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if flags.full && flags.format == "yaml" {
		content = append(content, envOverrides()...)
	}

	backupPath, err := configloader.WriteConfig(cmd.Context(), absPath, content, flags.force)
	if err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		return fmt.Errorf("write config: %w", err)
	}

	if backupPath != "" {
		logger.Warn("overwrote existing file", logging.FieldPath, outputPath, logging.FieldBackup, backupPath)
	}
	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")

	return nil
}

// envOverrides lists the DRAFTY_* variables as a trailing YAML comment block.
func envOverrides() []byte {
	vars := configloader.ListEnvVars()

	var b strings.Builder
	b.WriteString("\n# Environment overrides:\n")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "#   %-24s %s\n", name, vars[name])
	}
	return []byte(b.String())
}
