package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/drafty/internal/configloader"
	"github.com/yaklabco/drafty/internal/logging"
	"github.com/yaklabco/drafty/internal/ui/pretty"
	"github.com/yaklabco/drafty/pkg/config"
)

// session is the resolved state a document command runs with.
type session struct {
	ctx     context.Context
	outFile string

	cfg    *config.Config
	logger *log.Logger
	styles *pretty.Styles
	out    io.Writer
	width  int
}

// newSession loads configuration with the changed flags layered on top, then sets up
// logging and output styles for cmd.
func newSession(cmd *cobra.Command, globals *globalFlags, overrides *config.Config) (*session, error) {
	cliCfg := cliConfig(cmd, globals, overrides)

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		ExplicitPath: globals.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}
	cfg := result.Config

	level := cfg.LogLevel
	if globals.debug {
		level = "debug"
	}
	ctx := logging.WithLogger(cmd.Context(), logging.NewWithWriter(cmd.ErrOrStderr(), level))
	ctx = logging.WithFields(ctx, logging.FieldCommand, cmd.Name())
	cmd.SetContext(ctx)
	logger := logging.FromContext(ctx)

	logger.Debug("configuration loaded",
		logging.FieldPaths, result.LoadedFrom,
		logging.FieldOutput, cfg.Output,
		logging.FieldColor, cfg.Color,
	)
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	out := cmd.OutOrStdout()
	return &session{
		ctx:     ctx,
		outFile: globals.outFile,
		cfg:     cfg,
		logger:  logger,
		styles:  pretty.NewStylesFor(out, pretty.IsColorEnabled(string(cfg.Color), out)),
		out:     out,
		width:   outputWidth(cfg.Width, out),
	}, nil
}

// cliConfig collects the flags the user actually set so they override lower layers.
func cliConfig(cmd *cobra.Command, globals *globalFlags, overrides *config.Config) *config.Config {
	cfg := &config.Config{}
	if overrides != nil {
		cfg = overrides.Clone()
	}

	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color = config.ColorMode(globals.color)
	}
	if flags.Changed("output") {
		cfg.Output = config.OutputFormat(globals.output)
	}
	if flags.Changed("input") {
		cfg.Input = config.InputFormat(globals.input)
	}
	if flags.Changed("width") {
		cfg.Width = globals.width
	}
	return cfg
}

// outputWidth returns the configured width, else the terminal width, else 0 (no wrap).
func outputWidth(configured int, out io.Writer) int {
	if configured > 0 {
		return configured
	}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
