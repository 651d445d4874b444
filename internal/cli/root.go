// Package cli provides the Cobra command structure for drafty.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	// ErrInvalidInput is returned when input cannot be read as a document.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidUsage is returned for flag values the command cannot act on.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig is returned when configuration cannot be loaded.
	ErrConfig = errors.New("failed to load configuration")
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	output     string
	input      string
	width      int
	outFile    string
}

// NewRootCommand creates the root drafty command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "drafty",
		Short: "Parse, format and convert Drafty chat markup",
		Long: `drafty works with Drafty, the compact rich text format used in chat messages.

It parses plain text markup such as *bold*, _italic_, ~strike~ and ` + "`code`" + `,
detects links, @mentions and #hashtags, and renders documents for the terminal,
as message previews, as reply quotes or as Markdown. Documents are read and
written in their JSON or CBOR wire form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&globals.debug, "debug", false, "enable debug logging")
	flags.StringVar(&globals.configPath, "config", "", "path to config file")
	flags.StringVar(&globals.color, "color", "auto", "colorize output: auto, always, never")
	flags.StringVarP(&globals.output, "output", "o", "text", "output format: text, json, cbor")
	flags.StringVarP(&globals.input, "input", "i", "text", "input format: text (markup) or json (document)")
	flags.IntVar(&globals.width, "width", 0, "wrap text output at this many columns (0 = terminal width)")
	flags.StringVar(&globals.outFile, "out-file", "", "write output to this file instead of stdout")

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand(globals))
	rootCmd.AddCommand(newRenderCommand(globals))
	rootCmd.AddCommand(newPreviewCommand(globals))
	rootCmd.AddCommand(newReplyCommand(globals))
	rootCmd.AddCommand(newForwardCommand(globals))
	rootCmd.AddCommand(newQuoteCommand(globals))
	rootCmd.AddCommand(newMarkdownCommand(globals))
	rootCmd.AddCommand(newImportCommand(globals))
	rootCmd.AddCommand(newTreeCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
