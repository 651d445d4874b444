package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/drafty/internal/logging"
	"github.com/yaklabco/drafty/pkg/config"
	"github.com/yaklabco/drafty/pkg/parser/goldmark"
)

func newImportCommand(globals *globalFlags) *cobra.Command {
	var flavor string

	cmd := &cobra.Command{
		Use:   "import " + inputArgs,
		Short: "Import Markdown as a document",
		Long: `Convert Markdown into a Drafty document. Emphasis, strong emphasis, code,
strikethrough (gfm), links, images and block quotes are kept; other blocks become
lines of text.

Examples:
  drafty import -o json README.md
  drafty import --flavor commonmark notes.md`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		overrides := &config.Config{}
		if cmd.Flags().Changed("flavor") {
			overrides.Flavor = config.Flavor(flavor)
		}
		s, err := newSession(cmd, globals, overrides)
		if err != nil {
			return err
		}

		data, name, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		parser := goldmark.New(string(s.cfg.Flavor))
		doc, err := parser.Parse(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("import %s: %w", name, err)
		}
		s.logger.Debug("imported markdown",
			logging.FieldInput, name,
			logging.FieldFlavor, parser.Flavor(),
			logging.FieldStyles, len(doc.Fmt),
			logging.FieldEntities, len(doc.Ent),
		)

		return s.writeDocument(doc, func() string { return s.describe(doc) })
	}

	cmd.Flags().StringVar(&flavor, "flavor", string(config.FlavorGFM), "markdown flavor: commonmark or gfm")
	return cmd
}
