package cli

import (
	"fmt"
	"math"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/yaklabco/drafty/pkg/config"
	"github.com/yaklabco/drafty/pkg/drafty"
	"github.com/yaklabco/drafty/pkg/drafty/format"
)

const inputArgs = "[file]"

// unlimited maps the "zero or less means no limit" length setting onto transforms.
func unlimited(length int) int {
	if length <= 0 {
		return math.MaxInt
	}
	return length
}

// documentCommand builds a command reading one document and handing it to run.
// overrides carries command flags that map onto configuration.
func documentCommand(
	globals *globalFlags,
	cmd *cobra.Command,
	overrides func() *config.Config,
	run func(cmd *cobra.Command, s *session, doc *drafty.Document) error,
) *cobra.Command {
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		if overrides != nil {
			cfg = overrides()
		}
		s, err := newSession(cmd, globals, cfg)
		if err != nil {
			return err
		}
		doc, err := s.loadDocument(cmd, args)
		if err != nil {
			return err
		}
		return run(cmd, s, doc)
	}
	return cmd
}

func newParseCommand(globals *globalFlags) *cobra.Command {
	return documentCommand(globals, &cobra.Command{
		Use:   "parse " + inputArgs,
		Short: "Parse markup into a document",
		Long: `Parse plain text markup into a Drafty document.

With text output the styles and entities are listed as tables. Use --output json
or --output cbor for the wire form.

Examples:
  echo '*bold* and @alice' | drafty parse
  drafty parse -o json message.txt`,
	}, nil, func(_ *cobra.Command, s *session, doc *drafty.Document) error {
		return s.writeDocument(doc, func() string { return s.describe(doc) })
	})
}

func newRenderCommand(globals *globalFlags) *cobra.Command {
	return documentCommand(globals, &cobra.Command{
		Use:   "render " + inputArgs,
		Short: "Render a document for the terminal",
		Long: `Render a document in full with terminal styling: bold, italic, links,
colored mentions, buttons, media placeholders and quotes.

Examples:
  drafty render -i json message.json
  echo '_hello_ https://example.com' | drafty render --color always`,
	}, nil, func(_ *cobra.Command, s *session, doc *drafty.Document) error {
		quote, err := format.NewQuote(s.cfg.QuoteLength, s.cfg.Palette)
		if err != nil {
			return fmt.Errorf("%w: quote length: %w", ErrInvalidUsage, err)
		}
		full := format.NewFull(s.cfg.Palette).WithQuote(quote)
		return s.writeDocument(doc, func() string { return s.render(full.Format(doc)) })
	})
}

func newPreviewCommand(globals *globalFlags) *cobra.Command {
	var length int

	var cmd *cobra.Command
	cmd = documentCommand(globals, &cobra.Command{
		Use:   "preview " + inputArgs,
		Short: "Render a one-line preview of a document",
		Long: `Render a short single-line preview of a document, as shown in chat lists
and notifications. Text output is the preview itself; json and cbor output is the
shortened document with large entity data removed.

Examples:
  drafty preview --length 40 message.txt
  drafty preview -i json -o json message.json`,
	}, func() *config.Config {
		cfg := &config.Config{}
		if cmd.Flags().Changed("length") {
			cfg.PreviewLength = length
		}
		return cfg
	}, func(_ *cobra.Command, s *session, doc *drafty.Document) error {
		if s.cfg.Output != config.OutputText {
			return s.writeDocument(doc.Preview(unlimited(s.cfg.PreviewLength)), nil)
		}
		preview, err := format.NewPreview(s.cfg.PreviewLength)
		if err != nil {
			return fmt.Errorf("%w: preview length: %w", ErrInvalidUsage, err)
		}
		result := preview.Format(doc)
		return s.writeDocument(doc, func() string { return s.render(result.Node) })
	})
	cmd.Flags().IntVarP(&length, "length", "l", config.DefaultPreviewLength,
		"maximum preview length in UTF-16 units (0 = unlimited)")
	return cmd
}

func newReplyCommand(globals *globalFlags) *cobra.Command {
	var (
		length         int
		maxAttachments int
	)

	var cmd *cobra.Command
	cmd = documentCommand(globals, &cobra.Command{
		Use:   "reply " + inputArgs,
		Short: "Show the content quoted when replying to a document",
		Long: `Show what a reply would quote from a document: the start of the text with
links and mentions kept, and at most --max-attachments attachments moved to the end.

Examples:
  drafty reply message.txt
  drafty reply -i json -o json --length 20 message.json`,
	}, func() *config.Config {
		cfg := &config.Config{}
		if cmd.Flags().Changed("length") {
			cfg.QuoteLength = length
		}
		if cmd.Flags().Changed("max-attachments") {
			cfg.MaxAttachments = maxAttachments
		}
		return cfg
	}, func(_ *cobra.Command, s *session, doc *drafty.Document) error {
		reply := doc.ReplyContent(unlimited(s.cfg.QuoteLength), s.cfg.MaxAttachments)
		if s.cfg.Output != config.OutputText {
			return s.writeDocument(reply, nil)
		}
		quote, err := format.NewQuote(s.cfg.QuoteLength, s.cfg.Palette)
		if err != nil {
			return fmt.Errorf("%w: quote length: %w", ErrInvalidUsage, err)
		}
		return s.writeDocument(reply, func() string { return s.render(quote.Format(reply).Node) })
	})
	cmd.Flags().IntVarP(&length, "length", "l", config.DefaultQuoteLength,
		"maximum quoted length in UTF-16 units")
	cmd.Flags().IntVar(&maxAttachments, "max-attachments", config.DefaultMaxAttachments,
		"maximum number of attachments kept in the quote")
	return cmd
}

func newForwardCommand(globals *globalFlags) *cobra.Command {
	return documentCommand(globals, &cobra.Command{
		Use:   "forward " + inputArgs,
		Short: "Show the content of a document prepared for forwarding",
		Long: `Strip the forwarding header and any nested quote from a document,
leaving the content to forward.`,
	}, nil, func(_ *cobra.Command, s *session, doc *drafty.Document) error {
		forwarded := doc.ForwardedContent()
		full := format.NewFull(s.cfg.Palette)
		return s.writeDocument(forwarded, func() string { return s.render(full.Format(forwarded)) })
	})
}

func newQuoteCommand(globals *globalFlags) *cobra.Command {
	var (
		header string
		uid    string
	)

	cmd := documentCommand(globals, &cobra.Command{
		Use:   "quote " + inputArgs,
		Short: "Wrap the reply content of a document in a quote",
		Long: `Build the quote block a reply starts with: a mention of the original
author followed by the reply content of the document.

Examples:
  drafty quote --header alice --uid usr123 message.txt
  drafty quote -i json -o json --header alice message.json`,
	}, nil, func(cmd *cobra.Command, s *session, doc *drafty.Document) error {
		if header == "" {
			return fmt.Errorf("%w: --header is required", ErrInvalidUsage)
		}
		body := doc.ReplyContent(unlimited(s.cfg.QuoteLength), s.cfg.MaxAttachments)
		quoted := drafty.Quote(header, uid, body)
		quote, err := format.NewQuote(s.cfg.QuoteLength, s.cfg.Palette)
		if err != nil {
			return fmt.Errorf("%w: quote length: %w", ErrInvalidUsage, err)
		}
		full := format.NewFull(s.cfg.Palette).WithQuote(quote)
		return s.writeDocument(quoted, func() string { return s.render(full.Format(quoted)) })
	})
	cmd.Flags().StringVar(&header, "header", "", "name shown at the top of the quote (required)")
	cmd.Flags().StringVar(&uid, "uid", "", "user ID the header mentions")
	return cmd
}

func newMarkdownCommand(globals *globalFlags) *cobra.Command {
	var plainLinks bool

	cmd := documentCommand(globals, &cobra.Command{
		Use:   "markdown " + inputArgs,
		Short: "Convert a document to Markdown",
		Long: `Convert a document to Markdown. Output is always Markdown text.

Examples:
  drafty markdown -i json message.json
  echo '*bold* https://example.com' | drafty markdown --plain-links`,
	}, nil, func(_ *cobra.Command, s *session, doc *drafty.Document) error {
		text := doc.ToMarkdown(plainLinks)
		if text != "" {
			text += "\n"
		}
		return s.write([]byte(text))
	})
	cmd.Flags().BoolVar(&plainLinks, "plain-links", false, "write links as their text only")
	return cmd
}

func newTreeCommand(globals *globalFlags) *cobra.Command {
	return documentCommand(globals, &cobra.Command{
		Use:   "tree " + inputArgs,
		Short: "Dump the span tree of a document",
		Long:  `Dump the tree of styled spans a document is formatted from. Useful for debugging.`,
	}, nil, func(_ *cobra.Command, s *session, doc *drafty.Document) error {
		dump := litter.Options{
			HidePrivateFields: true,
			HideZeroValues:    true,
			StripPackageNames: true,
		}.Sdump(doc.Tree())
		return s.write([]byte(dump + "\n"))
	})
}
