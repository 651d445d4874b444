package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/yaklabco/drafty/internal/logging"
	"github.com/yaklabco/drafty/internal/ui/pretty"
	"github.com/yaklabco/drafty/pkg/config"
	"github.com/yaklabco/drafty/pkg/drafty"
	"github.com/yaklabco/drafty/pkg/drafty/format"
	"github.com/yaklabco/drafty/pkg/fsutil"
)

// stdinName is the argument naming standard input.
const stdinName = "-"

// readInput reads the file named by the first argument, or stdin when there is none.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	name := stdinName
	if len(args) > 0 {
		name = args[0]
	}

	var (
		data []byte
		err  error
	)
	if name == stdinName {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, name, fmt.Errorf("read %s: %w", name, err)
	}

	if !utf8.Valid(data) {
		return nil, name, fmt.Errorf("%w: %s is not UTF-8 text", ErrInvalidInput, name)
	}
	return data, name, nil
}

// loadDocument reads the input and turns it into a document according to the input
// format. Markup is parsed; JSON is decoded, falling back to plain text when it is not
// a document.
func (s *session) loadDocument(cmd *cobra.Command, args []string) (*drafty.Document, error) {
	data, name, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	if s.cfg.Input != config.InputJSON {
		doc := drafty.Parse(strings.TrimRight(string(data), "\r\n"))
		s.logger.Debug("parsed markup",
			logging.FieldInput, name,
			logging.FieldLength, len(doc.Txt),
			logging.FieldStyles, len(doc.Fmt),
			logging.FieldEntities, len(doc.Ent),
		)
		return doc, nil
	}

	doc, err := drafty.Decode(jsonc.ToJSON(data))
	if err != nil {
		var formatErr *drafty.FormatError
		if !errors.As(err, &formatErr) {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		s.logger.Warn("input is not a document, using it as plain text",
			logging.FieldInput, name,
			logging.FieldError, err,
		)
		return drafty.FromPlainText(strings.TrimRight(string(data), "\r\n")), nil
	}
	return doc, nil
}

// writeDocument writes doc in the configured wire format, or calls text for the
// human-readable form.
func (s *session) writeDocument(doc *drafty.Document, text func() string) error {
	switch s.cfg.Output {
	case config.OutputJSON:
		data, err := drafty.Encode(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		data = append(data, '\n')
		return s.write(data)
	case config.OutputCBOR:
		data, err := drafty.EncodeCBOR(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		return s.write(data)
	default:
		return s.write([]byte(text()))
	}
}

// write sends data to stdout, or atomically to the --out-file path.
func (s *session) write(data []byte) error {
	if s.outFile != "" {
		written, err := fsutil.WriteIfChanged(s.ctx, s.outFile, data, 0)
		if err != nil {
			return fmt.Errorf("write %s: %w", s.outFile, err)
		}
		if !written {
			s.logger.Debug("output unchanged", logging.FieldPath, s.outFile)
			return nil
		}
		s.logger.Debug("wrote output", logging.FieldPath, s.outFile, logging.FieldBytes, len(data))
		return nil
	}

	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	s.logger.Debug("wrote output", logging.FieldOutput, s.cfg.Output, logging.FieldBytes, len(data))
	return nil
}

// render draws formatted output for the terminal, wrapped to the session width.
func (s *session) render(node *format.Node) string {
	text := pretty.Wrap(node.Render(pretty.NewDecorator(s.styles)), s.width)
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

// describe renders the style and entity tables of doc followed by a summary line.
func (s *session) describe(doc *drafty.Document) string {
	table := pretty.NewTableFormatter(s.styles, s.width).FormatDocument(doc)
	if table != "" {
		table += "\n"
	}
	return table + s.styles.FormatSummaryOneLine(doc)
}
