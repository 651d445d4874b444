// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Inline document styles
	Bold    lipgloss.Style
	Italic  lipgloss.Style
	Strike  lipgloss.Style
	Mono    lipgloss.Style
	Link    lipgloss.Style
	Mention lipgloss.Style
	Button  lipgloss.Style
	Image   lipgloss.Style
	Muted   lipgloss.Style
	Quote   lipgloss.Style

	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableKey       lipgloss.Style

	// Misc
	Dim lipgloss.Style

	renderer     *lipgloss.Renderer
	colorEnabled bool
}

// NewStylesFor creates styles rendering for writer. With color enabled on a writer
// that is not a terminal, ANSI 256 colors are forced so "always" works when piped.
func NewStylesFor(writer io.Writer, colorEnabled bool) *Styles {
	renderer := lipgloss.NewRenderer(writer)
	if !colorEnabled {
		renderer.SetColorProfile(termenv.Ascii)
		return newNoColorStyles(renderer)
	}
	if renderer.ColorProfile() == termenv.Ascii {
		renderer.SetColorProfile(termenv.ANSI256)
	}
	return newColorStyles(renderer)
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Bold:    r.NewStyle().Bold(true),
		Italic:  r.NewStyle().Italic(true),
		Strike:  r.NewStyle().Strikethrough(true),
		Mono:    r.NewStyle().Foreground(lipgloss.Color("13")),
		Link:    r.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		Mention: r.NewStyle().Bold(true),
		Button:  r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")),
		Image:   r.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Quote:   r.NewStyle().Foreground(lipgloss.Color("8")),

		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		TableHeader:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: r.NewStyle().Foreground(lipgloss.Color("8")),
		TableKey:       r.NewStyle().Foreground(lipgloss.Color("11")),

		Dim: r.NewStyle().Foreground(lipgloss.Color("8")),

		renderer:     r,
		colorEnabled: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles(r *lipgloss.Renderer) *Styles {
	plain := r.NewStyle()
	return &Styles{
		Bold:           plain,
		Italic:         plain,
		Strike:         plain,
		Mono:           plain,
		Link:           plain,
		Mention:        plain,
		Button:         plain,
		Image:          plain,
		Muted:          plain,
		Quote:          plain,
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableKey:       plain,
		Dim:            plain,
		renderer:       r,
	}
}

// ColorEnabled reports whether the styles emit colors.
func (s *Styles) ColorEnabled() bool {
	return s.colorEnabled
}

// Colored returns a style drawing text in the given color, or plain when colors are off.
func (s *Styles) Colored(base lipgloss.Style, color string) lipgloss.Style {
	if !s.colorEnabled || color == "" {
		return base
	}
	return base.Foreground(lipgloss.Color(color))
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
