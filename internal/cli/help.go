package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/dlclark/regexp2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/drafty/internal/ui/pretty"
)

// helpStyles colors command help.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(writer io.Writer, colorEnabled bool) *helpStyles {
	styles := pretty.NewStylesFor(writer, colorEnabled)
	return &helpStyles{
		command: styles.Link.UnsetUnderline().Bold(true),
		heading: styles.TableKey.Bold(true),
		flag:    styles.Link.UnsetUnderline(),
		dim:     styles.Dim,
	}
}

// flagLine splits a pflag usage line into indent, flag names, value type, gap and
// description.
var flagLine = regexp2.MustCompile(`^(\s*)((?:-\w, )?--[\w-]+)( \w+)?(\s{2,})(.*)$`, regexp2.None)

const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailing . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ .CommandPath }} [command] --help" for more information about a command.
{{- end}}
`

// applyHelp installs styled help and usage output on root and its subcommands.
// Color follows the --color flag of the command being described.
func applyHelp(root *cobra.Command) {
	render := func(command *cobra.Command) error {
		out := command.OutOrStdout()
		mode := "auto"
		if flag := command.Flags().Lookup("color"); flag != nil {
			mode = flag.Value.String()
		}
		styles := newHelpStyles(out, pretty.IsColorEnabled(mode, out))

		tmpl, err := template.New("help").Funcs(styles.funcs()).Parse(helpTemplate)
		if err != nil {
			return fmt.Errorf("parse help template: %w", err)
		}
		if err := tmpl.Execute(out, command); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	root.SetUsageFunc(render)
	root.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *helpStyles) funcs() template.FuncMap {
	return template.FuncMap{
		"command":      h.command.Render,
		"heading":      h.heading.Render,
		"flags":        h.flagUsages,
		"rpad":         rpad,
		"trimTrailing": trimTrailing,
	}
}

// flagUsages styles the flag names and value types of a flag set.
func (h *helpStyles) flagUsages(flags *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		m, err := flagLine.FindStringMatch(line)
		if err != nil || m == nil {
			continue
		}
		groups := m.Groups()
		lines[i] = groups[1].String() +
			h.flag.Render(groups[2].String()) +
			h.dim.Render(groups[3].String()) +
			groups[4].String() +
			groups[5].String()
	}
	return strings.Join(lines, "\n")
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailing(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
