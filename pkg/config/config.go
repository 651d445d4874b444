// Package config defines core configuration types for drafty.
// These types are pure data structures with no dependency on the loader.
package config

// ColorMode controls terminal styling of rendered output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// OutputFormat specifies how documents are written by the CLI.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputCBOR OutputFormat = "cbor"
	OutputText OutputFormat = "text"
)

// InputFormat specifies how the CLI interprets its input.
type InputFormat string

const (
	// InputText is plain text with inline markup, parsed by drafty.Parse.
	InputText InputFormat = "text"
	// InputJSON is a serialized drafty document.
	InputJSON InputFormat = "json"
)

// Flavor specifies the Markdown flavor used by the importer.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Default limits.
const (
	DefaultPreviewLength  = 80
	DefaultQuoteLength    = 30
	DefaultMaxAttachments = 3
	DefaultLogLevel       = "info"
)

// Config is the root configuration structure for drafty.
type Config struct {
	// PreviewLength is the maximum preview length in UTF-16 units.
	// A negative value disables truncation.
	PreviewLength int `mapstructure:"preview_length" yaml:"preview_length"`

	// QuoteLength is the maximum length of quoted content in replies.
	QuoteLength int `mapstructure:"quote_length" yaml:"quote_length"`

	// MaxAttachments caps attachments kept in reply content.
	MaxAttachments int `mapstructure:"max_attachments" yaml:"max_attachments"`

	// Color is the terminal color mode ("auto", "always" or "never").
	Color ColorMode `mapstructure:"color" yaml:"color"`

	// Output is the output format ("json", "cbor" or "text").
	Output OutputFormat `mapstructure:"output" yaml:"output"`

	// Flavor is the Markdown flavor for the importer.
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Palette lists hex colors used to tint mentions. Empty uses the built-in palette.
	Palette []string `mapstructure:"palette" yaml:"palette,omitempty"`

	// LogLevel is the logger level ("debug", "info", "warn" or "error").
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Input is the input format.
	Input InputFormat `mapstructure:"-" yaml:"-"`

	// Width is the terminal width used when rendering text output.
	Width int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		PreviewLength:  DefaultPreviewLength,
		QuoteLength:    DefaultQuoteLength,
		MaxAttachments: DefaultMaxAttachments,
		Color:          ColorAuto,
		Output:         OutputText,
		Flavor:         FlavorGFM,
		LogLevel:       DefaultLogLevel,
		Input:          InputText,
	}
}
