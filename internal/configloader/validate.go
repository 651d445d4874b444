package configloader

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/yaklabco/drafty/internal/logging"
	"github.com/yaklabco/drafty/pkg/config"
)

// hexColorLength is the length of a "#rrggbb" color.
const hexColorLength = 7

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "palette[2]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file or environment variable the value came from (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownOutputs = map[config.OutputFormat]bool{
	config.OutputJSON: true,
	config.OutputCBOR: true,
	config.OutputText: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownInputs = map[config.InputFormat]bool{
	config.InputText: true,
	config.InputJSON: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	// A single unit leaves no room for content next to the ellipsis.
	if cfg.PreviewLength == 1 {
		fail("preview_length", cfg.PreviewLength, "preview_length must not be 1")
	}
	if cfg.QuoteLength == 1 {
		fail("quote_length", cfg.QuoteLength, "quote_length must not be 1")
	}
	if cfg.MaxAttachments < 0 {
		fail("max_attachments", cfg.MaxAttachments, "max_attachments must be >= 0")
	}
	if cfg.Width < 0 {
		fail("width", cfg.Width, "width must be >= 0 (0 means terminal width)")
	}

	if cfg.Color != "" && !IsValidColorMode(cfg.Color) {
		fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Output != "" && !IsValidOutput(cfg.Output) {
		fail("output", cfg.Output, "invalid output %q; must be one of: text, json, cbor", cfg.Output)
	}
	if cfg.Input != "" && !knownInputs[cfg.Input] {
		fail("input", cfg.Input, "invalid input %q; must be one of: text, json", cfg.Input)
	}
	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			fail("log_level", cfg.LogLevel, "invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
		}
	}

	validatePalette(cfg, result)

	return result
}

// validatePalette checks that palette entries are "#rrggbb" colors.
func validatePalette(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]bool, len(cfg.Palette))
	for i, color := range cfg.Palette {
		field := fmt.Sprintf("palette[%d]", i)
		if !IsHexColor(color) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   color,
				Message: fmt.Sprintf("invalid color %q; expected #rrggbb", color),
			})
			continue
		}
		key := strings.ToLower(color)
		if seen[key] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   color,
				Message: fmt.Sprintf("duplicate color %q", color),
			})
		}
		seen[key] = true
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsHexColor reports whether s has the form "#rrggbb".
func IsHexColor(s string) bool {
	if len(s) != hexColorLength {
		return false
	}
	// colorful.Hex stops at the first non-hex digit, so the round trip catches trailing junk.
	c, err := colorful.Hex(s)
	return err == nil && strings.EqualFold(c.Hex(), s)
}

// IsValidOutput returns true if the output format is valid.
func IsValidOutput(f config.OutputFormat) bool {
	return knownOutputs[f]
}

// IsValidColorMode returns true if the color mode is valid.
func IsValidColorMode(m config.ColorMode) bool {
	return knownColorModes[m]
}
