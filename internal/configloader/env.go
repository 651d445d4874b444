package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/drafty/pkg/config"
)

const envVarPrefix = "DRAFTY_"

// envBinding ties one DRAFTY_* variable to the config field it overrides.
type envBinding struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringField(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func intField(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("not an integer: %q", value)
		}
		set(cfg, n)
		return nil
	}
}

// envBindings is keyed by variable name without the prefix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = map[string]envBinding{
	"PREVIEW_LENGTH": {
		field:       "preview_length",
		description: "Maximum preview length (negative = unlimited)",
		apply:       intField(func(c *config.Config, n int) { c.PreviewLength = n }),
	},
	"QUOTE_LENGTH": {
		field:       "quote_length",
		description: "Maximum length of quoted content",
		apply:       intField(func(c *config.Config, n int) { c.QuoteLength = n }),
	},
	"MAX_ATTACHMENTS": {
		field:       "max_attachments",
		description: "Attachments kept in reply content",
		apply:       intField(func(c *config.Config, n int) { c.MaxAttachments = n }),
	},
	"COLOR": {
		field:       "color",
		description: "Terminal colors: auto, always, or never",
		apply:       stringField(func(c *config.Config, s string) { c.Color = config.ColorMode(s) }),
	},
	"OUTPUT": {
		field:       "output",
		description: "Output format: text, json, or cbor",
		apply:       stringField(func(c *config.Config, s string) { c.Output = config.OutputFormat(s) }),
	},
	"FLAVOR": {
		field:       "flavor",
		description: "Markdown flavor: commonmark or gfm",
		apply:       stringField(func(c *config.Config, s string) { c.Flavor = config.Flavor(s) }),
	},
	"LOG_LEVEL": {
		field:       "log_level",
		description: "Log level: debug, info, warn, or error",
		apply:       stringField(func(c *config.Config, s string) { c.LogLevel = s }),
	},
}

// LoadFromEnv applies every non-empty DRAFTY_* variable to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for suffix, binding := range envBindings {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := binding.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// GetEnvVarName returns the variable overriding field, or "" if there is none.
func GetEnvVarName(field string) string {
	for suffix, binding := range envBindings {
		if binding.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars maps each supported variable to its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envBindings))
	for suffix, binding := range envBindings {
		vars[envVarPrefix+suffix] = binding.description
	}
	return vars
}
