package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a commented minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(NewConfig())
	}
	if opts.Full {
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Maximum preview length in UTF-16 units (negative = unlimited)
preview_length: 80

# Maximum length of quoted content in replies
# quote_length: 30

# Attachments kept when building reply content
# max_attachments: 3

# Terminal colors: auto, always, or never
# color: auto

# Output format: text, json, or cbor
# output: text

# Markdown flavor for import: commonmark or gfm
# flavor: gfm

# Hex colors used to tint mentions
# palette:
#   - "#e57373"
#   - "#64b5f6"

# Log level: debug, info, warn, or error
# log_level: info
`)

	return buf.Bytes()
}

// templateToJSON renders the configuration with its YAML field names as JSON.
func templateToJSON(cfg *Config) ([]byte, error) {
	yamlBytes, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := yaml.Unmarshal(yamlBytes, &fields); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# drafty configuration
# See: https://github.com/yaklabco/drafty`
}
