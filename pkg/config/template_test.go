package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/drafty/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses to defaults subset", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# drafty configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultPreviewLength, cfg.PreviewLength)
		assert.Zero(t, cfg.QuoteLength)
	})

	t.Run("full template carries every default", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultQuoteLength, cfg.QuoteLength)
		assert.Equal(t, config.DefaultMaxAttachments, cfg.MaxAttachments)
		assert.Equal(t, config.OutputText, cfg.Output)
	})

	t.Run("json template uses config keys", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.InDelta(t, float64(config.DefaultPreviewLength), fields["preview_length"], 0)
		assert.Equal(t, "auto", fields["color"])
	})
}
