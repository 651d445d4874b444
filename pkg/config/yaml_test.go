package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/drafty/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.DefaultPreviewLength, cfg.PreviewLength)
	assert.Equal(t, config.DefaultQuoteLength, cfg.QuoteLength)
	assert.Equal(t, config.DefaultMaxAttachments, cfg.MaxAttachments)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, config.InputText, cfg.Input)
	assert.Empty(t, cfg.Palette)
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Palette slice", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{Palette: []string{"#ff0000", "#00ff00"}}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Palette, clone.Palette)

		clone.Palette[0] = "#000000"
		assert.Equal(t, "#ff0000", original.Palette[0])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Input = config.InputJSON
		original.Width = 120

		clone := original.Clone()
		assert.Equal(t, original, clone)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "preview_length: 80")
		assert.Contains(t, string(data), "flavor: gfm")
		assert.Contains(t, string(data), "output: text")
		assert.NotContains(t, string(data), "palette")
		assert.NotContains(t, string(data), "width")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()
		data, err := config.NewConfig().ToYAMLWithHeader("# drafty")
		require.NoError(t, err)
		assert.Regexp(t, `^# drafty\n\npreview_length`, string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`
preview_length: 40
color: never
palette:
  - "#112233"
`))
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.PreviewLength)
		assert.Equal(t, config.ColorNever, cfg.Color)
		assert.Equal(t, []string{"#112233"}, cfg.Palette)
		assert.Zero(t, cfg.QuoteLength)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("preview_length: ["))
		require.Error(t, err)
	})

	t.Run("round trips", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Palette = []string{"#abcdef"}
		original.Input = ""

		data, err := original.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})
}
