package configloader

import (
	"slices"

	"github.com/yaklabco/drafty/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.PreviewLength != 0 {
		result.PreviewLength = override.PreviewLength
	}
	if override.QuoteLength != 0 {
		result.QuoteLength = override.QuoteLength
	}
	if override.MaxAttachments != 0 {
		result.MaxAttachments = override.MaxAttachments
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Input != "" {
		result.Input = override.Input
	}
	if override.Width != 0 {
		result.Width = override.Width
	}

	if override.Palette != nil {
		result.Palette = slices.Clone(override.Palette)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
