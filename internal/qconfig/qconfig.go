// Package qconfig loads the small set of knobs a host CLI might want to
// expose over this module's core behavior, without the core itself
// depending on flags or environment variables directly.
package qconfig

import "github.com/spf13/viper"

// Config controls optional, host-tunable behavior of the reading pipeline.
type Config struct {
	// FrontmatterDelimiter is the line that opens and closes a YAML
	// front-matter block. Defaults to "---".
	FrontmatterDelimiter string
	// DesugarPasses holds the "desugar_passes" list Load reads. Nothing in
	// the pipeline consults it: desugar.Run always runs every pass.
	DesugarPasses []string
	// StrictMode promotes probe warnings to fatal diagnostics.
	StrictMode bool
}

// Default returns the configuration used when a caller supplies none.
func Default() Config {
	return Config{
		FrontmatterDelimiter: "---",
		StrictMode:           false,
	}
}

// Load reads a Config from v, falling back to Default() for any key v
// doesn't set.
func Load(v *viper.Viper) Config {
	cfg := Default()
	if v == nil {
		return cfg
	}
	v.SetDefault("frontmatter_delimiter", cfg.FrontmatterDelimiter)
	v.SetDefault("strict_mode", cfg.StrictMode)

	cfg.FrontmatterDelimiter = v.GetString("frontmatter_delimiter")
	cfg.StrictMode = v.GetBool("strict_mode")
	if passes := v.GetStringSlice("desugar_passes"); len(passes) > 0 {
		cfg.DesugarPasses = passes
	}
	return cfg
}
