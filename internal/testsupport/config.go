package testsupport

import (
	"path/filepath"
	"testing"

	"wemtool/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose output files live in a per-test temp
// directory. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MappingFile = filepath.Join(base, "wem_mapping.json")
	cfg.Paths.AnalysisJSON = filepath.Join(base, "ps4_wem_analysis.json")
	cfg.Paths.AnalysisXLSX = filepath.Join(base, "ps4_wem_analysis.xlsx")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithPrefixes overrides the analyzer prefix list.
func WithPrefixes(prefixes ...string) ConfigOption {
	return func(c *config.Config) {
		c.Analysis.Prefixes = prefixes
	}
}
