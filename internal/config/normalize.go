package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRename()
	c.normalizeAnalysis()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name     string
		value    *string
		fallback string
	}{
		{"paths.mapping_file", &c.Paths.MappingFile, defaultMappingFile},
		{"paths.analysis_json", &c.Paths.AnalysisJSON, defaultAnalysisJSON},
		{"paths.analysis_xlsx", &c.Paths.AnalysisXLSX, defaultAnalysisXLSX},
	}
	for _, field := range fields {
		value := strings.TrimSpace(*field.value)
		if value == "" {
			value = field.fallback
		}
		expanded, err := expandPath(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}

	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = ""
		return nil
	}
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRename() {
	c.Rename.Mode = strings.ToLower(strings.TrimSpace(c.Rename.Mode))
	if c.Rename.Mode == "" {
		c.Rename.Mode = defaultRenameMode
	}
}

func (c *Config) normalizeAnalysis() {
	prefixes := make([]string, 0, len(c.Analysis.Prefixes))
	for _, prefix := range c.Analysis.Prefixes {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			prefixes = append(prefixes, prefix)
		}
	}
	c.Analysis.Prefixes = prefixes
	c.Analysis.OtherCategory = strings.TrimSpace(c.Analysis.OtherCategory)
	if c.Analysis.OtherCategory == "" {
		c.Analysis.OtherCategory = defaultOtherCategory
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
