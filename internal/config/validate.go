package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRename(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRename() error {
	switch c.Rename.Mode {
	case RenameModeCopy, RenameModeMove:
		return nil
	default:
		return fmt.Errorf("rename.mode: unsupported value %q (expected copy or move)", c.Rename.Mode)
	}
}

func (c *Config) validateAnalysis() error {
	if len(c.Analysis.Prefixes) == 0 {
		return errors.New("analysis.prefixes must contain at least one prefix")
	}
	seen := make(map[string]struct{}, len(c.Analysis.Prefixes))
	for _, prefix := range c.Analysis.Prefixes {
		key := strings.ToLower(prefix)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("analysis.prefixes: duplicate prefix %q", prefix)
		}
		seen[key] = struct{}{}
		if strings.Trim(prefix, "_- .") == "" {
			return fmt.Errorf("analysis.prefixes: prefix %q has no name", prefix)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
