package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"prestige/internal/table"
	"prestige/internal/textutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalogs(); err != nil {
		return err
	}
	if err := c.validateAwards(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalogs() error {
	if len(c.Catalogs) == 0 {
		return errors.New("at least one [[catalogs]] entry is required")
	}
	seen := make(map[string]string, len(c.Catalogs))
	for i, cat := range c.Catalogs {
		if cat.Platform == "" {
			return fmt.Errorf("catalogs[%d].platform must be set", i)
		}
		// Output file names are built from the sanitized platform.
		key := textutil.SanitizeToken(cat.Platform)
		if prior, dup := seen[key]; dup {
			if strings.EqualFold(prior, cat.Platform) {
				return fmt.Errorf("catalogs[%d]: duplicate platform %q", i, cat.Platform)
			}
			return fmt.Errorf("catalogs[%d]: platform %q collides with %q in output file names", i, cat.Platform, prior)
		}
		seen[key] = cat.Platform
		if cat.Path == "" {
			return fmt.Errorf("catalogs[%d].path must be set", i)
		}
		if err := validateSeparator(cat.Separator); err != nil {
			return fmt.Errorf("catalogs[%d].separator: %w", i, err)
		}
		if !table.ValidEncoding(cat.Encoding) {
			return fmt.Errorf("catalogs[%d].encoding: unsupported value %q", i, cat.Encoding)
		}
	}
	return nil
}

func (c *Config) validateAwards() error {
	if len(c.Awards) == 0 {
		return errors.New("at least one [[awards]] entry is required")
	}
	seen := make(map[string]struct{}, len(c.Awards))
	for i, source := range c.Awards {
		if err := source.Spec().Validate(); err != nil {
			return fmt.Errorf("awards[%d]: %w", i, err)
		}
		if _, dup := seen[source.ID]; dup {
			return fmt.Errorf("awards[%d]: duplicate source id %q", i, source.ID)
		}
		seen[source.ID] = struct{}{}
		if source.Path == "" {
			return fmt.Errorf("awards[%d].path must be set", i)
		}
		if err := validateSeparator(source.Separator); err != nil {
			return fmt.Errorf("awards[%d].separator: %w", i, err)
		}
		if !table.ValidEncoding(source.Encoding) {
			return fmt.Errorf("awards[%d].encoding: unsupported value %q", i, source.Encoding)
		}
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.Workers < 0 {
		return errors.New("analysis.workers must be zero or positive")
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

func validateSeparator(value string) error {
	switch value {
	case "", `\t`, "tab":
		return nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return fmt.Errorf("must be a single character, got %q", value)
	}
	switch value {
	case "\"", "\r", "\n":
		return fmt.Errorf("%q cannot be used as a separator", value)
	}
	return nil
}
