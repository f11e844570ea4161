package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCatalogs(); err != nil {
		return err
	}
	if err := c.normalizeAwards(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("PRESTIGE_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.SQLitePath, err = expandPath(strings.TrimSpace(c.Paths.SQLitePath)); err != nil {
		return fmt.Errorf("paths.sqlite_path: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalogs() error {
	for i := range c.Catalogs {
		cat := &c.Catalogs[i]
		cat.Platform = strings.TrimSpace(cat.Platform)
		cat.TitleColumn = strings.TrimSpace(cat.TitleColumn)
		if cat.TitleColumn == "" {
			cat.TitleColumn = defaultTitleColumn
		}
		cat.Encoding = normalizeEncoding(cat.Encoding)
		path, err := c.resolveDataPath(cat.Path)
		if err != nil {
			return fmt.Errorf("catalogs[%d].path: %w", i, err)
		}
		cat.Path = path
	}
	return nil
}

func (c *Config) normalizeAwards() error {
	for i := range c.Awards {
		source := &c.Awards[i]
		source.ID = strings.TrimSpace(source.ID)
		if bundled, ok := bundledSpec(source.ID); ok {
			fillFromSpec(source, sourceFromSpec(bundled, "", ""))
		}
		source.Strategy = strings.ToLower(strings.TrimSpace(source.Strategy))
		source.Encoding = normalizeEncoding(source.Encoding)
		path, err := c.resolveDataPath(source.Path)
		if err != nil {
			return fmt.Errorf("awards[%d].path: %w", i, err)
		}
		source.Path = path
	}
	return nil
}

// fillFromSpec copies bundled values into fields the file left empty.
func fillFromSpec(dst *AwardSource, bundled AwardSource) {
	if dst.Name == "" {
		dst.Name = bundled.Name
	}
	if dst.TitleColumn == "" {
		dst.TitleColumn = bundled.TitleColumn
	}
	if dst.LabelColumn == "" {
		dst.LabelColumn = bundled.LabelColumn
	}
	if dst.WinnerColumn == "" {
		dst.WinnerColumn = bundled.WinnerColumn
	}
	if dst.Strategy == "" {
		dst.Strategy = bundled.Strategy
	}
	if len(dst.Categories) == 0 {
		dst.Categories = bundled.Categories
	}
}

func (c *Config) resolveDataPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "~") {
		path = filepath.Join(c.Paths.DataDir, path)
	}
	return expandPath(path)
}

func normalizeEncoding(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return defaultEncoding
	}
	return value
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
