package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"prestige/internal/awards"
	"prestige/internal/table"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and output configuration.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	OutputDir  string `toml:"output_dir"`
	SQLitePath string `toml:"sqlite_path"`
	LogDir     string `toml:"log_dir"`
}

// Catalog describes one platform catalog file.
type Catalog struct {
	Platform    string `toml:"platform"`
	Path        string `toml:"path"`
	TitleColumn string `toml:"title_column"`
	Separator   string `toml:"separator"`
	Encoding    string `toml:"encoding"`
}

// Category maps raw award labels onto a semantic category.
type Category struct {
	Name   string   `toml:"name"`
	Labels []string `toml:"labels"`
}

// AwardSource describes one award dataset and its classification rules.
type AwardSource struct {
	ID           string     `toml:"id"`
	Name         string     `toml:"name"`
	Path         string     `toml:"path"`
	Separator    string     `toml:"separator"`
	Encoding     string     `toml:"encoding"`
	TitleColumn  string     `toml:"title_column"`
	LabelColumn  string     `toml:"label_column"`
	WinnerColumn string     `toml:"winner_column"`
	Strategy     string     `toml:"strategy"`
	Categories   []Category `toml:"categories"`
}

// Analysis contains pipeline tuning knobs.
type Analysis struct {
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for prestige.
//
// Configuration sections:
//   - Paths: data directory, output directory, optional SQLite report store
//   - Catalogs: one entry per streaming platform
//   - Awards: one entry per award dataset, including its category mapping
//   - Analysis: attribution worker count
//   - Logging: log format and level
type Config struct {
	Paths    Paths         `toml:"paths"`
	Catalogs []Catalog     `toml:"catalogs"`
	Awards   []AwardSource `toml:"awards"`
	Analysis Analysis      `toml:"analysis"`
	Logging  Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/prestige/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file is not an error: defaults are used
// and the boolean result reports false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// decode overlays TOML onto cfg. Array tables replace the defaults wholesale
// when present so a file that lists its own catalogs does not inherit the
// bundled ones.
func decode(data []byte, cfg *Config) error {
	var arrays struct {
		Catalogs []Catalog     `toml:"catalogs"`
		Awards   []AwardSource `toml:"awards"`
	}
	if err := toml.Unmarshal(data, &arrays); err != nil {
		return err
	}
	if len(arrays.Catalogs) > 0 {
		cfg.Catalogs = nil
	}
	if len(arrays.Awards) > 0 {
		cfg.Awards = nil
	}
	return toml.Unmarshal(data, cfg)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("prestige.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if c.Paths.SQLitePath != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.SQLitePath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Spec returns the classification spec of the source.
func (a AwardSource) Spec() awards.SourceSpec {
	categories := make([]awards.Category, len(a.Categories))
	for i, category := range a.Categories {
		labels := make([]string, len(category.Labels))
		copy(labels, category.Labels)
		categories[i] = awards.Category{Name: category.Name, Labels: labels}
	}
	return awards.SourceSpec{
		ID:           a.ID,
		Name:         a.Name,
		TitleColumn:  a.TitleColumn,
		LabelColumn:  a.LabelColumn,
		WinnerColumn: a.WinnerColumn,
		Strategy:     awards.Strategy(a.Strategy),
		Categories:   categories,
	}
}

// TableOptions returns the loader options for the source file.
func (a AwardSource) TableOptions() table.Options {
	return table.Options{Separator: separatorRune(a.Separator), Encoding: a.Encoding, LazyQuotes: true}
}

// TableOptions returns the loader options for the catalog file.
func (c Catalog) TableOptions() table.Options {
	return table.Options{Separator: separatorRune(c.Separator), Encoding: c.Encoding, LazyQuotes: true}
}

// SourceSpecs returns the classification spec of every award source.
func (c *Config) SourceSpecs() []awards.SourceSpec {
	specs := make([]awards.SourceSpec, len(c.Awards))
	for i, source := range c.Awards {
		specs[i] = source.Spec()
	}
	return specs
}

func separatorRune(value string) rune {
	switch value {
	case "", ",":
		return ','
	case `\t`, "\t", "tab":
		return '\t'
	}
	for _, r := range value {
		return r
	}
	return ','
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
