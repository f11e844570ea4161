package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"prestige/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t        testing.TB
	baseDir  string
	cfg      *config.Config
	fixtures map[string]string
}

// NewConfig writes the fixture datasets and a config file into a unique temp
// directory, then loads the file through config.Load so paths are normalized
// the same way as in production.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg, _ := NewConfigFile(t, opts...)
	return cfg
}

// NewConfigFile is NewConfig that also returns the config file path.
func NewConfigFile(t testing.TB, opts ...ConfigOption) (*config.Config, string) {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
		fixtures: map[string]string{
			NetflixFile:     NetflixCSV,
			DisneyFile:      DisneyCSV,
			OscarFile:       OscarTSV,
			GoldenGlobeFile: GoldenGlobeCSV,
		},
	}
	for _, opt := range opts {
		opt(builder)
	}

	for name, content := range builder.fixtures {
		WriteFile(t, filepath.Join(cfgVal.Paths.DataDir, name), content)
	}

	data, err := toml.Marshal(builder.cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(base, "prestige.toml")
	WriteFile(t, path, string(data))

	t.Setenv("PRESTIGE_DATA_DIR", "")
	loaded, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if !exists {
		t.Fatalf("config file %s not found", path)
	}
	return loaded, path
}

// WithWorkers sets analysis.workers.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Analysis.Workers = n
	}
}

// WithSQLite enables the report store under the temp directory.
func WithSQLite() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.SQLitePath = filepath.Join(b.baseDir, "store", "prestige.db")
	}
}

// WithLogDir enables the log file under the temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// WithFixture replaces the content of one data file.
func WithFixture(name, content string) ConfigOption {
	return func(b *configBuilder) {
		b.fixtures[name] = content
	}
}

// WithoutFixture skips writing one data file.
func WithoutFixture(name string) ConfigOption {
	return func(b *configBuilder) {
		delete(b.fixtures, name)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
