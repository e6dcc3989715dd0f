package testsupport

import (
	"path/filepath"
	"testing"

	"jukebox/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The song info cache is disabled unless an option enables it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SaveDir = filepath.Join(base, "save")
	cfgVal.Paths.GDResourcesDir = filepath.Join(base, "gd", "resources")
	cfgVal.Paths.GDWritableDir = filepath.Join(base, "gd", "writable")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.SongInfo.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSongInfoCache enables the persistent song info cache under the test's
// save directory.
func WithSongInfoCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SongInfo.Enabled = true
		b.cfg.SongInfo.Path = filepath.Join(b.baseDir, "save", "songinfo.db")
	}
}

// WithSaveDir overrides the save root on the test config.
func WithSaveDir(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.SaveDir = path
	}
}
