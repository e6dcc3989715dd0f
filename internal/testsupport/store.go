package testsupport

import (
	"testing"

	"jukebox/internal/config"
	"jukebox/internal/manifest"
	"jukebox/internal/nong"
)

// MustOpenStore opens a manifest.Store under the test config's save root.
func MustOpenStore(t testing.TB, cfg *config.Config) *manifest.Store {
	t.Helper()

	store, err := manifest.Open(cfg.ManifestDir(), nil)
	if err != nil {
		t.Fatalf("manifest.Open: %v", err)
	}
	return store
}

// NewAggregate builds an aggregate with a local default for tests.
func NewAggregate(t testing.TB, songID int, defaultUID string) *nong.Nongs {
	t.Helper()

	def := nong.NewLocal(nong.Metadata{
		UniqueID: defaultUID,
		GDID:     songID,
		Name:     "Original",
		Artist:   "RobTop",
	}, "songs/Resources/original.ogg")
	n, err := nong.New(songID, def)
	if err != nil {
		t.Fatalf("nong.New: %v", err)
	}
	return n
}
