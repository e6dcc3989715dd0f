package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"jukebox/internal/manifest"
	"jukebox/internal/nong"
)

const legacyManifestJSON = `{
	"5": {
		"defaultSong": {"uniqueID": "def-5", "name": "Original", "artist": "RobTop", "path": "/gd/5.mp3"},
		"songs": [
			{"uniqueID": "def-5", "name": "Original", "artist": "RobTop", "path": "/gd/5.mp3"},
			{"uniqueID": "alt-a", "name": "Song A", "artist": "Artist", "path": "/music/a1.mp3"},
			{"uniqueID": "alt-b", "name": "Song A", "artist": "Artist", "path": "/music/a2.mp3"}
		],
		"active": {"uniqueID": "alt-a", "name": "Song A", "artist": "Artist", "path": "/music/a1.mp3"}
	}
}`

func TestMigrateV2DedupsAndBacksUp(t *testing.T) {
	base := t.TempDir()
	legacyPath := filepath.Join(base, "nong_data.json")
	if err := os.WriteFile(legacyPath, []byte(legacyManifestJSON), 0o644); err != nil {
		t.Fatalf("write legacy manifest: %v", err)
	}

	store, err := manifest.Open(filepath.Join(base, "manifest"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := manifest.MigrateV2(store, legacyPath, nil); err != nil {
		t.Fatalf("MigrateV2 failed: %v", err)
	}

	aggregate, ok := store.Get(5)
	if !ok {
		t.Fatal("expected aggregate for song 5 after migration")
	}
	// The default repeat and the duplicate (name, artist, offset) triple are
	// both dropped, leaving one candidate.
	if got := len(aggregate.Candidates()); got != 1 {
		t.Fatalf("expected exactly 1 candidate after dedup, got %d", got)
	}
	if aggregate.ActiveID() != "alt-a" {
		t.Fatalf("expected legacy active restored, got %q", aggregate.ActiveID())
	}

	if _, err := os.Stat(legacyPath + ".bak"); err != nil {
		t.Fatalf("expected legacy manifest backed up: %v", err)
	}
	if _, err := os.Stat(legacyPath); !os.IsNotExist(err) {
		t.Fatal("legacy manifest should be renamed away")
	}
	// Migration commits per ID.
	if _, err := os.Stat(filepath.Join(base, "manifest", "5.json")); err != nil {
		t.Fatalf("expected migrated aggregate committed: %v", err)
	}
}

func TestMigrateV2MissingFileIsNoop(t *testing.T) {
	base := t.TempDir()
	store, err := manifest.Open(filepath.Join(base, "manifest"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := manifest.MigrateV2(store, filepath.Join(base, "nong_data.json"), nil); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if store.Count() != 0 {
		t.Fatalf("expected empty store, got %d", store.Count())
	}
}

func TestMigrateV2ParseFailureLeavesManifestUntouched(t *testing.T) {
	base := t.TempDir()
	legacyPath := filepath.Join(base, "nong_data.json")
	if err := os.WriteFile(legacyPath, []byte("{ broken"), 0o644); err != nil {
		t.Fatalf("write legacy manifest: %v", err)
	}

	store, err := manifest.Open(filepath.Join(base, "manifest"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	err = manifest.MigrateV2(store, legacyPath, nil)
	if !errors.Is(err, nong.ErrLegacyMigration) {
		t.Fatalf("expected ErrLegacyMigration, got %v", err)
	}
	if store.Count() != 0 {
		t.Fatal("failed migration must not touch the manifest")
	}
	// The unparsable file stays for inspection.
	if _, err := os.Stat(legacyPath); err != nil {
		t.Fatalf("legacy file should remain after parse failure: %v", err)
	}
}

func TestMigrateV2FoldsIntoExistingAggregate(t *testing.T) {
	base := t.TempDir()
	legacyPath := filepath.Join(base, "nong_data.json")
	if err := os.WriteFile(legacyPath, []byte(legacyManifestJSON), 0o644); err != nil {
		t.Fatalf("write legacy manifest: %v", err)
	}

	store, err := manifest.Open(filepath.Join(base, "manifest"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	def := nong.NewLocal(nong.Metadata{UniqueID: "current-def", GDID: 5, Name: "Original", Artist: "RobTop"}, "/gd/5.mp3")
	existing, err := nong.New(5, def)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.Insert(existing); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := manifest.MigrateV2(store, legacyPath, nil); err != nil {
		t.Fatalf("MigrateV2 failed: %v", err)
	}

	aggregate, _ := store.Get(5)
	if aggregate.Default().Meta.UniqueID != "current-def" {
		t.Fatal("existing default must be preserved")
	}
	if got := len(aggregate.Candidates()); got != 1 {
		t.Fatalf("expected 1 folded candidate, got %d", got)
	}
}

func TestMigrateV2DroppedActiveStaysOnDefault(t *testing.T) {
	// The legacy active references an entry dropped by dedup.
	legacy := `{
		"9": {
			"defaultSong": {"uniqueID": "def-9", "name": "Original", "artist": "RobTop", "path": "/gd/9.mp3"},
			"songs": [
				{"uniqueID": "alt-a", "name": "Song A", "artist": "Artist", "path": "/music/a1.mp3"},
				{"uniqueID": "alt-b", "name": "Song A", "artist": "Artist", "path": "/music/a2.mp3"}
			],
			"active": {"uniqueID": "alt-b", "name": "Song A", "artist": "Artist", "path": "/music/a2.mp3"}
		}
	}`
	base := t.TempDir()
	legacyPath := filepath.Join(base, "nong_data.json")
	if err := os.WriteFile(legacyPath, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy manifest: %v", err)
	}

	store, err := manifest.Open(filepath.Join(base, "manifest"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := manifest.MigrateV2(store, legacyPath, nil); err != nil {
		t.Fatalf("MigrateV2 failed: %v", err)
	}

	aggregate, _ := store.Get(9)
	if aggregate.ActiveID() != aggregate.Default().Meta.UniqueID {
		t.Fatalf("expected active on default, got %q", aggregate.ActiveID())
	}
}
