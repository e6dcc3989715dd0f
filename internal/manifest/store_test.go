package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"jukebox/internal/manifest"
	"jukebox/internal/nong"
)

func writeManifestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func validManifestJSON(uid string, songID string) string {
	return `{
		"version": 3,
		"defaultSong": {"type": "local", "uniqueID": "` + uid + `", "gdID": ` + songID + `, "name": "Song", "artist": "Artist", "path": "songs/x.ogg"}
	}`
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "manifest")

	store, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if store.Count() != 0 {
		t.Fatalf("expected empty manifest, got %d", store.Count())
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("manifest directory not created: %v", err)
	}
}

func TestOpenLoadsValidAndQuarantinesCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "7.json", "{")
	writeManifestFile(t, dir, "8.json", validManifestJSON("d8", "8"))

	store, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, ok := store.Get(7); ok {
		t.Fatal("corrupt file must not load")
	}
	if _, ok := store.Get(8); !ok {
		t.Fatal("valid file should load")
	}
	if _, err := os.Stat(filepath.Join(dir, "7.json.bak")); err != nil {
		t.Fatalf("expected 7.json quarantined: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "7.json")); !os.IsNotExist(err) {
		t.Fatal("quarantined original should be gone")
	}
}

func TestOpenIgnoresNonIntegerStems(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "abc.json", "{ not even json")

	store, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if store.Count() != 0 {
		t.Fatalf("expected nothing loaded, got %d", store.Count())
	}
	// Not one of ours: left in place, not quarantined.
	if _, err := os.Stat(filepath.Join(dir, "abc.json")); err != nil {
		t.Fatalf("abc.json should be untouched: %v", err)
	}
}

func TestOpenQuarantinesZeroID(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "0.json", validManifestJSON("d0", "0"))

	store, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if store.Count() != 0 {
		t.Fatalf("expected nothing loaded, got %d", store.Count())
	}
	if _, err := os.Stat(filepath.Join(dir, "0.json.bak")); err != nil {
		t.Fatalf("expected 0.json quarantined: %v", err)
	}
}

func TestOpenKeepsFirstDuplicateID(t *testing.T) {
	dir := t.TempDir()
	// "07" and "7" both parse to song ID 7; the first loaded wins.
	writeManifestFile(t, dir, "07.json", validManifestJSON("first", "7"))
	writeManifestFile(t, dir, "7.json", validManifestJSON("second", "7"))

	store, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	n, ok := store.Get(7)
	if !ok {
		t.Fatal("expected song 7 loaded")
	}
	if n.Default().Meta.UniqueID != "first" {
		t.Fatalf("expected first file kept, got default %q", n.Default().Meta.UniqueID)
	}
	if _, err := os.Stat(filepath.Join(dir, "7.json.bak")); err != nil {
		t.Fatalf("expected duplicate quarantined: %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	def := nong.NewLocal(nong.Metadata{UniqueID: "D", GDID: 42, Name: "Orig", Artist: "R"}, "songs/42.ogg")
	aggregate, err := nong.New(42, def)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	local := nong.NewLocal(nong.Metadata{UniqueID: "L1", GDID: 42, Name: "Alt", Artist: "X"}, "/music/alt.mp3")
	if err := aggregate.Add(local); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := aggregate.SetActive("L1"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if err := store.Insert(aggregate); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Save(aggregate); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	loaded, ok := reopened.Get(42)
	if !ok {
		t.Fatal("saved aggregate missing after reload")
	}
	if loaded.ActiveID() != "L1" {
		t.Fatalf("expected active L1, got %q", loaded.ActiveID())
	}
	locals := loaded.Locals()
	if len(locals) != 1 || locals[0].Meta.UniqueID != "L1" {
		t.Fatalf("unexpected locals after reload: %+v", locals)
	}
}

func TestSaveNegativeSongID(t *testing.T) {
	dir := t.TempDir()
	store, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	def := nong.NewLocal(nong.Metadata{UniqueID: "D", GDID: -3, Name: "Built-in", Artist: "R"}, "songs/Resources/x.ogg")
	aggregate, err := nong.New(-3, def)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.Insert(aggregate); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Save(aggregate); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "-3.json")); err != nil {
		t.Fatalf("expected -3.json written: %v", err)
	}

	reopened, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, ok := reopened.Get(-3); !ok {
		t.Fatal("negative ID aggregate missing after reload")
	}
}

func TestInsertRejectsDuplicate(t *testing.T) {
	dir := t.TempDir()
	store, err := manifest.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	def := nong.NewLocal(nong.Metadata{UniqueID: "D", GDID: 5, Name: "n", Artist: "a"}, "")
	first, err := nong.New(5, def)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.Insert(first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	second, err := nong.New(5, nong.NewLocal(nong.Metadata{UniqueID: "E", GDID: 5, Name: "n", Artist: "a"}, ""))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.Insert(second); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
}
