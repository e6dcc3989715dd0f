package nong_test

import (
	"errors"
	"testing"

	"jukebox/internal/nong"
)

func newAggregate(t *testing.T, songID int) *nong.Nongs {
	t.Helper()
	def := nong.NewLocal(nong.Metadata{
		UniqueID: "default-uid",
		GDID:     songID,
		Name:     "Original",
		Artist:   "RobTop",
	}, "songs/Resources/song.ogg")
	n, err := nong.New(songID, def)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return n
}

func localEntry(songID int, uid, name string) nong.Entry {
	return nong.NewLocal(nong.Metadata{
		UniqueID: uid,
		GDID:     songID,
		Name:     name,
		Artist:   "Artist",
	}, "/tmp/"+uid+".mp3")
}

func TestNewRejectsBadDefaults(t *testing.T) {
	meta := nong.Metadata{UniqueID: "uid", GDID: 42, Name: "n", Artist: "a"}

	cases := []struct {
		name   string
		songID int
		def    nong.Entry
	}{
		{"zero song id", 0, nong.NewLocal(meta, "")},
		{"non-local default", 42, nong.NewYoutube(meta, "https://example.com")},
		{"empty unique id", 42, nong.NewLocal(nong.Metadata{GDID: 42}, "")},
		{"foreign gd id", 42, nong.NewLocal(nong.Metadata{UniqueID: "uid", GDID: 7}, "")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := nong.New(tc.songID, tc.def); !errors.Is(err, nong.ErrInvariant) {
				t.Fatalf("expected ErrInvariant, got %v", err)
			}
		})
	}
}

func TestActiveStartsAtDefault(t *testing.T) {
	n := newAggregate(t, 42)
	if n.ActiveID() != "default-uid" {
		t.Fatalf("expected default active, got %q", n.ActiveID())
	}
	if n.Active().Meta.UniqueID != "default-uid" {
		t.Fatal("Active should resolve to the default entry")
	}
}

func TestAddAndAccessors(t *testing.T) {
	n := newAggregate(t, 42)

	if err := n.Add(localEntry(42, "l1", "Song A")); err != nil {
		t.Fatalf("Add local failed: %v", err)
	}
	yt := nong.NewYoutube(nong.Metadata{UniqueID: "y1", GDID: 42, Name: "Song B", Artist: "B"}, "https://youtu.be/x")
	if err := n.Add(yt); err != nil {
		t.Fatalf("Add youtube failed: %v", err)
	}
	hosted := nong.NewHosted(nong.Metadata{UniqueID: "h1", GDID: 42, Name: "Song C", Artist: "C"}, "https://cdn.example/c.mp3")
	if err := n.Add(hosted); err != nil {
		t.Fatalf("Add hosted failed: %v", err)
	}

	if got := len(n.Locals()); got != 1 {
		t.Fatalf("expected 1 local, got %d", got)
	}
	if got := len(n.Youtubes()); got != 1 {
		t.Fatalf("expected 1 youtube, got %d", got)
	}
	if got := len(n.Hosteds()); got != 1 {
		t.Fatalf("expected 1 hosted, got %d", got)
	}
	if got := len(n.Candidates()); got != 3 {
		t.Fatalf("expected 3 candidates, got %d", got)
	}
	// Adding never changes the selection.
	if n.ActiveID() != "default-uid" {
		t.Fatalf("active changed to %q", n.ActiveID())
	}
}

func TestAddRejectsCollisionsAndForeignIDs(t *testing.T) {
	n := newAggregate(t, 42)

	if err := n.Add(localEntry(42, "default-uid", "Clash")); !errors.Is(err, nong.ErrInvariant) {
		t.Fatalf("expected ErrInvariant for unique ID collision, got %v", err)
	}
	if err := n.Add(localEntry(7, "l1", "Foreign")); !errors.Is(err, nong.ErrInvariant) {
		t.Fatalf("expected ErrInvariant for foreign gd ID, got %v", err)
	}
	if err := n.Add(localEntry(42, "l1", "Song A")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := n.Add(localEntry(42, "l1", "Song A again")); !errors.Is(err, nong.ErrInvariant) {
		t.Fatalf("expected ErrInvariant for duplicate candidate, got %v", err)
	}
}

func TestSetActive(t *testing.T) {
	n := newAggregate(t, 42)
	if err := n.Add(localEntry(42, "l1", "Song A")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := n.SetActive("l1"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if n.ActiveID() != "l1" {
		t.Fatalf("expected l1 active, got %q", n.ActiveID())
	}

	if err := n.SetActive("unknown"); !errors.Is(err, nong.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n.ActiveID() != "l1" {
		t.Fatal("failed SetActive must leave the aggregate unchanged")
	}
}

func TestRemoveResetsActiveToDefault(t *testing.T) {
	n := newAggregate(t, 42)
	if err := n.Add(localEntry(42, "l1", "Song A")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := n.SetActive("l1"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	removed, err := n.Remove("l1")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.Meta.UniqueID != "l1" {
		t.Fatalf("unexpected removed entry: %+v", removed)
	}
	if n.ActiveID() != "default-uid" {
		t.Fatalf("expected active reset to default, got %q", n.ActiveID())
	}
	if len(n.Locals()) != 0 {
		t.Fatal("entry still present after Remove")
	}
}

func TestRemoveDefaultFails(t *testing.T) {
	n := newAggregate(t, 42)
	if _, err := n.Remove("default-uid"); !errors.Is(err, nong.ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
	if _, err := n.Remove("missing"); !errors.Is(err, nong.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveAllKeepsDefault(t *testing.T) {
	n := newAggregate(t, 42)
	for _, uid := range []string{"l1", "l2"} {
		if err := n.Add(localEntry(42, uid, "Song "+uid)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := n.SetActive("l2"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	removed := n.RemoveAll()
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed entries, got %d", len(removed))
	}
	if len(n.Candidates()) != 0 {
		t.Fatal("candidates remain after RemoveAll")
	}
	if n.ActiveID() != "default-uid" {
		t.Fatalf("expected active reset to default, got %q", n.ActiveID())
	}
	if n.Default().Meta.UniqueID != "default-uid" {
		t.Fatal("default must survive RemoveAll")
	}
}

func TestClearAudio(t *testing.T) {
	n := newAggregate(t, 42)
	if err := n.Add(localEntry(42, "l1", "Song A")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	yt := nong.NewYoutube(nong.Metadata{UniqueID: "y1", GDID: 42, Name: "Song B", Artist: "B"}, "https://youtu.be/x")
	if err := n.Add(yt); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	path, err := n.ClearAudio("l1")
	if err != nil {
		t.Fatalf("ClearAudio failed: %v", err)
	}
	if path != "/tmp/l1.mp3" {
		t.Fatalf("unexpected cleared path %q", path)
	}
	got, ok := n.Find("l1")
	if !ok || got.Path != "" {
		t.Fatalf("expected cleared path, got %+v", got)
	}
	if got.Meta.Name != "Song A" {
		t.Fatal("metadata must survive ClearAudio")
	}

	if _, err := n.ClearAudio("y1"); !errors.Is(err, nong.ErrInvariant) {
		t.Fatalf("expected ErrInvariant for non-local entry, got %v", err)
	}
	if _, err := n.ClearAudio("default-uid"); !errors.Is(err, nong.ErrInvariant) {
		t.Fatalf("expected ErrInvariant for default entry, got %v", err)
	}
	if _, err := n.ClearAudio("missing"); !errors.Is(err, nong.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMergeDedupsByMetadataTriple(t *testing.T) {
	dst := newAggregate(t, 42)
	if err := dst.Add(localEntry(42, "l1", "Song A")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	src := newAggregate(t, 42)
	// Same (name, artist, offset) triple under a different unique ID: skipped.
	if err := src.Add(localEntry(42, "other-uid", "Song A")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	// New song: folded in.
	if err := src.Add(localEntry(42, "l2", "Song B")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := dst.Merge(src); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if got := len(dst.Locals()); got != 2 {
		t.Fatalf("expected 2 locals after merge, got %d", got)
	}
	if _, ok := dst.Find("other-uid"); ok {
		t.Fatal("duplicate triple should have been skipped")
	}
	if _, ok := dst.Find("l2"); !ok {
		t.Fatal("new candidate missing after merge")
	}
}

func TestMergeOverwritesDefaultInfoNotIdentity(t *testing.T) {
	dst := newAggregate(t, 42)
	srcDef := nong.NewLocal(nong.Metadata{
		UniqueID: "incoming-default",
		GDID:     42,
		Name:     "Fetched Name",
		Artist:   "Fetched Artist",
	}, "/somewhere/else.ogg")
	src, err := nong.New(42, srcDef)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := dst.Merge(src); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	def := dst.Default()
	if def.Meta.Name != "Fetched Name" || def.Meta.Artist != "Fetched Artist" {
		t.Fatalf("default info not updated: %+v", def.Meta)
	}
	if def.Meta.UniqueID != "default-uid" {
		t.Fatal("default unique ID must never change")
	}
	if def.Path != "songs/Resources/song.ogg" {
		t.Fatal("default path must be preserved")
	}
}

func TestMergeSelfIsIdempotent(t *testing.T) {
	n := newAggregate(t, 42)
	if err := n.Add(localEntry(42, "l1", "Song A")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := n.SetActive("l1"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	if err := n.Merge(n); err != nil {
		t.Fatalf("self-merge failed: %v", err)
	}
	if got := len(n.Candidates()); got != 1 {
		t.Fatalf("self-merge must not duplicate candidates, got %d", got)
	}
	if n.ActiveID() != "l1" {
		t.Fatalf("self-merge changed active to %q", n.ActiveID())
	}
}

func TestMergeRejectsForeignSongID(t *testing.T) {
	dst := newAggregate(t, 42)
	src := newAggregate(t, 7)
	if err := dst.Merge(src); !errors.Is(err, nong.ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
}

func TestSetDefaultInfo(t *testing.T) {
	n := newAggregate(t, 42)
	if changed := n.SetDefaultInfo("Original", "RobTop"); changed {
		t.Fatal("unchanged info reported as changed")
	}
	if changed := n.SetDefaultInfo("New", "Artist"); !changed {
		t.Fatal("changed info reported as unchanged")
	}
	def := n.Default()
	if def.Meta.Name != "New" || def.Meta.Artist != "Artist" {
		t.Fatalf("default info not applied: %+v", def.Meta)
	}
	if def.Meta.UniqueID != "default-uid" {
		t.Fatal("default unique ID must never change")
	}
}

func TestValidateCatchesCorruption(t *testing.T) {
	n := newAggregate(t, 42)
	if err := n.Add(localEntry(42, "l1", "Song A")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := n.Validate(); err != nil {
		t.Fatalf("valid aggregate rejected: %v", err)
	}
}

func TestUnknownPlaceholder(t *testing.T) {
	e := nong.NewUnknownLocal(42)
	if !e.IsUnknown() {
		t.Fatal("placeholder should report IsUnknown")
	}
	if e.Meta.UniqueID == "" {
		t.Fatal("placeholder needs a unique ID")
	}
	if e.Meta.GDID != 42 {
		t.Fatalf("placeholder carries wrong gd ID %d", e.Meta.GDID)
	}
}

func TestPathRelative(t *testing.T) {
	rel := nong.NewLocal(nong.Metadata{UniqueID: "r", GDID: 1}, "songs/Resources/1.ogg")
	abs := nong.NewLocal(nong.Metadata{UniqueID: "a", GDID: 1}, "/abs/1.ogg")
	if !rel.PathRelative() {
		t.Fatal("songs/ path should be relative")
	}
	if abs.PathRelative() {
		t.Fatal("absolute path misreported as relative")
	}
}
