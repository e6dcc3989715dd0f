package nong

import "fmt"

// Nongs is the per-host-song-ID aggregate: the distinguished default entry,
// ordered candidate lists per variant, and the active selection.
//
// Invariants held after every successful mutation:
//   - unique IDs across the default and all candidates are pairwise distinct
//   - the active ID resolves to exactly one entry
//   - every entry's GDID equals the aggregate's song ID
//   - the default entry's unique ID never changes after construction
type Nongs struct {
	songID   int
	def      Entry
	locals   []Entry
	youtubes []Entry
	hosteds  []Entry
	activeID string
}

// New constructs an aggregate around its default entry. The default must be
// a Local entry carrying the aggregate's song ID and a non-empty unique ID.
func New(songID int, def Entry) (*Nongs, error) {
	if songID == 0 {
		return nil, Wrap(ErrInvariant, "new", "song ID must be non-zero", nil)
	}
	if def.Kind != KindLocal {
		return nil, Wrap(ErrInvariant, "new", "default entry must be local", nil)
	}
	if def.Meta.UniqueID == "" {
		return nil, Wrap(ErrInvariant, "new", "default entry has empty unique ID", nil)
	}
	if def.Meta.GDID != songID {
		return nil, Wrap(ErrInvariant, "new",
			fmt.Sprintf("default entry belongs to song %d, aggregate is %d", def.Meta.GDID, songID), nil)
	}
	return &Nongs{
		songID:   songID,
		def:      def,
		activeID: def.Meta.UniqueID,
	}, nil
}

// SongID returns the host song ID the aggregate belongs to.
func (n *Nongs) SongID() int { return n.songID }

// Default returns a copy of the default entry.
func (n *Nongs) Default() Entry { return n.def }

// ActiveID returns the unique ID of the currently selected entry.
func (n *Nongs) ActiveID() string { return n.activeID }

// Active returns a copy of the currently selected entry.
func (n *Nongs) Active() Entry {
	if e, ok := n.Find(n.activeID); ok {
		return e
	}
	// activeID always resolves while the invariants hold.
	return n.def
}

// Locals returns a copy of the Local candidate list in insertion order.
func (n *Nongs) Locals() []Entry { return copyEntries(n.locals) }

// Youtubes returns a copy of the Youtube candidate list in insertion order.
func (n *Nongs) Youtubes() []Entry { return copyEntries(n.youtubes) }

// Hosteds returns a copy of the Hosted candidate list in insertion order.
func (n *Nongs) Hosteds() []Entry { return copyEntries(n.hosteds) }

// Candidates returns every non-default entry, Local first, then Youtube,
// then Hosted, each list in insertion order.
func (n *Nongs) Candidates() []Entry {
	out := make([]Entry, 0, len(n.locals)+len(n.youtubes)+len(n.hosteds))
	out = append(out, n.locals...)
	out = append(out, n.youtubes...)
	out = append(out, n.hosteds...)
	return out
}

// Find returns a copy of the entry with the given unique ID.
func (n *Nongs) Find(uniqueID string) (Entry, bool) {
	if uniqueID == n.def.Meta.UniqueID {
		return n.def, true
	}
	for _, list := range [][]Entry{n.locals, n.youtubes, n.hosteds} {
		for _, e := range list {
			if e.Meta.UniqueID == uniqueID {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// HasLike reports whether a candidate of the same variant already stores the
// same (name, artist, start offset) triple. Used for merge and migration dedup.
func (n *Nongs) HasLike(e Entry) bool {
	for _, stored := range n.listFor(e.Kind) {
		if stored.Meta.sameSong(e.Meta) {
			return true
		}
	}
	return false
}

// Add appends a candidate to its variant list. It fails when the unique ID
// collides with any existing entry or the entry carries a foreign song ID.
// Adding never changes the active selection.
func (n *Nongs) Add(e Entry) error {
	if e.Meta.UniqueID == "" {
		return Wrap(ErrInvariant, "add", "entry has empty unique ID", nil)
	}
	if e.Meta.GDID != n.songID {
		return Wrap(ErrInvariant, "add",
			fmt.Sprintf("entry belongs to song %d, aggregate is %d", e.Meta.GDID, n.songID), nil)
	}
	if _, exists := n.Find(e.Meta.UniqueID); exists {
		return Wrap(ErrInvariant, "add",
			fmt.Sprintf("unique ID %q already present", e.Meta.UniqueID), nil)
	}
	switch e.Kind {
	case KindLocal:
		n.locals = append(n.locals, e)
	case KindYoutube:
		n.youtubes = append(n.youtubes, e)
	case KindHosted:
		n.hosteds = append(n.hosteds, e)
	default:
		return Wrap(ErrInvariant, "add", fmt.Sprintf("unknown entry kind %q", e.Kind), nil)
	}
	return nil
}

// Merge folds another aggregate for the same song ID into this one.
// Candidates whose (name, artist, start offset) triple already exists under
// the same variant are skipped. The default entry is never replaced; the
// incoming default's name and artist overwrite the stored ones when they
// differ, while unique ID and path are preserved.
func (n *Nongs) Merge(other *Nongs) error {
	if other == nil {
		return nil
	}
	if other.songID != n.songID {
		return Wrap(ErrInvariant, "merge",
			fmt.Sprintf("cannot merge song %d into %d", other.songID, n.songID), nil)
	}

	for _, e := range other.Candidates() {
		if n.HasLike(e) {
			continue
		}
		if err := n.Add(e); err != nil {
			return err
		}
	}

	if other.def.Meta.Name != n.def.Meta.Name || other.def.Meta.Artist != n.def.Meta.Artist {
		n.def.Meta.Name = other.def.Meta.Name
		n.def.Meta.Artist = other.def.Meta.Artist
	}
	return nil
}

// SetActive selects the entry with the given unique ID for playback.
func (n *Nongs) SetActive(uniqueID string) error {
	if _, ok := n.Find(uniqueID); !ok {
		return Wrap(ErrNotFound, "set active", fmt.Sprintf("no entry with unique ID %q", uniqueID), nil)
	}
	n.activeID = uniqueID
	return nil
}

// SetDefaultInfo updates the default entry's user-visible metadata and
// reports whether anything changed. Unique ID and path are untouched.
func (n *Nongs) SetDefaultInfo(name, artist string) bool {
	if n.def.Meta.Name == name && n.def.Meta.Artist == artist {
		return false
	}
	n.def.Meta.Name = name
	n.def.Meta.Artist = artist
	return true
}

// SetDefaultPath updates the default entry's resolved audio path.
func (n *Nongs) SetDefaultPath(path string) {
	n.def.Path = path
}

// Remove deletes the candidate with the given unique ID and returns it.
// Removing the default is an invariant violation. When the removed entry was
// active, the selection resets to the default.
func (n *Nongs) Remove(uniqueID string) (Entry, error) {
	if uniqueID == n.def.Meta.UniqueID {
		return Entry{}, Wrap(ErrInvariant, "delete", "cannot delete the default entry", nil)
	}
	for _, list := range []*[]Entry{&n.locals, &n.youtubes, &n.hosteds} {
		for i, e := range *list {
			if e.Meta.UniqueID != uniqueID {
				continue
			}
			*list = append((*list)[:i], (*list)[i+1:]...)
			if n.activeID == uniqueID {
				n.activeID = n.def.Meta.UniqueID
			}
			return e, nil
		}
	}
	return Entry{}, Wrap(ErrNotFound, "delete", fmt.Sprintf("no entry with unique ID %q", uniqueID), nil)
}

// RemoveAll drops every candidate, keeps the default, resets the active
// selection to it, and returns the removed entries.
func (n *Nongs) RemoveAll() []Entry {
	removed := n.Candidates()
	n.locals = nil
	n.youtubes = nil
	n.hosteds = nil
	n.activeID = n.def.Meta.UniqueID
	return removed
}

// ClearAudio drops the on-disk audio reference of a Local candidate while
// keeping its metadata, and returns the path that was stored. Non-local
// entries are rejected.
func (n *Nongs) ClearAudio(uniqueID string) (string, error) {
	if uniqueID == n.def.Meta.UniqueID {
		return "", Wrap(ErrInvariant, "delete audio", "cannot delete the default entry's audio", nil)
	}
	for i, e := range n.locals {
		if e.Meta.UniqueID != uniqueID {
			continue
		}
		path := e.Path
		n.locals[i].Path = ""
		return path, nil
	}
	if e, ok := n.Find(uniqueID); ok {
		return "", Wrap(ErrInvariant, "delete audio",
			fmt.Sprintf("entry %q is %s, not local", uniqueID, e.Kind), nil)
	}
	return "", Wrap(ErrNotFound, "delete audio", fmt.Sprintf("no entry with unique ID %q", uniqueID), nil)
}

// Validate re-checks the aggregate invariants. Used after deserialization.
func (n *Nongs) Validate() error {
	if n.def.Meta.GDID != n.songID {
		return Wrap(ErrInvariant, "validate", "default entry carries a foreign song ID", nil)
	}
	seen := map[string]struct{}{n.def.Meta.UniqueID: {}}
	for _, e := range n.Candidates() {
		if e.Meta.UniqueID == "" {
			return Wrap(ErrInvariant, "validate", "entry has empty unique ID", nil)
		}
		if _, dup := seen[e.Meta.UniqueID]; dup {
			return Wrap(ErrInvariant, "validate",
				fmt.Sprintf("duplicate unique ID %q", e.Meta.UniqueID), nil)
		}
		seen[e.Meta.UniqueID] = struct{}{}
		if e.Meta.GDID != n.songID {
			return Wrap(ErrInvariant, "validate",
				fmt.Sprintf("entry %q carries song ID %d, aggregate is %d", e.Meta.UniqueID, e.Meta.GDID, n.songID), nil)
		}
	}
	if _, ok := seen[n.activeID]; !ok {
		return Wrap(ErrInvariant, "validate",
			fmt.Sprintf("active ID %q resolves to no entry", n.activeID), nil)
	}
	return nil
}

func (n *Nongs) listFor(kind Kind) []Entry {
	switch kind {
	case KindLocal:
		return n.locals
	case KindYoutube:
		return n.youtubes
	case KindHosted:
		return n.hosteds
	default:
		return nil
	}
}

func copyEntries(src []Entry) []Entry {
	if len(src) == 0 {
		return nil
	}
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}
