package nong

import "github.com/google/uuid"

// Metadata is the value record shared by every audio entry.
type Metadata struct {
	// UniqueID is an opaque identifier, globally unique per entry and
	// stable across edits of the other fields.
	UniqueID string
	// GDID is the host song ID the entry belongs to. Negative values
	// address the built-in alias key space.
	GDID int
	Name   string
	Artist string
	// StartOffset is the playback start offset in milliseconds.
	StartOffset int
	// IndexSource tags entries that originate from an external index.
	IndexSource string
}

// NewMetadata builds a Metadata with a freshly generated unique ID.
func NewMetadata(gdID int, name, artist string) Metadata {
	return Metadata{
		UniqueID: uuid.NewString(),
		GDID:     gdID,
		Name:     name,
		Artist:   artist,
	}
}

// sameSong reports whether two records describe the same song for dedup
// purposes: identical name, artist, and start offset.
func (m Metadata) sameSong(other Metadata) bool {
	return m.Name == other.Name &&
		m.Artist == other.Artist &&
		m.StartOffset == other.StartOffset
}
