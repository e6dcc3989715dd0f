package nong

import "strings"

// Kind discriminates the closed set of audio entry variants.
type Kind string

const (
	KindLocal   Kind = "local"
	KindYoutube Kind = "youtube"
	KindHosted  Kind = "hosted"
)

// SongsPrefix marks manifest-relative local paths. Paths carrying it are
// resolved against the host's writable resource root on use, not at load.
const SongsPrefix = "songs/"

// unknownName is the placeholder used for IDs with no known metadata yet.
const unknownName = "Unknown"

// Entry is a candidate playable item: metadata plus a variant-specific
// payload. Local entries carry a filesystem path, Youtube and Hosted
// entries carry a URL.
type Entry struct {
	Kind Kind
	Meta Metadata
	Path string
	URL  string
}

// NewLocal builds a Local entry for an on-disk audio file.
func NewLocal(meta Metadata, path string) Entry {
	return Entry{Kind: KindLocal, Meta: meta, Path: path}
}

// NewYoutube builds a Youtube entry referencing an external video.
func NewYoutube(meta Metadata, url string) Entry {
	return Entry{Kind: KindYoutube, Meta: meta, URL: url}
}

// NewHosted builds a Hosted entry referencing an external audio URL.
func NewHosted(meta Metadata, url string) Entry {
	return Entry{Kind: KindHosted, Meta: meta, URL: url}
}

// NewUnknownLocal builds the placeholder default for an ID whose metadata
// has not been fetched yet. The path stays empty until the host reports in.
func NewUnknownLocal(gdID int) Entry {
	return NewLocal(NewMetadata(gdID, unknownName, unknownName), "")
}

// IsUnknown reports whether the entry is still the unfetched placeholder.
func (e Entry) IsUnknown() bool {
	return e.Kind == KindLocal && e.Path == "" && e.Meta.Name == unknownName
}

// PathRelative reports whether the entry's path is manifest-relative and
// needs resolution against the host resource root.
func (e Entry) PathRelative() bool {
	return e.Kind == KindLocal && strings.HasPrefix(e.Path, SongsPrefix)
}
