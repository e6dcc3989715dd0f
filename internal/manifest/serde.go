package manifest

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"jukebox/internal/logging"
	"jukebox/internal/nong"
)

// CurrentVersion is the manifest file format version this build writes.
const CurrentVersion = 3

// entryJSON is the wire form of a single audio entry. The type tag keeps
// deserialization exhaustive: entries with a tag this build does not know
// are skipped instead of failing the whole file.
type entryJSON struct {
	Type        string `json:"type"`
	UniqueID    string `json:"uniqueID"`
	GDID        int    `json:"gdID"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	StartOffset int    `json:"startOffset"`
	IndexSource string `json:"indexSource,omitempty"`
	Path        string `json:"path,omitempty"`
	URL         string `json:"url,omitempty"`
}

type fileJSON struct {
	Version  int         `json:"version"`
	Default  *entryJSON  `json:"defaultSong"`
	Locals   []entryJSON `json:"locals"`
	Youtubes []entryJSON `json:"youtubes"`
	Hosteds  []entryJSON `json:"hosteds"`
	Active   string      `json:"active,omitempty"`
}

// Encode serializes an aggregate into its on-disk JSON form.
func Encode(n *nong.Nongs) ([]byte, error) {
	file := fileJSON{
		Version:  CurrentVersion,
		Default:  encodeEntry(n.Default()),
		Locals:   encodeEntries(n.Locals()),
		Youtubes: encodeEntries(n.Youtubes()),
		Hosteds:  encodeEntries(n.Hosteds()),
		Active:   n.ActiveID(),
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, nong.Wrap(nong.ErrParse, "encode", fmt.Sprintf("song %d", n.SongID()), err)
	}
	return data, nil
}

// Decode parses a per-ID manifest file into an aggregate. songID is the
// integer parsed from the filename stem; the embedded default entry must
// agree with it. Entries with an unknown variant tag are skipped with a
// warning. A missing active field selects the default.
func Decode(songID int, data []byte, logger *slog.Logger) (*nong.Nongs, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nong.Wrap(nong.ErrParse, "decode", fmt.Sprintf("song %d", songID), err)
	}

	if file.Version == 0 {
		return nil, nong.Wrap(nong.ErrParse, "decode",
			fmt.Sprintf("song %d: missing manifest version", songID), nil)
	}
	if file.Version > CurrentVersion {
		return nil, nong.Wrap(nong.ErrParse, "decode",
			fmt.Sprintf("song %d: manifest version %d is newer than supported %d",
				songID, file.Version, CurrentVersion), nil)
	}
	if file.Default == nil {
		return nil, nong.Wrap(nong.ErrParse, "decode",
			fmt.Sprintf("song %d: missing default song", songID), nil)
	}
	if file.Default.GDID != songID {
		return nil, nong.Wrap(nong.ErrParse, "decode",
			fmt.Sprintf("filename says song %d, default entry says %d", songID, file.Default.GDID), nil)
	}

	def := nong.NewLocal(decodeMetadata(*file.Default, songID), file.Default.Path)
	aggregate, err := nong.New(songID, def)
	if err != nil {
		return nil, nong.Wrap(nong.ErrParse, "decode", fmt.Sprintf("song %d", songID), err)
	}

	for _, group := range []struct {
		entries  []entryJSON
		fallback nong.Kind
	}{
		{file.Locals, nong.KindLocal},
		{file.Youtubes, nong.KindYoutube},
		{file.Hosteds, nong.KindHosted},
	} {
		for _, raw := range group.entries {
			entry, ok := decodeEntry(raw, songID, group.fallback)
			if !ok {
				logger.Warn("skipping entry with unknown variant",
					logging.SongID(songID),
					logging.UniqueID(raw.UniqueID),
					logging.String("variant", raw.Type))
				continue
			}
			if err := aggregate.Add(entry); err != nil {
				return nil, nong.Wrap(nong.ErrParse, "decode", fmt.Sprintf("song %d", songID), err)
			}
		}
	}

	if file.Active != "" {
		if err := aggregate.SetActive(file.Active); err != nil {
			return nil, nong.Wrap(nong.ErrParse, "decode",
				fmt.Sprintf("song %d: active entry %q does not exist", songID, file.Active), nil)
		}
	}

	return aggregate, nil
}

func encodeEntry(e nong.Entry) *entryJSON {
	out := &entryJSON{
		Type:        string(e.Kind),
		UniqueID:    e.Meta.UniqueID,
		GDID:        e.Meta.GDID,
		Name:        e.Meta.Name,
		Artist:      e.Meta.Artist,
		StartOffset: e.Meta.StartOffset,
		IndexSource: e.Meta.IndexSource,
	}
	switch e.Kind {
	case nong.KindLocal:
		out.Path = e.Path
	default:
		out.URL = e.URL
	}
	return out
}

func encodeEntries(entries []nong.Entry) []entryJSON {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, *encodeEntry(e))
	}
	return out
}

func decodeMetadata(raw entryJSON, songID int) nong.Metadata {
	gdID := raw.GDID
	if gdID == 0 {
		gdID = songID
	}
	return nong.Metadata{
		UniqueID:    raw.UniqueID,
		GDID:        gdID,
		Name:        raw.Name,
		Artist:      raw.Artist,
		StartOffset: raw.StartOffset,
		IndexSource: raw.IndexSource,
	}
}

func decodeEntry(raw entryJSON, songID int, fallback nong.Kind) (nong.Entry, bool) {
	kind := fallback
	if raw.Type != "" {
		kind = nong.Kind(raw.Type)
	}
	meta := decodeMetadata(raw, songID)
	switch kind {
	case nong.KindLocal:
		return nong.NewLocal(meta, raw.Path), true
	case nong.KindYoutube:
		return nong.NewYoutube(meta, raw.URL), true
	case nong.KindHosted:
		return nong.NewHosted(meta, raw.URL), true
	default:
		return nong.Entry{}, false
	}
}
