package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"jukebox/internal/logging"
	"jukebox/internal/nong"
)

// legacySong is an entry in the v2 single-file manifest. v2 only knew
// local files.
type legacySong struct {
	UniqueID    string `json:"uniqueID"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	StartOffset int    `json:"startOffset"`
	Path        string `json:"path"`
}

// legacyRecord is the per-ID value in the v2 manifest: the default song, a
// flat list mixing the default with alternates, and the active selection.
type legacyRecord struct {
	DefaultSong legacySong   `json:"defaultSong"`
	Songs       []legacySong `json:"songs"`
	Active      legacySong   `json:"active"`
}

// MigrateV2 folds the legacy single-file manifest at legacyPath into the
// store. Absence of the file is a no-op. A parse failure aborts the
// migration without touching the current manifest. On success the legacy
// file is renamed to <name>.bak, never deleted.
func MigrateV2(s *Store, legacyPath string, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "migrate-v2")

	if _, err := os.Stat(legacyPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no legacy manifest found, nothing to migrate")
			return nil
		}
		return nong.Wrap(nong.ErrLegacyMigration, "migrate", fmt.Sprintf("stat %q", legacyPath), err)
	}

	data, err := os.ReadFile(legacyPath)
	if err != nil {
		return nong.Wrap(nong.ErrLegacyMigration, "migrate", fmt.Sprintf("read %q", legacyPath), err)
	}

	var records map[string]legacyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nong.Wrap(nong.ErrLegacyMigration, "migrate", "parse legacy manifest", err)
	}

	ids := make([]int, 0, len(records))
	byID := make(map[int]legacyRecord, len(records))
	for key, record := range records {
		id, err := strconv.Atoi(key)
		if err != nil || id == 0 {
			logger.Warn("skipping legacy record with invalid song ID", logging.String("key", key))
			continue
		}
		ids = append(ids, id)
		byID[id] = record
	}
	sort.Ints(ids)

	migrated := 0
	for _, id := range ids {
		record := byID[id]

		aggregate, exists := s.Get(id)
		if !exists {
			def := nong.NewLocal(legacyMetadata(record.DefaultSong, id), record.DefaultSong.Path)
			aggregate, err = nong.New(id, def)
			if err != nil {
				logger.Error("skipping unmigratable legacy record",
					logging.SongID(id), logging.Error(err))
				continue
			}
			if err := s.Insert(aggregate); err != nil {
				logger.Error("failed to insert migrated aggregate",
					logging.SongID(id), logging.Error(err))
				continue
			}
		}

		for _, song := range record.Songs {
			// The flat v2 list repeats the default; recognize it by path.
			if song.Path == record.DefaultSong.Path {
				continue
			}
			entry := nong.NewLocal(legacyMetadata(song, id), song.Path)
			if aggregate.HasLike(entry) {
				continue
			}
			if err := aggregate.Add(entry); err != nil {
				logger.Error("failed to add migrated song to manifest",
					logging.SongID(id), logging.Error(err))
			}
		}

		if err := aggregate.SetActive(record.Active.UniqueID); err != nil {
			// The active entry may have been dropped by dedup; stay on the
			// current selection.
			logger.Warn("legacy active entry not restored",
				logging.SongID(id), logging.UniqueID(record.Active.UniqueID))
		}

		if err := s.Save(aggregate); err != nil {
			logger.Error("failed to commit migrated aggregate",
				logging.SongID(id), logging.Error(err))
		}
		migrated++
	}

	logger.Info("migrated legacy manifest", logging.Int("song_count", migrated))

	backup := legacyPath + ".bak"
	if err := os.Rename(legacyPath, backup); err != nil {
		return nong.Wrap(nong.ErrLegacyMigration, "migrate", fmt.Sprintf("back up %q", legacyPath), err)
	}
	return nil
}

func legacyMetadata(song legacySong, id int) nong.Metadata {
	uniqueID := song.UniqueID
	if uniqueID == "" {
		uniqueID = uuid.NewString()
	}
	return nong.Metadata{
		UniqueID:    uniqueID,
		GDID:        id,
		Name:        song.Name,
		Artist:      song.Artist,
		StartOffset: song.StartOffset,
	}
}
