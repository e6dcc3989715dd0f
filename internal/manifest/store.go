package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"jukebox/internal/fileutil"
	"jukebox/internal/logging"
	"jukebox/internal/nong"
)

// Store owns the manifest directory and the in-memory aggregate map.
// Aggregates are created when an ID is first seen and live until the
// process exits; deletions affect entries within an aggregate, never the
// aggregate itself.
type Store struct {
	dir    string
	logger *slog.Logger
	nongs  map[int]*nong.Nongs
}

// Open creates the manifest directory when absent and loads every per-ID
// file in it. Files that fail to parse are quarantined by renaming them to
// <name>.bak; startup itself never fails on a corrupt file.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	logger = logging.NewComponentLogger(logger, "manifest")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nong.Wrap(nong.ErrIO, "open", fmt.Sprintf("create manifest directory %q", dir), err)
	}

	s := &Store{
		dir:    dir,
		logger: logger,
		nongs:  make(map[int]*nong.Nongs),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nong.Wrap(nong.ErrIO, "open", fmt.Sprintf("read manifest directory %q", dir), err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		stem := strings.TrimSuffix(entry.Name(), ".json")
		id, err := strconv.Atoi(stem)
		if err != nil {
			// Not one of ours; leave it alone.
			continue
		}

		aggregate, err := s.loadFile(path, id)
		if err != nil {
			s.logger.Error("failed to read manifest file, quarantining",
				logging.String("file", entry.Name()),
				logging.Error(err))
			s.quarantine(path)
			continue
		}

		if _, exists := s.nongs[id]; exists {
			s.logger.Warn("duplicate song ID across manifest files, quarantining",
				logging.SongID(id),
				logging.String("file", entry.Name()))
			s.quarantine(path)
			continue
		}
		s.nongs[id] = aggregate
	}

	s.logger.Info("manifest loaded", logging.Int("song_count", len(s.nongs)))
	return s, nil
}

func (s *Store) loadFile(path string, id int) (*nong.Nongs, error) {
	if id == 0 {
		return nil, nong.Wrap(nong.ErrParse, "load", fmt.Sprintf("invalid filename %q", filepath.Base(path)), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nong.Wrap(nong.ErrIO, "load", fmt.Sprintf("read %q", filepath.Base(path)), err)
	}

	aggregate, err := Decode(id, data, s.logger)
	if err != nil {
		return nil, err
	}
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	return aggregate, nil
}

func (s *Store) quarantine(path string) {
	backup := path + ".bak"
	if err := os.Rename(path, backup); err != nil {
		s.logger.Error("failed to quarantine manifest file",
			logging.String("file", filepath.Base(path)),
			logging.Error(err))
	}
}

// Dir returns the manifest directory the store owns.
func (s *Store) Dir() string { return s.dir }

// Get returns the aggregate for a song ID.
func (s *Store) Get(id int) (*nong.Nongs, bool) {
	n, ok := s.nongs[id]
	return n, ok
}

// Insert registers a freshly created aggregate. Inserting over an existing
// ID is a programming error and is rejected.
func (s *Store) Insert(n *nong.Nongs) error {
	if _, exists := s.nongs[n.SongID()]; exists {
		return nong.Wrap(nong.ErrInvariant, "insert",
			fmt.Sprintf("song %d already present", n.SongID()), nil)
	}
	s.nongs[n.SongID()] = n
	return nil
}

// Count returns the number of known song IDs.
func (s *Store) Count() int { return len(s.nongs) }

// IDs returns every known song ID in ascending order.
func (s *Store) IDs() []int {
	ids := make([]int, 0, len(s.nongs))
	for id := range s.nongs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Save commits a single aggregate to <dir>/<songID>.json atomically.
func (s *Store) Save(n *nong.Nongs) error {
	data, err := Encode(n)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nong.Wrap(nong.ErrIO, "save", fmt.Sprintf("create manifest directory %q", s.dir), err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%d.json", n.SongID()))
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return nong.Wrap(nong.ErrIO, "save", fmt.Sprintf("song %d", n.SongID()), err)
	}
	return nil
}

// SaveAll commits every aggregate, stopping at the first failure.
func (s *Store) SaveAll() error {
	for _, id := range s.IDs() {
		if err := s.Save(s.nongs[id]); err != nil {
			return err
		}
	}
	return nil
}
