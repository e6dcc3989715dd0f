package manager

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"jukebox/internal/config"
	"jukebox/internal/events"
	"jukebox/internal/gd"
	"jukebox/internal/index"
	"jukebox/internal/logging"
	"jukebox/internal/manifest"
	"jukebox/internal/nong"
	"jukebox/internal/textutil"
)

// Manager owns the manifest store for the lifetime of the process. All
// operations except the size background task run on the caller's goroutine;
// mutations commit the affected song ID before returning.
type Manager struct {
	cfg       *config.Config
	logger    *slog.Logger
	bus       *events.Bus
	host      gd.Client
	registrar index.Registrar

	store       *manifest.Store
	subs        []events.SubscriptionID
	initialized bool
}

// New wires a manager. Init must be called before any other operation.
func New(cfg *config.Config, host gd.Client, bus *events.Bus, registrar index.Registrar, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "manager"),
		bus:       bus,
		host:      host,
		registrar: registrar,
	}
}

// Init performs the startup procedure once: directory creation, manifest
// scan, v2 migration, and event listener binding. Subsequent calls are
// no-ops. A migration failure is logged and does not fail Init.
func (m *Manager) Init() error {
	if m.initialized {
		return nil
	}

	if err := m.cfg.EnsureDirectories(); err != nil {
		return nong.Wrap(nong.ErrIO, "init", "ensure directories", err)
	}

	store, err := manifest.Open(m.cfg.ManifestDir(), m.logger)
	if err != nil {
		return err
	}
	m.store = store

	if err := manifest.MigrateV2(store, m.cfg.LegacyManifestPath(), m.logger); err != nil {
		m.logger.Error("legacy manifest migration failed", logging.Error(err))
	}

	m.subs = append(m.subs,
		m.bus.Subscribe(events.TypeSongInfoFetched, m.onSongInfoFetched),
		m.bus.Subscribe(events.TypeSongError, m.onSongError),
	)

	m.initialized = true
	m.logger.Info("manager initialized", logging.Int("song_count", store.Count()))
	return nil
}

// Close releases the event subscriptions. The manifest directory stays as
// last committed.
func (m *Manager) Close() {
	for _, id := range m.subs {
		m.bus.Unsubscribe(id)
	}
	m.subs = nil
	m.initialized = false
}

// Initialized reports whether Init has completed.
func (m *Manager) Initialized() bool { return m.initialized }

func (m *Manager) onSongInfoFetched(e events.Event) events.Result {
	info, ok := e.(events.SongInfoFetched)
	if !ok {
		return events.Propagate
	}

	aggregate, ok := m.store.Get(info.GDSongID)
	if !ok {
		// Nothing to update; consume the event.
		return events.Stop
	}
	if !aggregate.SetDefaultInfo(info.Name, info.Artist) {
		return events.Stop
	}
	if aggregate.Default().IsUnknown() || aggregate.Default().Path == "" {
		aggregate.SetDefaultPath(m.host.PathForSong(info.GDSongID))
	}
	if err := m.store.Save(aggregate); err != nil {
		m.logger.Error("failed to commit refreshed default metadata",
			logging.SongID(info.GDSongID), logging.Error(err))
	}
	m.logger.Debug("default metadata refreshed",
		logging.SongID(info.GDSongID),
		logging.String("name", info.Name))
	return events.Propagate
}

func (m *Manager) onSongError(e events.Event) events.Result {
	if songError, ok := e.(events.SongError); ok {
		m.logger.Warn("host reported song error", logging.String("message", songError.Message))
	}
	return events.Propagate
}

// GetNongs returns the aggregate for a song ID if one exists.
func (m *Manager) GetNongs(id int) (*nong.Nongs, bool) {
	if !m.initialized {
		return nil, false
	}
	return m.store.Get(id)
}

// AdjustSongID maps a host song ID to its manifest key. Built-in tracks
// occupy the negative key space -id-1 so they never collide with user IDs.
func AdjustSongID(id int, isRobtop bool) int {
	if isRobtop && id >= 0 {
		return -id - 1
	}
	return id
}

// InitSongID ensures an aggregate exists for a song ID. For built-in
// tracks the default points into the game's Resources directory. For user
// songs with no metadata anywhere, a placeholder aggregate is inserted and
// a server fetch requested; the SongInfoFetched event fills it in later.
func (m *Manager) InitSongID(info *gd.SongInfo, id int, isRobtop bool) {
	if !m.initialized {
		return
	}

	key := AdjustSongID(id, isRobtop)
	if _, exists := m.store.Get(key); exists {
		return
	}

	var def nong.Entry
	placeholder := false

	switch {
	case isRobtop && info == nil:
		// The host always knows its own built-in tracks.
		m.logger.Error("built-in track has no host song object", logging.SongID(id))
		return
	case isRobtop:
		trackID := id
		if trackID < 0 {
			trackID = -trackID - 1
		}
		path := filepath.Join(m.cfg.GDResources(), m.host.AudioFilename(trackID))
		def = nong.NewLocal(nong.NewMetadata(key, info.Name, info.Artist), path)
	default:
		resolved := info
		if resolved == nil {
			if cached, ok := m.host.Info(id); ok {
				resolved = &cached
			}
		}
		if resolved == nil {
			m.host.RequestSongInfo(id)
			def = nong.NewUnknownLocal(key)
			placeholder = true
		} else {
			def = nong.NewLocal(nong.NewMetadata(key, resolved.Name, resolved.Artist), m.host.PathForSong(id))
		}
	}

	aggregate, err := nong.New(key, def)
	if err != nil {
		m.logger.Error("failed to build aggregate", logging.SongID(key), logging.Error(err))
		return
	}
	if err := m.store.Insert(aggregate); err != nil {
		m.logger.Error("failed to insert aggregate", logging.SongID(key), logging.Error(err))
		return
	}

	if placeholder {
		// Committed once the fetch result arrives.
		m.logger.Debug("inserted placeholder aggregate", logging.SongID(key))
		return
	}

	if err := m.store.Save(aggregate); err != nil {
		m.logger.Error("failed to commit new aggregate", logging.SongID(key), logging.Error(err))
	}
	m.registrar.Register(aggregate)
}

func (m *Manager) requireAggregate(operation string, id int) (*nong.Nongs, error) {
	if !m.initialized {
		return nil, nong.Wrap(nong.ErrNotInitialized, operation, "manager not initialized", nil)
	}
	aggregate, ok := m.store.Get(id)
	if !ok {
		return nil, nong.Wrap(nong.ErrNotInitialized, operation, fmt.Sprintf("song %d", id), nil)
	}
	return aggregate, nil
}

// AddNongs merges candidates into the aggregate for their song ID and
// commits it.
func (m *Manager) AddNongs(other *nong.Nongs) error {
	aggregate, err := m.requireAggregate("add", other.SongID())
	if err != nil {
		return err
	}
	if err := aggregate.Merge(other); err != nil {
		return err
	}
	return m.store.Save(aggregate)
}

// SetActiveSong selects an entry for playback and commits.
func (m *Manager) SetActiveSong(id int, uniqueID string) error {
	aggregate, err := m.requireAggregate("set active", id)
	if err != nil {
		return err
	}
	if err := aggregate.SetActive(uniqueID); err != nil {
		return err
	}
	return m.store.Save(aggregate)
}

// DeleteSong removes a candidate, unlinks its audio file when it lives
// under the owned nongs directory, and commits. Unlink failures are logged
// but do not fail the delete.
func (m *Manager) DeleteSong(id int, uniqueID string) error {
	aggregate, err := m.requireAggregate("delete", id)
	if err != nil {
		return err
	}
	removed, err := aggregate.Remove(uniqueID)
	if err != nil {
		return err
	}
	m.unlinkOwned(removed.Path)
	return m.store.Save(aggregate)
}

// DeleteSongAudio drops a local candidate's audio file while keeping its
// metadata, then commits.
func (m *Manager) DeleteSongAudio(id int, uniqueID string) error {
	aggregate, err := m.requireAggregate("delete audio", id)
	if err != nil {
		return err
	}
	path, err := aggregate.ClearAudio(uniqueID)
	if err != nil {
		return err
	}
	m.unlinkOwned(path)
	return m.store.Save(aggregate)
}

// DeleteAllSongs removes every candidate for a song ID, unlinks owned
// audio, resets the selection to the default, and commits.
func (m *Manager) DeleteAllSongs(id int) error {
	aggregate, err := m.requireAggregate("delete all", id)
	if err != nil {
		return err
	}
	for _, removed := range aggregate.RemoveAll() {
		m.unlinkOwned(removed.Path)
	}
	return m.store.Save(aggregate)
}

// unlinkOwned deletes an audio file only when it sits under the nongs
// directory. Game-owned and user-supplied paths are never touched.
func (m *Manager) unlinkOwned(path string) {
	if path == "" {
		return
	}
	owned := m.cfg.NongsDir() + string(filepath.Separator)
	if !strings.HasPrefix(filepath.Clean(path), owned) {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		m.logger.Warn("failed to unlink audio file",
			logging.Path(path), logging.Error(err))
	}
}

// SaveNongs commits the given song IDs, or every aggregate when none are
// given.
func (m *Manager) SaveNongs(ids ...int) error {
	if !m.initialized {
		return nong.Wrap(nong.ErrNotInitialized, "save", "manager not initialized", nil)
	}
	if len(ids) == 0 {
		return m.store.SaveAll()
	}
	for _, id := range ids {
		aggregate, err := m.requireAggregate("save", id)
		if err != nil {
			return err
		}
		if err := m.store.Save(aggregate); err != nil {
			return err
		}
	}
	return nil
}

// GenerateSongFilePath returns <save_root>/nongs/<name>.<ext>, creating the
// directory when absent. Names are sanitized for filesystem use; an empty
// name gets a random one. The final path is not checked for existence.
func (m *Manager) GenerateSongFilePath(extension, name string) (string, error) {
	dir := m.cfg.NongsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nong.Wrap(nong.ErrIO, "generate path", fmt.Sprintf("create %q", dir), err)
	}
	name = textutil.SanitizeFileName(name)
	if name == "" {
		name = uuid.NewString()
	}
	extension = strings.TrimPrefix(extension, ".")
	return filepath.Join(dir, name+"."+extension), nil
}

// RefetchDefault clears the host's cached metadata for a user song and
// requests a fresh fetch. The result arrives as a SongInfoFetched event.
func (m *Manager) RefetchDefault(id int) error {
	if _, err := m.requireAggregate("refetch", id); err != nil {
		return err
	}
	if id < 0 {
		return nong.Wrap(nong.ErrInvariant, "refetch", "built-in tracks have no server metadata", nil)
	}
	m.host.ClearSong(id)
	m.host.RequestSongInfo(id)
	return nil
}

// ResolvePath expands a manifest-relative local path against the game's
// writable root. Absolute paths pass through unchanged.
func (m *Manager) ResolvePath(e nong.Entry) string {
	if !e.PathRelative() {
		return e.Path
	}
	return filepath.Join(m.cfg.Paths.GDWritableDir, strings.TrimPrefix(e.Path, nong.SongsPrefix))
}

// IDs returns every known song ID in ascending order.
func (m *Manager) IDs() []int {
	if !m.initialized {
		return nil
	}
	return m.store.IDs()
}

// StoredIDCount returns the number of known song IDs.
func (m *Manager) StoredIDCount() int {
	if !m.initialized {
		return 0
	}
	return m.store.Count()
}

// ManifestVersion returns the on-disk manifest format version.
func (m *Manager) ManifestVersion() int { return manifest.CurrentVersion }
