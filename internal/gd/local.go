package gd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"jukebox/internal/events"
	"jukebox/internal/logging"
)

// LocalClient implements Client against the host's on-disk layout. Song
// metadata comes from an in-memory table seeded by the caller, backed by
// the persistent cache. Fetch requests are queued and answered on the next
// DispatchPending call, preserving the host's deliver-later event model.
type LocalClient struct {
	writableDir string
	cache       *Cache
	bus         *events.Bus
	logger      *slog.Logger

	known   map[int]SongInfo
	pending []int
}

// NewLocalClient builds a client rooted at the host's writable directory.
func NewLocalClient(writableDir string, cache *Cache, bus *events.Bus, logger *slog.Logger) *LocalClient {
	return &LocalClient{
		writableDir: writableDir,
		cache:       cache,
		bus:         bus,
		logger:      logging.NewComponentLogger(logger, "gd"),
		known:       make(map[int]SongInfo),
	}
}

// PathForSong returns where the host stores downloaded audio for a user
// song ID.
func (c *LocalClient) PathForSong(id int) string {
	return filepath.Join(c.writableDir, fmt.Sprintf("%d.mp3", id))
}

// AudioFilename returns the resource filename of a built-in track.
func (c *LocalClient) AudioFilename(id int) string {
	return BuiltinAudioFilename(id)
}

// Info returns metadata for a song ID from the in-memory table, falling
// back to the persistent cache.
func (c *LocalClient) Info(id int) (SongInfo, bool) {
	if info, ok := c.known[id]; ok {
		return info, true
	}
	if info, ok := c.cache.Lookup(id); ok {
		c.known[id] = info
		return info, true
	}
	return SongInfo{}, false
}

// SetInfo seeds metadata for a song ID and persists it to the cache.
func (c *LocalClient) SetInfo(info SongInfo) {
	c.known[info.ID] = info
	if err := c.cache.Store(info); err != nil {
		c.logger.Error("failed to persist song info",
			logging.SongID(info.ID), logging.Error(err))
	}
}

// RequestSongInfo queues a metadata fetch for a song ID. The answer is
// published on the next DispatchPending call.
func (c *LocalClient) RequestSongInfo(id int) {
	c.pending = append(c.pending, id)
	c.logger.Debug("queued song info request", logging.SongID(id))
}

// ClearSong drops both the in-memory and persisted metadata for a song ID.
func (c *LocalClient) ClearSong(id int) {
	delete(c.known, id)
	if err := c.cache.Remove(id); err != nil {
		c.logger.Error("failed to clear cached song info",
			logging.SongID(id), logging.Error(err))
	}
}

// PendingCount returns the number of queued fetch requests.
func (c *LocalClient) PendingCount() int { return len(c.pending) }

// DispatchPending answers every queued fetch request in order: a
// SongInfoFetched event when the metadata is known, a SongError otherwise.
func (c *LocalClient) DispatchPending() {
	queue := c.pending
	c.pending = nil

	for _, id := range queue {
		info, ok := c.Info(id)
		if !ok {
			c.bus.Publish(events.SongError{
				Message: fmt.Sprintf("failed to fetch song info for %d", id),
			})
			continue
		}
		c.bus.Publish(events.SongInfoFetched{
			GDSongID: info.ID,
			Name:     info.Name,
			Artist:   info.Artist,
		})
	}
}

var _ Client = (*LocalClient)(nil)
