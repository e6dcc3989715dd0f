package gd

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"jukebox/internal/logging"
)

// Cache persists song metadata in SQLite so IDs resolved in one run do not
// need a server fetch in the next. An empty path disables the cache; every
// operation becomes a no-op.
type Cache struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// OpenCache connects to (or creates) the song-info database at path.
func OpenCache(path string, logger *slog.Logger) (*Cache, error) {
	logger = logging.NewComponentLogger(logger, "songinfo-cache")

	if path == "" {
		logger.Debug("song info cache disabled")
		return &Cache{logger: logger}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS song_info (
        gd_id INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        artist TEXT NOT NULL,
        cached_at TEXT NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create song_info table: %w", err)
	}

	return &Cache{db: db, path: path, logger: logger}, nil
}

// Lookup returns the cached metadata for a song ID if present.
func (c *Cache) Lookup(id int) (SongInfo, bool) {
	if c == nil || c.db == nil {
		return SongInfo{}, false
	}

	var info SongInfo
	err := c.db.QueryRow(
		`SELECT gd_id, name, artist FROM song_info WHERE gd_id = ?`, id,
	).Scan(&info.ID, &info.Name, &info.Artist)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.logger.Error("song info lookup failed",
				logging.SongID(id), logging.Error(err))
		}
		return SongInfo{}, false
	}
	return info, true
}

// Store inserts or replaces the cached metadata for a song ID.
func (c *Cache) Store(info SongInfo) error {
	if c == nil || c.db == nil {
		return nil
	}

	_, err := c.db.Exec(
		`INSERT INTO song_info (gd_id, name, artist, cached_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(gd_id) DO UPDATE SET
             name = excluded.name,
             artist = excluded.artist,
             cached_at = excluded.cached_at`,
		info.ID, info.Name, info.Artist, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store song info for %d: %w", info.ID, err)
	}

	c.logger.Debug("cached song info",
		logging.SongID(info.ID),
		logging.String("name", info.Name),
		logging.String("artist", info.Artist))
	return nil
}

// Remove drops the cached metadata for a song ID. Unknown IDs are a no-op.
func (c *Cache) Remove(id int) error {
	if c == nil || c.db == nil {
		return nil
	}
	if _, err := c.db.Exec(`DELETE FROM song_info WHERE gd_id = ?`, id); err != nil {
		return fmt.Errorf("remove song info for %d: %w", id, err)
	}
	return nil
}

// Count returns the number of cached entries.
func (c *Cache) Count() (int, error) {
	if c == nil || c.db == nil {
		return 0, nil
	}
	var count int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM song_info`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count song info rows: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
