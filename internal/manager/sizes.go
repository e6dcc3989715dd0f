package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"jukebox/internal/logging"
)

// FormattedSize returns the size of a file as megabytes with three
// significant digits, or "N/A" when the file cannot be read.
func FormattedSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "N/A"
	}
	return formatMB(info.Size())
}

func formatMB(bytes int64) string {
	mb := float64(bytes) / 1e6
	return strconv.FormatFloat(mb, 'g', 3, 64) + "MB"
}

// MultiAssetSizes totals the active audio for the given song IDs plus the
// named sound effects, both comma-separated ID lists. Path strings are
// snapshotted synchronously; the stats run on a background goroutine.
// Missing files contribute zero. The result channel yields one formatted
// total, or closes without a value when ctx is cancelled. progress, when
// non-nil, receives a fraction in [0, 1] after every stat.
func (m *Manager) MultiAssetSizes(ctx context.Context, songs, sfx string, progress chan<- float64) <-chan string {
	assets := m.assetPaths(songs, sfx)

	result := make(chan string, 1)
	go func() {
		defer close(result)
		if progress != nil {
			defer close(progress)
		}

		var total int64
		for i, candidates := range assets {
			select {
			case <-ctx.Done():
				m.logger.Debug("size task cancelled",
					logging.Int("stats_done", i), logging.Int("stats_total", len(assets)))
				return
			default:
			}

			for _, path := range candidates {
				if info, err := os.Stat(path); err == nil {
					total += info.Size()
					break
				}
			}
			if progress != nil {
				// The caller may stop draining after cancelling; never
				// block on a dead progress channel.
				select {
				case progress <- float64(i+1) / float64(len(assets)):
				case <-ctx.Done():
					m.logger.Debug("size task cancelled",
						logging.Int("stats_done", i+1), logging.Int("stats_total", len(assets)))
					return
				}
			}
		}
		result <- formatMB(total)
	}()
	return result
}

// assetPaths resolves the CSV inputs to candidate file locations, tried in
// order until one exists. Songs use the active entry's path when the ID is
// known, the host's download location otherwise. Sound effects live under
// the game's sfx resources, falling back to the writable root.
func (m *Manager) assetPaths(songs, sfx string) [][]string {
	var assets [][]string

	for _, field := range strings.Split(songs, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		if aggregate, ok := m.GetNongs(id); ok {
			active := aggregate.Active()
			if active.Path != "" {
				assets = append(assets, []string{m.ResolvePath(active)})
				continue
			}
		}
		assets = append(assets, []string{m.host.PathForSong(id)})
	}

	for _, field := range strings.Split(sfx, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		name := fmt.Sprintf("s%s.ogg", field)
		assets = append(assets, []string{
			filepath.Join(m.cfg.GDResources(), "sfx", name),
			filepath.Join(m.cfg.Paths.GDWritableDir, name),
		})
	}

	return assets
}
