// Package index links the manifest to external song indexes. The manager
// registers every aggregate it creates so index integrations can offer
// downloads for the IDs the user actually plays.
package index

import (
	"log/slog"

	"jukebox/internal/logging"
	"jukebox/internal/nong"
)

// Registrar receives newly created aggregates.
type Registrar interface {
	Register(n *nong.Nongs)
}

// LogRegistrar is the default Registrar; it records registrations and does
// nothing else.
type LogRegistrar struct {
	logger *slog.Logger
}

// NewLogRegistrar builds a registrar that only logs.
func NewLogRegistrar(logger *slog.Logger) *LogRegistrar {
	return &LogRegistrar{logger: logging.NewComponentLogger(logger, "index")}
}

// Register records that an aggregate exists for a song ID.
func (r *LogRegistrar) Register(n *nong.Nongs) {
	r.logger.Debug("registered song with index", logging.SongID(n.SongID()))
}

var _ Registrar = (*LogRegistrar)(nil)
