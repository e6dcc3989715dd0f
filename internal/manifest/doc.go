// Package manifest persists Nongs aggregates as one JSON file per host
// song ID and migrates the legacy single-file v2 format.
//
// The Store owns the manifest directory and the in-memory map of
// aggregates. Startup enumerates <dir>/<songID>.json files, quarantines
// anything that fails to parse by renaming it to <name>.bak, and keeps the
// first successfully loaded aggregate per ID. Commits are per-ID and
// atomic: serialize, write to a temporary file, fsync, rename.
//
// Treat this package as the single source of truth for the on-disk format;
// format changes bump CurrentVersion in serde.go.
package manifest
