// Package config loads, normalizes, and validates Jukebox configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every path
// the manifest core needs: the save root that owns the manifest and nongs
// directories, and the game's resource roots that are only ever read.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and canonical log formats.
package config
