// Package nong defines the manifest core data model: song metadata, the
// Local/Youtube/Hosted audio entry variants, and the per-song-ID Nongs
// aggregate with its invariants.
//
// A Nongs aggregate owns one distinguished default entry (the host's
// original song) plus ordered candidate lists per variant, and tracks which
// entry is active. Every mutation either succeeds and preserves the
// aggregate invariants or fails with one of the sentinel errors in
// errors.go and leaves the aggregate untouched.
//
// The aggregate is purely in-memory; persistence lives in
// jukebox/internal/manifest.
package nong
