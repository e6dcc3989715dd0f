// Package manager is the façade over the manifest core: startup and
// migration, song ID initialization against the host, aggregate mutations
// with per-ID commits, and the size reporting surface.
package manager
