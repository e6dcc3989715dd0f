// Command jukebox manages a library of replacement songs for Geometry
// Dash: per-song manifests, local and index-provided candidates, and the
// active selection the game plays.
package main
