// Package gd adapts the host game's song surface: path resolution for
// downloaded and built-in audio, cached song metadata, and the
// fire-and-forget fetch requests whose results arrive as bus events.
package gd
