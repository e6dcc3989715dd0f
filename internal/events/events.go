// Package events carries notifications between the song-info layer and the
// manager. Delivery is synchronous: Publish runs every handler on the
// calling goroutine before returning.
package events

// Type identifies an event kind on the bus.
type Type string

const (
	// TypeSongInfoFetched fires when song metadata arrives for a song ID.
	TypeSongInfoFetched Type = "song-info-fetched"
	// TypeSongError fires when the host reports a song download or
	// metadata failure.
	TypeSongError Type = "song-error"
)

// Event is implemented by every payload published on the bus.
type Event interface {
	Type() Type
}

// SongInfoFetched carries freshly resolved metadata for a song ID.
type SongInfoFetched struct {
	GDSongID int
	Name     string
	Artist   string
}

func (SongInfoFetched) Type() Type { return TypeSongInfoFetched }

// SongError reports a failure message from the host's song pipeline.
type SongError struct {
	Message string
}

func (SongError) Type() Type { return TypeSongError }

// Result tells the bus whether to keep delivering an event after a handler
// has seen it.
type Result int

const (
	// Propagate lets the remaining handlers see the event.
	Propagate Result = iota
	// Stop consumes the event; handlers subscribed after this one are
	// skipped.
	Stop
)

// Handler processes one event and decides whether it propagates further.
type Handler func(Event) Result
