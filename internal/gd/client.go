package gd

import "fmt"

// SongInfo is the host's metadata for one song ID.
type SongInfo struct {
	ID     int
	Name   string
	Artist string
}

// Client is the host-facing song surface the manager consumes. Fetch
// results never come back through return values; they arrive later as
// SongInfoFetched or SongError events.
type Client interface {
	// PathForSong returns where the host stores the downloaded audio for
	// a user song ID.
	PathForSong(id int) string
	// AudioFilename returns the resource filename of a built-in track.
	AudioFilename(id int) string
	// Info returns cached metadata for a song ID when known.
	Info(id int) (SongInfo, bool)
	// RequestSongInfo asks the host to fetch metadata for a song ID.
	// Fire and forget.
	RequestSongInfo(id int)
	// ClearSong drops the host's cached state for a song ID.
	ClearSong(id int)
}

// builtinTracks maps built-in level track IDs to their resource filenames.
var builtinTracks = map[int]string{
	0:  "StereoMadness.mp3",
	1:  "BackOnTrack.mp3",
	2:  "Polargeist.mp3",
	3:  "DryOut.mp3",
	4:  "BaseAfterBase.mp3",
	5:  "CantLetGo.mp3",
	6:  "Jumper.mp3",
	7:  "TimeMachine.mp3",
	8:  "Cycles.mp3",
	9:  "xStep.mp3",
	10: "Clutterfunk.mp3",
	11: "TheoryOfEverything.mp3",
	12: "ElectromanAdventures.mp3",
	13: "Clubstep.mp3",
	14: "Electrodynamix.mp3",
	15: "HexagonForce.mp3",
	16: "BlastProcessing.mp3",
	17: "TheoryOfEverything2.mp3",
	18: "GeometricalDominator.mp3",
	19: "Deadlocked.mp3",
	20: "Fingerdash.mp3",
	21: "Dash.mp3",
}

// BuiltinAudioFilename resolves a built-in track ID to its resource
// filename, falling back to "<id>.mp3" for tracks added after this table.
func BuiltinAudioFilename(id int) string {
	if name, ok := builtinTracks[id]; ok {
		return name
	}
	return fmt.Sprintf("%d.mp3", id)
}
