package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var audioOnly bool

	cmd := &cobra.Command{
		Use:   "delete <song-id> [unique-id]",
		Short: "Delete candidates for a song ID",
		Long: `Delete removes a candidate entry and unlinks its audio file when the
file lives inside the library. With --audio only the audio file is dropped
and the entry's metadata stays. With --all every candidate is removed and
the selection resets to the game's original song.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSongID(args[0])
			if err != nil {
				return err
			}

			return ctx.withManager(func(s *session) error {
				out := cmd.OutOrStdout()
				switch {
				case all:
					if err := s.mgr.DeleteAllSongs(id); err != nil {
						return err
					}
					fmt.Fprintf(out, "Removed every candidate for song %d\n", id)
				case len(args) < 2:
					return fmt.Errorf("a unique ID is required unless --all is given")
				case audioOnly:
					if err := s.mgr.DeleteSongAudio(id, args[1]); err != nil {
						return err
					}
					fmt.Fprintf(out, "Dropped audio for %s on song %d\n", args[1], id)
				default:
					if err := s.mgr.DeleteSong(id, args[1]); err != nil {
						return err
					}
					fmt.Fprintf(out, "Removed %s from song %d\n", args[1], id)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every candidate for the song ID")
	cmd.Flags().BoolVar(&audioOnly, "audio", false, "Only drop the audio file, keep the entry")
	return cmd
}
