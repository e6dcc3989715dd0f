package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jukebox/internal/fileutil"
	"jukebox/internal/nong"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var name string
	var artist string
	var offset int

	cmd := &cobra.Command{
		Use:   "add <song-id> <audio-file>",
		Short: "Copy a local audio file into the library as a candidate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSongID(args[0])
			if err != nil {
				return err
			}
			source := args[1]

			return ctx.withManager(func(s *session) error {
				aggregate, err := ensureAggregate(s, id)
				if err != nil {
					return err
				}

				if name == "" {
					name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
				}
				meta := nong.NewMetadata(id, name, artist)
				meta.StartOffset = offset

				extension := strings.TrimPrefix(filepath.Ext(source), ".")
				if extension == "" {
					extension = "mp3"
				}
				target, err := s.mgr.GenerateSongFilePath(extension, meta.UniqueID)
				if err != nil {
					return err
				}
				if err := fileutil.CopyFile(source, target); err != nil {
					return fmt.Errorf("copy audio file: %w", err)
				}

				if err := aggregate.Add(nong.NewLocal(meta, target)); err != nil {
					return err
				}
				if err := s.mgr.SaveNongs(id); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to song %d as %s\n", name, id, meta.UniqueID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Song name (defaults to the file name)")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist name")
	cmd.Flags().IntVar(&offset, "offset", 0, "Playback start offset in milliseconds")
	return cmd
}

func newAddURLCommand(ctx *commandContext) *cobra.Command {
	var name string
	var artist string
	var youtube bool
	var hosted bool

	cmd := &cobra.Command{
		Use:   "add-url <song-id> <url>",
		Short: "Reference an external song as a candidate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSongID(args[0])
			if err != nil {
				return err
			}
			url := args[1]

			if youtube == hosted {
				return fmt.Errorf("pass exactly one of --youtube or --hosted")
			}
			if name == "" {
				return fmt.Errorf("--name is required for URL entries")
			}

			return ctx.withManager(func(s *session) error {
				aggregate, err := ensureAggregate(s, id)
				if err != nil {
					return err
				}

				meta := nong.NewMetadata(id, name, artist)
				entry := nong.NewYoutube(meta, url)
				if hosted {
					entry = nong.NewHosted(meta, url)
				}

				if err := aggregate.Add(entry); err != nil {
					return err
				}
				if err := s.mgr.SaveNongs(id); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to song %d as %s\n", name, id, meta.UniqueID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Song name")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist name")
	cmd.Flags().BoolVar(&youtube, "youtube", false, "The URL references a Youtube video")
	cmd.Flags().BoolVar(&hosted, "hosted", false, "The URL references hosted audio")
	return cmd
}

// ensureAggregate returns the aggregate for a song ID, initializing it
// first when the ID has never been seen. Initialization may leave a
// placeholder default; the queued metadata fetch is answered immediately
// so the CLI does not exit with "Unknown" on screen.
func ensureAggregate(s *session, id int) (*nong.Nongs, error) {
	if aggregate, ok := s.mgr.GetNongs(id); ok {
		return aggregate, nil
	}
	s.mgr.InitSongID(nil, id, false)
	s.host.DispatchPending()

	aggregate, ok := s.mgr.GetNongs(id)
	if !ok {
		return nil, fmt.Errorf("song %d could not be initialized", id)
	}
	return aggregate, nil
}
