package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"jukebox/internal/nong"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <song-id>",
		Short: "Show every entry stored for a song ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSongID(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(s *session) error {
				aggregate, ok := s.mgr.GetNongs(id)
				if !ok {
					return fmt.Errorf("song %d is not in the manifest", id)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Song %d, active %s\n", id, aggregate.ActiveID())

				entries := append([]nong.Entry{aggregate.Default()}, aggregate.Candidates()...)
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					marker := ""
					if e.Meta.UniqueID == aggregate.ActiveID() {
						marker = "*"
					}
					location := e.Path
					size := "-"
					switch e.Kind {
					case nong.KindLocal:
						if e.Path != "" {
							if info, err := statEntry(s, e); err == nil {
								size = humanize.Bytes(uint64(info.Size()))
							}
						}
					default:
						location = e.URL
					}
					rows = append(rows, []string{
						marker,
						e.Meta.UniqueID,
						kindLabel(e.Kind),
						e.Meta.Name,
						e.Meta.Artist,
						strconv.Itoa(e.Meta.StartOffset),
						size,
						location,
					})
				}

				fmt.Fprintln(out, renderTable(
					[]string{"", "Unique ID", "Kind", "Name", "Artist", "Offset", "Size", "Location"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}
