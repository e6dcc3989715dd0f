package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refetch <song-id>",
		Short: "Refresh a song's default metadata from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSongID(args[0])
			if err != nil {
				return err
			}

			return ctx.withManager(func(s *session) error {
				if err := s.mgr.RefetchDefault(id); err != nil {
					return err
				}
				s.host.DispatchPending()

				aggregate, _ := s.mgr.GetNongs(id)
				def := aggregate.Default()
				fmt.Fprintf(cmd.OutOrStdout(), "Song %d default: %s by %s\n", id, def.Meta.Name, def.Meta.Artist)
				return nil
			})
		},
	}
}
