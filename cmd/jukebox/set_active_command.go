package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetActiveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-active <song-id> <unique-id>",
		Short: "Select which entry the game plays for a song ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSongID(args[0])
			if err != nil {
				return err
			}
			uniqueID := args[1]

			return ctx.withManager(func(s *session) error {
				if err := s.mgr.SetActiveSong(id, uniqueID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Song %d now plays %s\n", id, uniqueID)
				return nil
			})
		},
	}
}
