package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save [song-id]",
		Short: "Commit the manifest to disk",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(s *session) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					id, err := parseSongID(args[0])
					if err != nil {
						return err
					}
					if err := s.mgr.SaveNongs(id); err != nil {
						return err
					}
					fmt.Fprintf(out, "Saved song %d\n", id)
					return nil
				}
				if err := s.mgr.SaveNongs(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %d songs\n", s.mgr.StoredIDCount())
				return nil
			})
		},
	}
}
