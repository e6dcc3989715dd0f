package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSizesCommand(ctx *commandContext) *cobra.Command {
	var songs string
	var sfx string
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "Total the on-disk size of songs and sound effects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if songs == "" && sfx == "" {
				return fmt.Errorf("pass --songs and/or --sfx with comma-separated IDs")
			}

			return ctx.withManager(func(s *session) error {
				out := cmd.OutOrStdout()

				var progress chan float64
				if showProgress {
					progress = make(chan float64, 16)
				}
				result := s.mgr.MultiAssetSizes(cmd.Context(), songs, sfx, progress)

				if progress != nil {
					for fraction := range progress {
						fmt.Fprintf(out, "\r%3.0f%%", fraction*100)
					}
					fmt.Fprintln(out)
				}

				total, ok := <-result
				if !ok {
					return cmd.Context().Err()
				}
				fmt.Fprintf(out, "Total size: %s\n", total)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&songs, "songs", "", "Comma-separated song IDs")
	cmd.Flags().StringVar(&sfx, "sfx", "", "Comma-separated sound effect IDs")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Print progress while totalling")
	return cmd
}
