package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every song ID in the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(s *session) error {
				out := cmd.OutOrStdout()
				ids := s.mgr.IDs()
				if len(ids) == 0 {
					fmt.Fprintln(out, "Manifest is empty")
					return nil
				}

				rows := make([][]string, 0, len(ids))
				for _, id := range ids {
					aggregate, ok := s.mgr.GetNongs(id)
					if !ok {
						continue
					}
					active := aggregate.Active()
					size := "-"
					if active.Path != "" {
						if info, err := statEntry(s, active); err == nil {
							size = humanize.Bytes(uint64(info.Size()))
						}
					}
					rows = append(rows, []string{
						strconv.Itoa(id),
						active.Meta.Name,
						active.Meta.Artist,
						kindLabel(active.Kind),
						strconv.Itoa(len(aggregate.Candidates())),
						size,
					})
				}

				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Active", "Artist", "Kind", "Candidates", "Size"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}
