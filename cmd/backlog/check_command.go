package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"backlog/internal/backlog"
	"backlog/internal/catalog"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the catalog, metadata and status index agree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				counts := store.Index().Counts()
				rows := make([][]string, 0, len(catalog.DisplayOrder)+1)
				for _, s := range catalog.DisplayOrder {
					rows = append(rows, []string{s.Title(), strconv.Itoa(counts[s])})
				}
				rows = append(rows, []string{"Total", strconv.Itoa(store.Len())})
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]string{"Status", "Games"}, rows, []columnAlignment{alignLeft, alignRight}))

				orphans := 0
				for slug := range store.Metadata() {
					if _, ok := store.Game(slug); !ok {
						orphans++
					}
				}
				if orphans > 0 {
					fmt.Fprintf(out, "%d metadata %s without a game (run `backlog prune` to drop them)\n", orphans, plural("entry", orphans))
				}
				if err := store.CheckConsistency(); err != nil {
					return fmt.Errorf("catalog inconsistent: %w", err)
				}
				fmt.Fprintln(out, "Catalog consistent")
				return nil
			})
		},
	}
}
