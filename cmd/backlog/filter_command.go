package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"backlog/internal/backlog"
	"backlog/internal/catalog"
)

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var (
		search          string
		platform        string
		storefront      string
		clearPlatform   bool
		clearStorefront bool
		reset           bool
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show or change the saved list filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch backlog.FilterPatch
			if cmd.Flags().Changed("search") {
				patch.Search = &search
			}
			if platform != "" {
				p, ok := catalog.ParsePlatform(platform)
				if !ok {
					return fmt.Errorf("unknown platform %q", platform)
				}
				patch.Platform = &p
			}
			if storefront != "" {
				s, ok := catalog.ParseStorefront(storefront)
				if !ok {
					return fmt.Errorf("unknown storefront %q", storefront)
				}
				patch.Storefront = &s
			}
			patch.ClearPlatform = clearPlatform
			patch.ClearStorefront = clearStorefront

			return ctx.withStore(cmd, func(store *backlog.Store) error {
				var err error
				if reset {
					err = store.ResetFilter(cmd.Context())
				} else {
					err = store.UpdateFilter(cmd.Context(), patch)
				}
				if err != nil {
					return err
				}
				printFilter(cmd, store.Filter(), catalog.PlatformsOf(store.Games()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive name search (empty string clears it)")
	cmd.Flags().StringVar(&platform, "platform", "", "Restrict to a platform")
	cmd.Flags().StringVar(&storefront, "storefront", "", "Restrict to a storefront")
	cmd.Flags().BoolVar(&clearPlatform, "clear-platform", false, "Remove the platform restriction")
	cmd.Flags().BoolVar(&clearStorefront, "clear-storefront", false, "Remove the storefront restriction")
	cmd.Flags().BoolVar(&reset, "reset", false, "Remove every restriction")
	cmd.MarkFlagsMutuallyExclusive("platform", "clear-platform")
	cmd.MarkFlagsMutuallyExclusive("storefront", "clear-storefront")
	return cmd
}

func printFilter(cmd *cobra.Command, f catalog.Filter, available []catalog.Platform) {
	out := cmd.OutOrStdout()
	if f.IsZero() {
		fmt.Fprintln(out, "Filter: none")
	} else {
		fmt.Fprintln(out, "Filter:")
		if f.Search != "" {
			fmt.Fprintf(out, "  Search:     %q\n", f.Search)
		}
		if f.Platform != nil {
			fmt.Fprintf(out, "  Platform:   %s\n", *f.Platform)
		}
		if f.Storefront != nil {
			fmt.Fprintf(out, "  Storefront: %s\n", f.Storefront.Info().Title)
		}
	}
	if len(available) > 0 {
		names := make([]string, len(available))
		for i, p := range available {
			names[i] = string(p)
		}
		fmt.Fprintf(out, "Platforms in catalog: %s\n", strings.Join(names, ", "))
	}
}
