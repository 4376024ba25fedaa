package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"backlog/internal/backlog"
	"backlog/internal/importer"
	"backlog/internal/sources"
	"backlog/internal/sources/heroic"
	"backlog/internal/sources/steam"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import owned games from a storefront",
	}
	cmd.AddCommand(newImportSteamCommand(ctx))
	cmd.AddCommand(newImportHeroicCommand(ctx))
	return cmd
}

func newImportSteamCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "steam <steam-id>",
		Short: "Import the games owned by a Steam account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireSteam(); err != nil {
				return err
			}
			client, err := steam.New(cfg.Steam.APIKey, cfg.Steam.BaseURL,
				steam.WithTimeout(time.Duration(cfg.Steam.TimeoutSeconds)*time.Second),
				steam.WithIgnoreList(ctx.ignoreList()),
			)
			if err != nil {
				return err
			}
			return ctx.runImport(cmd, steam.SourceName, client.Adapter(args[0]))
		},
	}
}

func newImportHeroicCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "heroic <library.json>...",
		Short: "Import games from Heroic launcher library files",
		Long: "Import games from Heroic launcher library files (Epic, GOG and Amazon).\n" +
			"All files must parse before anything is added.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runImport(cmd, heroic.SourceName, heroic.Adapter(args, ctx.ignoreList()))
		},
	}
}

func (c *commandContext) runImport(cmd *cobra.Command, source string, adapter sources.Adapter) error {
	return c.withStore(cmd, func(store *backlog.Store) error {
		imp := importer.New(store, c.notifier(), c.ensureLogger())
		report, err := imp.Run(cmd.Context(), source, adapter)
		if err != nil && !errors.Is(err, backlog.ErrPersist) {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, report.Message())
		for _, g := range report.Added {
			fmt.Fprintf(out, "  + %s\n", g.Name)
		}
		return err
	})
}
