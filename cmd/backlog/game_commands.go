package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"backlog/internal/backlog"
	"backlog/internal/catalog"
)

// resolveSlug accepts a slug or a display name.
func resolveSlug(arg string) string {
	return catalog.Slugify(arg)
}

func lookupGame(store *backlog.Store, arg string) (catalog.Game, error) {
	slug := resolveSlug(arg)
	game, ok := store.Game(slug)
	if !ok {
		return catalog.Game{}, fmt.Errorf("%w: %s", backlog.ErrUnknownGame, arg)
	}
	return game, nil
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a game with its sources and your notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				game, err := lookupGame(store, args[0])
				if err != nil {
					return err
				}
				meta := store.MetadataFor(game.Slug)
				status := store.Status(game.Slug)
				if jsonOut {
					return writeJSON(cmd, struct {
						Game     catalog.Game         `json:"game"`
						Status   catalog.PlayStatus   `json:"status"`
						Metadata catalog.GameMetadata `json:"metadata"`
					}{game, status, meta})
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				statusText := status.Title()
				if colorize {
					if c := statusColor(status); c != "" {
						statusText = c + statusText + ansiReset
					}
				}
				fmt.Fprintf(out, "%s\n", game.Name)
				fmt.Fprintf(out, "  Slug:     %s\n", game.Slug)
				fmt.Fprintf(out, "  Status:   %s\n", statusText)
				fmt.Fprintf(out, "  Favorite: %s\n", yesNo(meta.Favorite()))
				if game.ReleaseDate != "" {
					fmt.Fprintf(out, "  Released: %s\n", game.ReleaseDate)
				}
				if note := meta.Note(); note != "" {
					fmt.Fprintf(out, "  Note:     %s\n", note)
				}
				if len(game.Sources) > 0 {
					rows := make([][]string, 0, len(game.Sources))
					for _, src := range game.Sources {
						rows = append(rows, []string{src.Storefront.Info().Title, string(src.Platform), src.LaunchURL()})
					}
					fmt.Fprintln(out, renderTable([]string{"Storefront", "Platform", "Launch"}, rows, nil))
				}
				if history := statusHistory(meta, time.Now()); len(history) > 0 {
					fmt.Fprintln(out, "  History:")
					for _, line := range history {
						fmt.Fprintf(out, "    %s\n", line)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <slug> <status>",
		Short: "Set the play status of a game",
		Long:  "Set the play status of a game. Status is one of: " + statusChoices(),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := catalog.ParsePlayStatus(strings.Join(args[1:], " "))
			if !ok {
				return fmt.Errorf("unknown play status %q (want one of %s)", strings.Join(args[1:], " "), statusChoices())
			}
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				game, err := lookupGame(store, args[0])
				if err != nil {
					return err
				}
				if err := store.SetGamePlayStatus(cmd.Context(), game.Slug, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", game.Name, status.Title())
				return nil
			})
		},
	}
}

func newFavoriteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <slug>",
		Short: "Toggle the favorite flag of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				game, err := lookupGame(store, args[0])
				if err != nil {
					return err
				}
				fav, err := store.ToggleFavorite(cmd.Context(), game.Slug)
				if err != nil {
					return err
				}
				if fav {
					fmt.Fprintf(cmd.OutOrStdout(), "%s added to favorites\n", game.Name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s removed from favorites\n", game.Name)
				}
				return nil
			})
		},
	}
}

func newNoteCommand(ctx *commandContext) *cobra.Command {
	var clearNote bool
	cmd := &cobra.Command{
		Use:   "note <slug> [text...]",
		Short: "Write a note for a game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if text == "" && !clearNote {
				return errors.New("note text is required (use --clear to remove the note)")
			}
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				game, err := lookupGame(store, args[0])
				if err != nil {
					return err
				}
				if err := store.SetSelectedGame(cmd.Context(), &game); err != nil {
					return err
				}
				if err := store.SetPendingNote(text); err != nil {
					return err
				}
				// Deselecting commits the note.
				if err := store.SetSelectedGame(cmd.Context(), nil); err != nil {
					return err
				}
				if text == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared note for %s\n", game.Name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Saved note for %s\n", game.Name)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearNote, "clear", false, "Remove the note")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Remove a game from the catalog (its metadata is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				slug := resolveSlug(args[0])
				removed, err := store.DeleteGame(cmd.Context(), slug)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("%w: %s", backlog.ErrUnknownGame, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", slug)
				return nil
			})
		},
	}
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every game from the catalog (metadata is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear the catalog without --yes")
			}
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				count := store.Len()
				if err := store.ClearGames(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d %s\n", count, plural("game", count))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm clearing the catalog")
	return cmd
}

func newPruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Drop metadata for games no longer in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				removed, err := store.PruneMetadata(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d metadata %s\n", removed, plural("entry", removed))
				return nil
			})
		},
	}
}

func plural(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}
