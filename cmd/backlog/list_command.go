package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"backlog/internal/backlog"
	"backlog/internal/catalog"
)

type listFlags struct {
	status     string
	search     string
	platform   string
	storefront string
	all        bool
	json       bool
}

type listedGame struct {
	catalog.Game
	Favorite bool   `json:"favorite"`
	Note     string `json:"note,omitempty"`
}

type listedSection struct {
	Status catalog.PlayStatus `json:"status"`
	Title  string             `json:"title"`
	Games  []listedGame       `json:"games"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog grouped by play status",
		Long: "List the catalog grouped by play status.\n\n" +
			"Without filter flags the saved filter (see `backlog filter`) applies.\n" +
			"Any filter flag replaces the saved filter for this listing only.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			only, err := parseOptionalStatus(flags.status)
			if err != nil {
				return err
			}
			adhoc, err := filterFromFlags(flags.search, flags.platform, flags.storefront)
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(store *backlog.Store) error {
				sections := store.View()
				if adhoc != nil {
					sections = store.ViewWith(*adhoc)
				}
				if only != nil {
					sections = keepStatus(sections, *only)
				}
				meta := store.Metadata()
				if flags.json {
					return writeJSON(cmd, toListed(sections, meta))
				}
				return printSections(cmd, sections, meta, flags.all)
			})
		},
	}
	cmd.Flags().StringVar(&flags.status, "status", "", "Only show games with this play status")
	cmd.Flags().StringVar(&flags.search, "search", "", "Case-insensitive name search")
	cmd.Flags().StringVar(&flags.platform, "platform", "", "Only games available on this platform")
	cmd.Flags().StringVar(&flags.storefront, "storefront", "", "Only games from this storefront (steam, gog, legendary, nile)")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Also print empty sections")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output JSON")
	return cmd
}

func keepStatus(sections []catalog.Section, status catalog.PlayStatus) []catalog.Section {
	for _, s := range sections {
		if s.Status == status {
			return []catalog.Section{s}
		}
	}
	return nil
}

func toListed(sections []catalog.Section, meta catalog.SavedMetadata) []listedSection {
	out := make([]listedSection, 0, len(sections))
	for _, s := range sections {
		ls := listedSection{Status: s.Status, Title: s.Title, Games: make([]listedGame, 0, len(s.Games))}
		for _, g := range s.Games {
			m := meta[g.Slug]
			ls.Games = append(ls.Games, listedGame{Game: g, Favorite: m.Favorite(), Note: m.Note()})
		}
		out = append(out, ls)
	}
	return out
}

func printSections(cmd *cobra.Command, sections []catalog.Section, meta catalog.SavedMetadata, all bool) error {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	printed := 0
	for _, s := range sections {
		if len(s.Games) == 0 && !all {
			continue
		}
		if printed > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, renderSectionHeader(s, colorize))
		if len(s.Games) > 0 {
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Slug", "Storefronts", "Platforms", "Fav"},
				gameRows(s.Games, meta),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignCenter},
			))
		}
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(out, "No games to show")
	}
	return nil
}

func parseOptionalStatus(value string) (*catalog.PlayStatus, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	status, ok := catalog.ParsePlayStatus(value)
	if !ok {
		return nil, fmt.Errorf("unknown play status %q (want one of %s)", value, statusChoices())
	}
	return &status, nil
}

// filterFromFlags returns nil when no flag was given.
func filterFromFlags(search, platform, storefront string) (*catalog.Filter, error) {
	if search == "" && platform == "" && storefront == "" {
		return nil, nil
	}
	f := catalog.Filter{Search: search}
	if platform != "" {
		p, ok := catalog.ParsePlatform(platform)
		if !ok {
			return nil, fmt.Errorf("unknown platform %q", platform)
		}
		f.Platform = &p
	}
	if storefront != "" {
		s, ok := catalog.ParseStorefront(storefront)
		if !ok {
			return nil, fmt.Errorf("unknown storefront %q", storefront)
		}
		f.Storefront = &s
	}
	return &f, nil
}

func statusChoices() string {
	names := make([]string, len(catalog.DisplayOrder))
	for i, s := range catalog.DisplayOrder {
		names[i] = fmt.Sprintf("%q", string(s))
	}
	return strings.Join(names, ", ")
}
