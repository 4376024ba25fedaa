package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"backlog/internal/catalog"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiGray   = "\x1b[90m"
)

func shouldColorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func statusColor(s catalog.PlayStatus) string {
	switch s {
	case catalog.StatusPlaying:
		return ansiGreen
	case catalog.StatusWantToPlay:
		return ansiBlue
	case catalog.StatusFinished:
		return ansiYellow
	case catalog.StatusAbandoned:
		return ansiRed
	case catalog.StatusNotInterested:
		return ansiGray
	default:
		return ""
	}
}

func renderSectionHeader(section catalog.Section, colorize bool) string {
	line := fmt.Sprintf("%s (%d)", section.Title, len(section.Games))
	if !colorize {
		return line
	}
	return ansiBold + statusColor(section.Status) + line + ansiReset
}

func gameRows(games []catalog.Game, meta catalog.SavedMetadata) [][]string {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		m := meta[g.Slug]
		fav := ""
		if m.Favorite() {
			fav = "*"
		}
		rows = append(rows, []string{g.Name, g.Slug, storefrontList(g), platformList(g), fav})
	}
	return rows
}

func storefrontList(g catalog.Game) string {
	seen := map[catalog.Storefront]bool{}
	var titles []string
	for _, src := range g.Sources {
		if seen[src.Storefront] {
			continue
		}
		seen[src.Storefront] = true
		titles = append(titles, src.Storefront.Info().Title)
	}
	return strings.Join(titles, ", ")
}

func platformList(g catalog.Game) string {
	platforms := catalog.PlatformsOf([]catalog.Game{g})
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// statusHistory lists recorded status changes, most recent first.
func statusHistory(m catalog.GameMetadata, now time.Time) []string {
	type entry struct {
		status catalog.PlayStatus
		at     time.Time
	}
	entries := make([]entry, 0, len(m.StatusTimes))
	for s, ms := range m.StatusTimes {
		entries = append(entries, entry{status: s, at: time.UnixMilli(ms)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s %s", e.status.Title(), humanize.RelTime(e.at, now, "ago", "from now"))
	}
	return lines
}
