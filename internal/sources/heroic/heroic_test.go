package heroic_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"backlog/internal/catalog"
	"backlog/internal/sources"
	"backlog/internal/sources/heroic"
	"backlog/internal/testsupport"
)

const libraryDoc = `{"library":[
	{"app_name":"Fortnite","title":"Hades","runner":"legendary","is_mac_native":true,"is_linux_native":true,
	 "art_cover":"https://cdn.example/cover.jpg","art_square":"","extra":{"storeUrl":"https://store.epicgames.com/p/hades"}},
	{"app_name":"1207658924","title":"","runner":"gog","store_url":"https://gog.com/game/unnamed"},
	{"app_name":"","title":"","runner":"nile"},
	{"app_name":"x","title":"Galaxy Common Redistributables","runner":"gog"},
	{"app_name":"y","title":"Some Sideload","runner":"sideload"}
]}`

var ignoreDefaults = sources.NewIgnoreList([]string{"Galaxy Common Redistributables"})

func TestParseMapsLibraryEntries(t *testing.T) {
	games, err := heroic.Parse([]byte(libraryDoc), ignoreDefaults)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %+v", games)
	}

	hades := games[0]
	if hades.Name != "Hades" || hades.Slug != "hades" {
		t.Fatalf("unexpected record %+v", hades)
	}
	if len(hades.Sources) != 3 {
		t.Fatalf("expected windows, mac and linux sources, got %+v", hades.Sources)
	}
	platforms := []catalog.Platform{catalog.PlatformWindows, catalog.PlatformMac, catalog.PlatformLinux}
	for i, src := range hades.Sources {
		if src.Platform != platforms[i] || src.Storefront != catalog.StorefrontEpic || *src.URL != "https://store.epicgames.com/p/hades" {
			t.Fatalf("unexpected source %d: %+v", i, src)
		}
	}
	if hades.ArtCover == nil || hades.ArtSquare != nil {
		t.Fatalf("unexpected art %v %v", hades.ArtCover, hades.ArtSquare)
	}

	if games[1].Name != "1207658924" || *games[1].Sources[0].URL != "https://gog.com/game/unnamed" {
		t.Fatalf("expected app_name fallback and store_url, got %+v", games[1])
	}
	if games[2].Name != "Unknown Game" || games[2].Sources[0].URL != nil {
		t.Fatalf("expected unknown game without url, got %+v", games[2])
	}
}

func TestParseAcceptsGamesKey(t *testing.T) {
	games, err := heroic.Parse([]byte(`{"games":[{"title":"Celeste","runner":"gog"}]}`), sources.IgnoreList{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(games) != 1 || games[0].Name != "Celeste" {
		t.Fatalf("unexpected games %+v", games)
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"no collection":  `{"other":[]}`,
		"not an object":  `[]`,
		"missing runner": `{"library":[{"title":"Hades"}]}`,
		"wrong type":     `{"library":[{"title":5,"runner":"gog"}]}`,
		"malformed":      `{"library":`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := heroic.Parse([]byte(doc), sources.IgnoreList{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseFilesIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "legendary_library.json")
	bad := filepath.Join(dir, "gog_library.json")
	testsupport.WriteFile(t, good, []byte(libraryDoc))
	testsupport.WriteFile(t, bad, []byte(`{"nope":true}`))

	games, err := heroic.ParseFiles(context.Background(), []string{good}, ignoreDefaults)
	if err != nil || len(games) != 3 {
		t.Fatalf("ParseFiles(good) = %d games, %v", len(games), err)
	}

	games, err = heroic.Adapter([]string{good, bad}, ignoreDefaults)(context.Background())
	var fetchErr *sources.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Source != heroic.SourceName {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if games != nil {
		t.Fatalf("expected no games on failure, got %d", len(games))
	}

	if _, err := heroic.ParseFiles(context.Background(), []string{filepath.Join(dir, "missing.json")}, ignoreDefaults); err == nil {
		t.Fatal("expected error for missing file")
	}
}
