package catalog_test

import (
	"testing"

	"backlog/internal/catalog"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Baldur's Gate 3: Deluxe":    "baldurs-gate-3-deluxe",
		"Half-Life 2":                "half-life-2",
		"Half Life 2":                "half-life-2",
		"  Hades  ":                  "hades",
		"A - B":                      "a-b",
		"Déjà Vu":                    "dj-vu",
		"snake_case_name":            "snake_case_name",
		"!!!":                        "",
		"":                           "",
		"Tab\tand\nnewline":          "tab-and-newline",
		"--leading--and--trailing--": "leading-and-trailing",
		"No\u00a0Break":              "no-break",
		"Ideo\u3000Space":            "ideo-space",
		"a\uFEFFb":                   "a-b",
		"a\u0085b":                   "ab",
		"line\u2028sep":              "line-sep",
	}
	for in, want := range cases {
		if got := catalog.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugifyLeavesValidSlugUnchanged(t *testing.T) {
	for _, slug := range []string{"hades", "baldurs-gate-3-deluxe", "a_b-c", "x1"} {
		if got := catalog.Slugify(slug); got != slug {
			t.Fatalf("Slugify(%q) = %q, want unchanged", slug, got)
		}
	}
}

func TestNewGameDerivesSlug(t *testing.T) {
	src := catalog.GameSource{Platform: catalog.PlatformWindows, Storefront: catalog.StorefrontGOG}
	g := catalog.NewGame("Disco Elysium", src)
	if g.Slug != "disco-elysium" {
		t.Fatalf("unexpected slug %q", g.Slug)
	}
	if len(g.Sources) != 1 || g.Sources[0] != src {
		t.Fatalf("unexpected sources %+v", g.Sources)
	}
}

func TestKeyDedupKey(t *testing.T) {
	a := catalog.NewGame("Half-Life 2")
	b := catalog.NewGame("Half Life 2")
	if catalog.KeyName.DedupKey(a) == catalog.KeyName.DedupKey(b) {
		t.Fatal("name key should distinguish punctuation")
	}
	if catalog.KeySlug.DedupKey(a) != catalog.KeySlug.DedupKey(b) {
		t.Fatal("slug key should collapse punctuation")
	}
	if k, ok := catalog.ParseKey("SLUG"); !ok || k != catalog.KeySlug {
		t.Fatalf("ParseKey(SLUG) = %v, %v", k, ok)
	}
	if _, ok := catalog.ParseKey("fuzzy"); ok {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestParsePlayStatus(t *testing.T) {
	cases := map[string]catalog.PlayStatus{
		"Want to Play":   catalog.StatusWantToPlay,
		"want-to-play":   catalog.StatusWantToPlay,
		"FINISHED":       catalog.StatusFinished,
		"not interested": catalog.StatusNotInterested,
	}
	for in, want := range cases {
		got, ok := catalog.ParsePlayStatus(in)
		if !ok || got != want {
			t.Errorf("ParsePlayStatus(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := catalog.ParsePlayStatus("paused"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
	if catalog.StatusFinished.Title() != "Finished!" {
		t.Fatalf("unexpected title %q", catalog.StatusFinished.Title())
	}
}

func TestStorefrontInfoAndLaunchURL(t *testing.T) {
	sf, ok := catalog.ParseStorefront("Epic")
	if !ok || sf != catalog.StorefrontEpic {
		t.Fatalf("ParseStorefront(Epic) = %q, %v", sf, ok)
	}
	src := catalog.GameSource{Platform: catalog.PlatformWindows, Storefront: catalog.StorefrontSteam}
	if src.LaunchURL() != "steam://url/LauncherHomePage/" {
		t.Fatalf("unexpected default url %q", src.LaunchURL())
	}
	src.URL = catalog.Ptr("https://store.steampowered.com/app/1145360")
	if src.LaunchURL() != "https://store.steampowered.com/app/1145360" {
		t.Fatalf("unexpected url %q", src.LaunchURL())
	}
}

func TestEffectiveStatusDefaultsToNotStarted(t *testing.T) {
	meta := catalog.SavedMetadata{
		"hades":   {IsFavorite: catalog.Ptr(true)},
		"celeste": {PlayStatus: catalog.Ptr(catalog.StatusPlaying)},
	}
	if got := meta.EffectiveStatus("hades"); got != catalog.StatusNotStarted {
		t.Fatalf("sparse entry status = %q", got)
	}
	if got := meta.EffectiveStatus("missing"); got != catalog.StatusNotStarted {
		t.Fatalf("missing entry status = %q", got)
	}
	if got := meta.EffectiveStatus("celeste"); got != catalog.StatusPlaying {
		t.Fatalf("explicit status = %q", got)
	}
}
