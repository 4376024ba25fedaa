package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"backlog/internal/backlog"
	"backlog/internal/config"
	"backlog/internal/testsupport"
)

const heroicLibrary = `{"library":[
	{"app_name":"a1","title":"Hades","runner":"legendary","is_linux_native":true,"extra":{"storeUrl":"https://store.epicgames.com/p/hades"}},
	{"app_name":"a2","title":"Celeste","runner":"gog","store_url":"https://gog.com/game/celeste"},
	{"app_name":"a3","title":"Galaxy Common Redistributables","runner":"gog"}
]}`

func TestCLIImportHeroicAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	lib := env.writeHeroicLibrary(t, "library.json", heroicLibrary)

	out := env.run(t, "import", "heroic", lib)
	requireContains(t, out, "Added 2 games! You now have 2 games!")
	requireContains(t, out, "+ Hades")
	requireNotContains(t, out, "Galaxy Common Redistributables")

	out = env.run(t, "import", "heroic", lib)
	requireContains(t, out, "No new games found!")

	out = env.run(t, "list")
	requireContains(t, out, "Not Started (2)")
	requireContains(t, out, "celeste")
	requireContains(t, out, "Epic")
	requireNotContains(t, out, "Playing (")

	out = env.run(t, "list", "--platform", "linux")
	requireContains(t, out, "Not Started (1)")
	requireNotContains(t, out, "celeste")
}

func TestCLIImportHeroicRejectsInvalidFileAtomically(t *testing.T) {
	env := setupCLITestEnv(t)
	good := env.writeHeroicLibrary(t, "good.json", heroicLibrary)
	bad := env.writeHeroicLibrary(t, "bad.json", `{"library":"nope"}`)

	if _, _, err := runCLI(t, []string{"import", "heroic", good, bad}, env.configPath); err == nil {
		t.Fatal("expected import error")
	}
	out := env.run(t, "list")
	requireContains(t, out, "No games to show")
}

func TestCLIImportSteam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("steamid") != "76561197960287930" {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"response":{"game_count":1,"games":[{"appid":1145360,"name":"Hades"}]}}`))
	}))
	t.Cleanup(server.Close)
	env := setupCLITestEnv(t, testsupport.WithSteam(server.URL, "key"))

	out := env.run(t, "import", "steam", "76561197960287930")
	requireContains(t, out, "Added 1 game! You now have 1 game!")

	out = env.run(t, "show", "hades")
	requireContains(t, out, "Status:   Not Started")
	requireContains(t, out, "https://store.steampowered.com/app/1145360")

	if _, _, err := runCLI(t, []string{"import", "steam", "not-a-number"}, env.configPath); err == nil {
		t.Fatal("expected error for non-numeric steam id")
	}
}

func TestCLIStatusFavoriteNoteAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	lib := env.writeHeroicLibrary(t, "library.json", heroicLibrary)
	env.run(t, "import", "heroic", lib)

	out := env.run(t, "status", "hades", "playing")
	requireContains(t, out, "Hades is now Playing")
	out = env.run(t, "status", "Celeste", "finished")
	requireContains(t, out, "Celeste is now Finished!")

	out = env.run(t, "favorite", "hades")
	requireContains(t, out, "added to favorites")

	out = env.run(t, "note", "hades", "one", "more", "run")
	requireContains(t, out, "Saved note for Hades")

	out = env.run(t, "show", "hades")
	requireContains(t, out, "Status:   Playing")
	requireContains(t, out, "Favorite: yes")
	requireContains(t, out, "Note:     one more run")
	requireContains(t, out, "History:")

	out = env.run(t, "list", "--status", "playing")
	requireContains(t, out, "Playing (1)")
	requireNotContains(t, out, "Finished!")

	out = env.run(t, "list", "--json")
	var sections []listedSection
	if err := json.Unmarshal([]byte(out), &sections); err != nil {
		t.Fatalf("decode list json: %v\n%s", err, out)
	}
	if len(sections) != 6 || sections[0].Title != "Playing" || len(sections[0].Games) != 1 {
		t.Fatalf("unexpected sections %+v", sections)
	}
	if g := sections[0].Games[0]; !g.Favorite || g.Note != "one more run" {
		t.Fatalf("unexpected listed game %+v", g)
	}

	if _, _, err := runCLI(t, []string{"status", "hades", "sleeping"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown status")
	}
	_, _, err := runCLI(t, []string{"status", "portal", "playing"}, env.configPath)
	if !errors.Is(err, backlog.ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame, got %v", err)
	}
}

func TestCLIDeleteKeepsMetadataUntilPrune(t *testing.T) {
	env := setupCLITestEnv(t)
	lib := env.writeHeroicLibrary(t, "library.json", heroicLibrary)
	env.run(t, "import", "heroic", lib)
	env.run(t, "status", "hades", "abandoned")

	out := env.run(t, "delete", "hades")
	requireContains(t, out, "Deleted hades")
	if _, _, err := runCLI(t, []string{"delete", "hades"}, env.configPath); !errors.Is(err, backlog.ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame on second delete, got %v", err)
	}

	out = env.run(t, "check")
	requireContains(t, out, "1 metadata entry without a game")
	requireContains(t, out, "Catalog consistent")

	// Re-importing restores the saved status.
	env.run(t, "import", "heroic", lib)
	out = env.run(t, "list", "--status", "abandoned")
	requireContains(t, out, "hades")

	env.run(t, "delete", "hades")
	out = env.run(t, "prune")
	requireContains(t, out, "Pruned 1 metadata entry")
	out = env.run(t, "prune")
	requireContains(t, out, "Pruned 0 metadata entries")
}

func TestCLIClearRequiresConfirmation(t *testing.T) {
	env := setupCLITestEnv(t)
	lib := env.writeHeroicLibrary(t, "library.json", heroicLibrary)
	env.run(t, "import", "heroic", lib)

	if _, _, err := runCLI(t, []string{"clear"}, env.configPath); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
	out := env.run(t, "clear", "--yes")
	requireContains(t, out, "Cleared 2 games")
	out = env.run(t, "list")
	requireContains(t, out, "No games to show")
}

func TestCLIFilterPersists(t *testing.T) {
	env := setupCLITestEnv(t)
	lib := env.writeHeroicLibrary(t, "library.json", heroicLibrary)
	env.run(t, "import", "heroic", lib)

	out := env.run(t, "filter", "--storefront", "gog")
	requireContains(t, out, "Storefront: GOG")
	requireContains(t, out, "Platforms in catalog: ")

	out = env.run(t, "list")
	requireContains(t, out, "celeste")
	requireNotContains(t, out, "hades")

	out = env.run(t, "list", "--search", "HAD")
	requireContains(t, out, "hades")

	out = env.run(t, "filter", "--reset")
	requireContains(t, out, "Filter: none")
	out = env.run(t, "list")
	requireContains(t, out, "hades")

	if _, _, err := runCLI(t, []string{"filter", "--storefront", "itch"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown storefront")
	}
}

func TestCLIUsesSQLiteBackend(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithBackend(config.BackendSQLite))
	lib := env.writeHeroicLibrary(t, "library.json", heroicLibrary)
	env.run(t, "import", "heroic", lib)
	env.run(t, "status", "celeste", "want to play")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.DataDir, "backlog.db")); err != nil {
		t.Fatalf("expected sqlite database: %v", err)
	}
	out := env.run(t, "list", "--status", "want-to-play")
	requireContains(t, out, "Want to Play (1)")
	requireContains(t, out, "celeste")
}

func TestCLIConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Config path: "+target)
}

func TestCLITestNotifyRequiresTopic(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"test-notify"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "ntfy_topic") {
		t.Fatalf("expected missing topic error, got %v", err)
	}
}

func TestCLIDoctor(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSteam("http://127.0.0.1:0", ""))
	out := env.run(t, "doctor")
	requireContains(t, out, "Data directory:")
	requireContains(t, out, "Catalog lock:")
	requireContains(t, out, "[OK] not configured")
	requireNotContains(t, out, "[FAIL]")
}

func TestCLILogsShowsStoreActivity(t *testing.T) {
	env := setupCLITestEnv(t)
	lib := env.writeHeroicLibrary(t, "library.json", heroicLibrary)
	env.run(t, "import", "heroic", lib)

	out := env.run(t, "logs", "--lines", "100")
	requireContains(t, out, "import finished")
}
