package snapshot_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"backlog/internal/catalog"
	"backlog/internal/config"
	"backlog/internal/snapshot"
)

func sampleState() snapshot.State {
	hades := catalog.NewGame("Hades", catalog.GameSource{
		Platform:   catalog.PlatformWindows,
		Storefront: catalog.StorefrontSteam,
		URL:        catalog.Ptr("https://store.steampowered.com/app/1145360"),
	})
	hades.ArtCover = catalog.Ptr("https://cdn.example/hades.jpg")
	return snapshot.State{
		Games: []catalog.Game{hades},
		Metadata: catalog.SavedMetadata{
			"hades": {
				PlayStatus:  catalog.Ptr(catalog.StatusFinished),
				Message:     catalog.Ptr("great run"),
				StatusTimes: map[catalog.PlayStatus]int64{catalog.StatusFinished: 1700000000000},
			},
		},
		Filter: catalog.Filter{Search: "ha", Platform: catalog.Ptr(catalog.PlatformWindows)},
	}
}

func assertSampleState(t *testing.T, state snapshot.State) {
	t.Helper()
	if len(state.Games) != 1 || state.Games[0].Slug != "hades" {
		t.Fatalf("unexpected games %+v", state.Games)
	}
	if got := *state.Games[0].Sources[0].URL; got != "https://store.steampowered.com/app/1145360" {
		t.Fatalf("unexpected source url %q", got)
	}
	meta := state.Metadata["hades"]
	if meta.PlayStatus == nil || *meta.PlayStatus != catalog.StatusFinished || meta.Note() != "great run" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if meta.StatusTimes[catalog.StatusFinished] != 1700000000000 {
		t.Fatalf("unexpected status times %v", meta.StatusTimes)
	}
	if state.Filter.Search != "ha" || state.Filter.Platform == nil || *state.Filter.Platform != catalog.PlatformWindows {
		t.Fatalf("unexpected filter %+v", state.Filter)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "backlog-tracker.json")

	store, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	state, found, err := store.Load(ctx)
	if err != nil || found {
		t.Fatalf("expected empty load, found=%v err=%v", found, err)
	}
	if state.Games == nil || state.Metadata == nil {
		t.Fatal("expected non-nil empty collections")
	}

	if err := store.Save(ctx, sampleState()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	for _, key := range []string{`"games"`, `"gamesMetadata"`, `"filter"`, `"art_cover"`, `"statusTimes"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("snapshot missing %s: %s", key, raw)
		}
	}

	reopened, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	loaded, found, err := reopened.Load(ctx)
	if err != nil || !found {
		t.Fatalf("expected saved state, found=%v err=%v", found, err)
	}
	assertSampleState(t, loaded)
}

func TestFileStoreRejectsSecondOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backlog-tracker.json")
	first, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer first.Close()

	if _, err := snapshot.OpenFile(path); !errors.Is(err, snapshot.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestFileStoreReportsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backlog-tracker.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer store.Close()
	if _, _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFileStoreFailedSaveKeepsPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "backlog-tracker.json")
	store, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer store.Close()
	if err := store.Save(ctx, sampleState()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	if err := store.Save(ctx, snapshot.State{}); err == nil {
		t.Fatal("expected save into read-only directory to fail")
	}
	loaded, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSampleState(t, loaded)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "backlog.db")

	store, err := snapshot.OpenSQLite(path, "")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, found, err := store.Load(ctx); err != nil || found {
		t.Fatalf("expected empty load, found=%v err=%v", found, err)
	}
	if err := store.Save(ctx, snapshot.State{}); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	if err := store.Save(ctx, sampleState()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := snapshot.OpenSQLite(path, snapshot.DefaultName)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	loaded, found, err := reopened.Load(ctx)
	if err != nil || !found {
		t.Fatalf("expected saved state, found=%v err=%v", found, err)
	}
	assertSampleState(t, loaded)
	if !strings.HasSuffix(reopened.Location(), "#backlog-tracker") {
		t.Fatalf("unexpected location %q", reopened.Location())
	}
}

func TestSQLiteStoreRejectsSecondOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backlog.db")
	first, err := snapshot.OpenSQLite(path, "")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer first.Close()
	if _, err := snapshot.OpenSQLite(path, ""); !errors.Is(err, snapshot.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestSQLiteStoreDetectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backlog.db")
	store, err := snapshot.OpenSQLite(path, "")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	if _, err := snapshot.OpenSQLite(path, ""); !errors.Is(err, snapshot.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.DataDir = t.TempDir()
			cfg.Paths.LogDir = filepath.Join(cfg.Paths.DataDir, "logs")
			cfg.Storage.Backend = backend

			store, err := snapshot.Open(&cfg)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer store.Close()
			if !strings.HasPrefix(store.Location(), cfg.SnapshotPath()) {
				t.Fatalf("location %q does not match %q", store.Location(), cfg.SnapshotPath())
			}
			if err := store.Save(context.Background(), sampleState()); err != nil {
				t.Fatalf("Save: %v", err)
			}
		})
	}
}
