package steam_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backlog/internal/catalog"
	"backlog/internal/sources"
	"backlog/internal/sources/steam"
)

const ownedGamesPayload = `{"response":{"game_count":3,"games":[
	{"appid":1145360,"name":"Hades","playtime_forever":3000,"img_icon_url":"abc123"},
	{"appid":504230,"name":"Celeste","playtime_forever":0,"img_icon_url":""},
	{"appid":1,"name":"Galaxy Common Redistributables"}
]}}`

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := steam.New("", "https://example.com"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestFetchMapsOwnedGames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/IPlayerService/GetOwnedGames/v0001/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "key" || q.Get("steamid") != "76561197960287930" || q.Get("format") != "json" || q.Get("include_appinfo") != "true" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ownedGamesPayload))
	}))
	t.Cleanup(server.Close)

	client, err := steam.New("key", server.URL+"/", steam.WithIgnoreList(sources.NewIgnoreList([]string{"Galaxy Common Redistributables"})))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	games, err := client.Fetch(context.Background(), "76561197960287930")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %+v", games)
	}
	hades := games[0]
	if hades.Slug != "hades" || len(hades.Sources) != 1 {
		t.Fatalf("unexpected record %+v", hades)
	}
	src := hades.Sources[0]
	if src.Storefront != catalog.StorefrontSteam || src.Platform != catalog.PlatformWindows || *src.URL != "https://store.steampowered.com/app/1145360" {
		t.Fatalf("unexpected source %+v", src)
	}
	if hades.ArtSquare == nil || *hades.ArtSquare != "https://media.steampowered.com/steamcommunity/public/images/apps/1145360/abc123.jpg" {
		t.Fatalf("unexpected icon %v", hades.ArtSquare)
	}
	if games[1].ArtSquare != nil {
		t.Fatal("expected no icon without hash")
	}
}

func TestFetchHTTPErrorIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client, err := steam.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	games, err := client.Fetch(context.Background(), "123")
	var fetchErr *sources.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Source != steam.SourceName {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if games != nil {
		t.Fatalf("expected no games, got %+v", games)
	}
}

func TestOwnedGamesRejectsNonNumericID(t *testing.T) {
	client, err := steam.New("key", "https://example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.OwnedGames(context.Background(), "gabe"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[not json`))
	}))
	t.Cleanup(server.Close)

	client, _ := steam.New("key", server.URL)
	if _, err := client.Adapter("123")(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCheckKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ISteamWebAPIUtil/GetSupportedAPIList/v0001/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "good" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"apilist":{"interfaces":[]}}`))
	}))
	t.Cleanup(server.Close)

	good, _ := steam.New("good", server.URL)
	if err := good.CheckKey(context.Background()); err != nil {
		t.Fatalf("expected key accepted, got %v", err)
	}
	bad, _ := steam.New("bad", server.URL)
	if err := bad.CheckKey(context.Background()); !errors.Is(err, steam.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
