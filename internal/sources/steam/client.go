package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"backlog/internal/catalog"
	"backlog/internal/sources"
)

// SourceName identifies the adapter in reports and notifications.
const SourceName = "steam"

const (
	storeAppURL = "https://store.steampowered.com/app/%d"
	iconURL     = "https://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg"
	coverURL    = "https://cdn.cloudflare.steamstatic.com/steam/apps/%d/library_600x900.jpg"
	heroURL     = "https://cdn.cloudflare.steamstatic.com/steam/apps/%d/library_hero.jpg"
)

// ErrUnauthorized reports that Steam rejected the API key.
var ErrUnauthorized = errors.New("steam rejected the api key")

// OwnedGame is one entry from GetOwnedGames.
type OwnedGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int64  `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
	RTimeLastPlayed int64  `json:"rtime_last_played"`
}

// OwnedGamesResponse models the GetOwnedGames payload.
type OwnedGamesResponse struct {
	Response struct {
		GameCount int         `json:"game_count"`
		Games     []OwnedGame `json:"games"`
	} `json:"response"`
}

// Client provides access to the Steam Web API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	ignore     sources.IgnoreList
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithIgnoreList drops matching names from fetched batches.
func WithIgnoreList(list sources.IgnoreList) Option {
	return func(c *Client) {
		c.ignore = list
	}
}

// New creates a Steam client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("steam api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("steam base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// OwnedGames lists the games owned by the account with steamID.
func (c *Client) OwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	steamID = strings.TrimSpace(steamID)
	if steamID == "" {
		return nil, errors.New("steam id must not be empty")
	}
	if _, err := strconv.ParseUint(steamID, 10, 64); err != nil {
		return nil, fmt.Errorf("steam id %q must be numeric", steamID)
	}
	endpoint, err := url.Parse(c.baseURL + "/IPlayerService/GetOwnedGames/v0001/")
	if err != nil {
		return nil, fmt.Errorf("parse steam url: %w", err)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", steamID)
	params.Set("format", "json")
	params.Set("include_appinfo", "true")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("steam owned games returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload OwnedGamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode steam response: %w", err)
	}
	return payload.Response.Games, nil
}

// CheckKey asks Steam to list the interfaces available to the API key, which
// fails with 401 or 403 when the key is invalid.
func (c *Client) CheckKey(ctx context.Context) error {
	endpoint := c.baseURL + "/ISteamWebAPIUtil/GetSupportedAPIList/v0001/?" + url.Values{"key": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("steam api check returned %d", resp.StatusCode)
	}
	return nil
}

// Fetch returns the account's library as canonical games.
func (c *Client) Fetch(ctx context.Context, steamID string) ([]catalog.Game, error) {
	owned, err := c.OwnedGames(ctx, steamID)
	if err != nil {
		return nil, sources.Wrap(SourceName, err)
	}
	games := make([]catalog.Game, 0, len(owned))
	for _, entry := range owned {
		games = append(games, ToGame(entry))
	}
	return c.ignore.Filter(games), nil
}

// Adapter binds steamID so the fetch can be handed to an importer.
func (c *Client) Adapter(steamID string) sources.Adapter {
	return func(ctx context.Context) ([]catalog.Game, error) {
		return c.Fetch(ctx, steamID)
	}
}

// ToGame maps an owned game to a canonical record with a single Steam source.
func ToGame(entry OwnedGame) catalog.Game {
	game := catalog.NewGame(entry.Name, catalog.GameSource{
		Platform:   catalog.PlatformWindows,
		Storefront: catalog.StorefrontSteam,
		URL:        catalog.Ptr(fmt.Sprintf(storeAppURL, entry.AppID)),
	})
	game.ArtCover = catalog.Ptr(fmt.Sprintf(coverURL, entry.AppID))
	game.ArtBackground = catalog.Ptr(fmt.Sprintf(heroURL, entry.AppID))
	if entry.ImgIconURL != "" {
		game.ArtSquare = catalog.Ptr(fmt.Sprintf(iconURL, entry.AppID, entry.ImgIconURL))
	}
	return game
}
