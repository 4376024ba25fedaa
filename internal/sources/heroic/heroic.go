package heroic

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"backlog/internal/catalog"
	"backlog/internal/sources"
)

// SourceName identifies the adapter in reports and notifications.
const SourceName = "heroic"

const unknownName = "Unknown Game"

//go:embed schema.json
var schemaJSON []byte

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Entry is one launcher library entry.
type Entry struct {
	AppName       string  `json:"app_name"`
	Title         string  `json:"title"`
	Runner        string  `json:"runner"`
	IsMacNative   bool    `json:"is_mac_native"`
	IsLinuxNative bool    `json:"is_linux_native"`
	ArtCover      *string `json:"art_cover"`
	ArtSquare     *string `json:"art_square"`
	ArtBackground *string `json:"art_background"`
	StoreURL      *string `json:"store_url"`
	Extra         *struct {
		StoreURL string `json:"storeUrl"`
	} `json:"extra"`
}

// Document is a library export.
type Document struct {
	Library []Entry `json:"library"`
	Games   []Entry `json:"games"`
}

// Entries returns the library array, falling back to games.
func (d Document) Entries() []Entry {
	if d.Library != nil {
		return d.Library
	}
	return d.Games
}

// Validate checks doc against the export schema.
func Validate(doc []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load heroic schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("read heroic document: %w", err)
	}
	if !res.Valid() {
		var msgs []string
		for i, e := range res.Errors() {
			if i >= 5 {
				break
			}
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid heroic document: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Parse validates and maps one export document. Entries whose runner is not
// a known storefront are skipped.
func Parse(doc []byte, ignore sources.IgnoreList) ([]catalog.Game, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	var parsed Document
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("decode heroic document: %w", err)
	}
	entries := parsed.Entries()
	games := make([]catalog.Game, 0, len(entries))
	for _, entry := range entries {
		game, ok := ToGame(entry)
		if !ok {
			continue
		}
		games = append(games, game)
	}
	return ignore.Filter(games), nil
}

// ParseFiles parses every file in order. Any failure aborts the whole batch.
func ParseFiles(ctx context.Context, paths []string, ignore sources.IgnoreList) ([]catalog.Game, error) {
	if len(paths) == 0 {
		return nil, sources.Wrap(SourceName, fmt.Errorf("no files given"))
	}
	var games []catalog.Game
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, sources.Wrap(SourceName, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, sources.Wrap(SourceName, fmt.Errorf("read %s: %w", path, err))
		}
		batch, err := Parse(data, ignore)
		if err != nil {
			return nil, sources.Wrap(SourceName, fmt.Errorf("%s: %w", path, err))
		}
		games = append(games, batch...)
	}
	return games, nil
}

// Adapter binds paths so the import can be handed to an importer.
func Adapter(paths []string, ignore sources.IgnoreList) sources.Adapter {
	return func(ctx context.Context) ([]catalog.Game, error) {
		return ParseFiles(ctx, paths, ignore)
	}
}

// ToGame maps an entry to a canonical record. It reports false when the
// runner is not a known storefront.
func ToGame(entry Entry) (catalog.Game, bool) {
	storefront := catalog.Storefront(entry.Runner)
	if !storefront.Valid() {
		return catalog.Game{}, false
	}
	name := entry.Title
	if name == "" {
		name = entry.AppName
	}
	if name == "" {
		name = unknownName
	}

	primary := catalog.GameSource{Platform: catalog.PlatformWindows, Storefront: storefront, URL: entry.storeURL()}
	srcs := []catalog.GameSource{primary}
	if entry.IsMacNative {
		mac := primary
		mac.Platform = catalog.PlatformMac
		srcs = append(srcs, mac)
	}
	if entry.IsLinuxNative {
		linux := primary
		linux.Platform = catalog.PlatformLinux
		srcs = append(srcs, linux)
	}

	game := catalog.NewGame(name, srcs...)
	game.ArtBackground = nonEmpty(entry.ArtBackground)
	game.ArtCover = nonEmpty(entry.ArtCover)
	game.ArtSquare = nonEmpty(entry.ArtSquare)
	return game, true
}

func (e Entry) storeURL() *string {
	if e.Extra != nil && e.Extra.StoreURL != "" {
		return catalog.Ptr(e.Extra.StoreURL)
	}
	return nonEmpty(e.StoreURL)
}

func nonEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return catalog.Ptr(*v)
}
