package catalog

import "strings"

// Platform is a system a game can be launched on.
type Platform string

const (
	PlatformMac         Platform = "Mac"
	PlatformWindows     Platform = "Windows"
	PlatformLinux       Platform = "Linux"
	PlatformAndroid     Platform = "Android"
	PlatformIOS         Platform = "IOS"
	PlatformSwitch      Platform = "Switch"
	PlatformXbox        Platform = "Xbox"
	PlatformPlaystation Platform = "Playstation"
	PlatformStadia      Platform = "Stadia"
	PlatformNintendo    Platform = "Nintendo"
)

// Platforms lists every platform in declaration order.
var Platforms = []Platform{
	PlatformMac, PlatformWindows, PlatformLinux, PlatformAndroid, PlatformIOS,
	PlatformSwitch, PlatformXbox, PlatformPlaystation, PlatformStadia, PlatformNintendo,
}

// Storefront is the distribution platform a game was acquired from. Values
// match the runner identifiers used by launcher exports.
type Storefront string

const (
	StorefrontAmazon Storefront = "nile"
	StorefrontEpic   Storefront = "legendary"
	StorefrontGOG    Storefront = "gog"
	StorefrontSteam  Storefront = "steam"
)

// Storefronts lists every storefront in declaration order.
var Storefronts = []Storefront{StorefrontAmazon, StorefrontEpic, StorefrontGOG, StorefrontSteam}

// StorefrontInfo carries display data for a storefront.
type StorefrontInfo struct {
	Title      string
	DefaultURL string
}

var storefrontInfo = map[Storefront]StorefrontInfo{
	StorefrontAmazon: {Title: "Amazon", DefaultURL: "https://gaming.amazon.com/home"},
	StorefrontEpic:   {Title: "Epic", DefaultURL: "com.epicgames.launcher://apps"},
	StorefrontGOG:    {Title: "GOG", DefaultURL: "https://gog.com/account"},
	StorefrontSteam:  {Title: "Steam", DefaultURL: "steam://url/LauncherHomePage/"},
}

// Info returns display data for the storefront. Unknown values echo the raw identifier.
func (s Storefront) Info() StorefrontInfo {
	if info, ok := storefrontInfo[s]; ok {
		return info
	}
	return StorefrontInfo{Title: string(s)}
}

// Valid reports whether s is one of the known storefronts.
func (s Storefront) Valid() bool {
	_, ok := storefrontInfo[s]
	return ok
}

// ParseStorefront accepts a runner identifier ("legendary") or a display title ("Epic").
func ParseStorefront(value string) (Storefront, bool) {
	value = strings.TrimSpace(value)
	for _, s := range Storefronts {
		if strings.EqualFold(value, string(s)) || strings.EqualFold(value, s.Info().Title) {
			return s, true
		}
	}
	return "", false
}

// ParsePlatform matches a platform name case-insensitively.
func ParsePlatform(value string) (Platform, bool) {
	value = strings.TrimSpace(value)
	for _, p := range Platforms {
		if strings.EqualFold(value, string(p)) {
			return p, true
		}
	}
	return "", false
}

// GameSource is one place a game can be launched from. Sources compare by value.
type GameSource struct {
	Platform   Platform   `json:"platform"`
	Storefront Storefront `json:"storefront"`
	URL        *string    `json:"url"`
}

// LaunchURL returns the source URL, falling back to the storefront's launcher.
func (s GameSource) LaunchURL() string {
	if s.URL != nil && *s.URL != "" {
		return *s.URL
	}
	return s.Storefront.Info().DefaultURL
}

func (s GameSource) equal(other GameSource) bool {
	if s.Platform != other.Platform || s.Storefront != other.Storefront {
		return false
	}
	if s.URL == nil || other.URL == nil {
		return s.URL == nil && other.URL == nil
	}
	return *s.URL == *other.URL
}

// Game is the canonical catalog record. Slug is derived from Name and is the
// catalog's primary key.
type Game struct {
	Slug          string       `json:"slug"`
	Name          string       `json:"name"`
	Sources       []GameSource `json:"sources"`
	ArtBackground *string      `json:"art_background"`
	ArtCover      *string      `json:"art_cover"`
	ArtSquare     *string      `json:"art_square"`
	ReleaseDate   string       `json:"releaseDate,omitempty"`
}

// HasPlatform reports whether any source runs on p.
func (g Game) HasPlatform(p Platform) bool {
	for _, s := range g.Sources {
		if s.Platform == p {
			return true
		}
	}
	return false
}

// HasStorefront reports whether any source comes from s.
func (g Game) HasStorefront(s Storefront) bool {
	for _, src := range g.Sources {
		if src.Storefront == s {
			return true
		}
	}
	return false
}

// PlayStatus is the user's current relationship to a game.
type PlayStatus string

const (
	StatusNotStarted    PlayStatus = "Not Started"
	StatusWantToPlay    PlayStatus = "Want to Play"
	StatusPlaying       PlayStatus = "Playing"
	StatusFinished      PlayStatus = "Finished"
	StatusNotInterested PlayStatus = "Not Interested"
	StatusAbandoned     PlayStatus = "Abandoned"
)

// DefaultStatus is the effective status of a game without metadata.
const DefaultStatus = StatusNotStarted

// Statuses lists every play status in declaration order.
var Statuses = []PlayStatus{
	StatusNotStarted, StatusWantToPlay, StatusPlaying,
	StatusFinished, StatusNotInterested, StatusAbandoned,
}

// DisplayOrder is the order status sections are presented in.
var DisplayOrder = []PlayStatus{
	StatusPlaying, StatusWantToPlay, StatusNotStarted,
	StatusFinished, StatusAbandoned, StatusNotInterested,
}

// Valid reports whether s is a known play status.
func (s PlayStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Title is the section heading for the status.
func (s PlayStatus) Title() string {
	if s == StatusFinished {
		return "Finished!"
	}
	return string(s)
}

// ParsePlayStatus accepts the wire value ("Want to Play") or any spelling that
// slugifies to the same token ("want-to-play", "WANT TO PLAY").
func ParsePlayStatus(value string) (PlayStatus, bool) {
	token := Slugify(value)
	for _, s := range Statuses {
		if Slugify(string(s)) == token {
			return s, true
		}
	}
	return "", false
}

// GameMetadata holds user-owned state for a game. Every field is optional; a
// missing entry means "not started, not a favorite, no note".
type GameMetadata struct {
	IsFavorite  *bool                `json:"isFavorite,omitempty"`
	PlayStatus  *PlayStatus          `json:"playStatus,omitempty"`
	Message     *string              `json:"message,omitempty"`
	StatusTimes map[PlayStatus]int64 `json:"statusTimes,omitempty"`
}

// Favorite reports the favorite flag, defaulting to false.
func (m GameMetadata) Favorite() bool {
	return m.IsFavorite != nil && *m.IsFavorite
}

// Note returns the free-text note, defaulting to "".
func (m GameMetadata) Note() string {
	if m.Message == nil {
		return ""
	}
	return *m.Message
}

// Clone returns a deep copy.
func (m GameMetadata) Clone() GameMetadata {
	out := m
	if m.IsFavorite != nil {
		v := *m.IsFavorite
		out.IsFavorite = &v
	}
	if m.PlayStatus != nil {
		v := *m.PlayStatus
		out.PlayStatus = &v
	}
	if m.Message != nil {
		v := *m.Message
		out.Message = &v
	}
	if m.StatusTimes != nil {
		out.StatusTimes = make(map[PlayStatus]int64, len(m.StatusTimes))
		for k, v := range m.StatusTimes {
			out.StatusTimes[k] = v
		}
	}
	return out
}

// SavedMetadata maps slugs to metadata. It is sparse.
type SavedMetadata map[string]GameMetadata

// EffectiveStatus returns the stored status for slug, or DefaultStatus when
// none is stored or the stored value is not a known status.
func (m SavedMetadata) EffectiveStatus(slug string) PlayStatus {
	if meta, ok := m[slug]; ok && meta.PlayStatus != nil && meta.PlayStatus.Valid() {
		return *meta.PlayStatus
	}
	return DefaultStatus
}

// DropInvalidStatuses clears play statuses that are not known values and
// returns the affected slugs in no particular order.
func (m SavedMetadata) DropInvalidStatuses() []string {
	var dropped []string
	for slug, meta := range m {
		if meta.PlayStatus == nil || meta.PlayStatus.Valid() {
			continue
		}
		meta.PlayStatus = nil
		m[slug] = meta
		dropped = append(dropped, slug)
	}
	return dropped
}

// Clone returns a deep copy.
func (m SavedMetadata) Clone() SavedMetadata {
	out := make(SavedMetadata, len(m))
	for slug, meta := range m {
		out[slug] = meta.Clone()
	}
	return out
}

// Filter is view state narrowing what the projection returns.
type Filter struct {
	Search     string      `json:"search"`
	Platform   *Platform   `json:"platform"`
	Storefront *Storefront `json:"storefront"`
}

// Ptr returns a pointer to v, for optional fields.
func Ptr[T any](v T) *T { return &v }
