package testsupport

import (
	"strconv"

	"backlog/internal/catalog"
)

// SteamGame builds a Windows Steam record for name.
func SteamGame(name string, appID int) catalog.Game {
	url := "https://store.steampowered.com/app/" + strconv.Itoa(appID)
	return catalog.NewGame(name, catalog.GameSource{
		Platform:   catalog.PlatformWindows,
		Storefront: catalog.StorefrontSteam,
		URL:        &url,
	})
}

// GOGGame builds a Windows GOG record for name without a store URL.
func GOGGame(name string) catalog.Game {
	return catalog.NewGame(name, catalog.GameSource{
		Platform:   catalog.PlatformWindows,
		Storefront: catalog.StorefrontGOG,
	})
}
