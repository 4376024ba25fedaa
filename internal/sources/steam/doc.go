// Package steam imports a Steam account's owned games through the Steam Web API.
package steam
