package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"backlog/internal/config"
	"backlog/internal/snapshot"
	"backlog/internal/sources/steam"
)

const steamCheckTimeout = 10 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSnapshotLock fails when another process owns the catalog.
func CheckSnapshotLock(path string) Result {
	const name = "Catalog lock"

	held, err := snapshot.LockHeld(path)
	switch {
	case err != nil:
		return Result{Name: name, Detail: err.Error()}
	case held:
		return Result{Name: name, Detail: "held by another backlog process"}
	default:
		return Result{Name: name, Passed: true, Detail: "free"}
	}
}

// CheckSteam verifies that the Steam Web API is reachable and accepts apiKey.
func CheckSteam(ctx context.Context, baseURL, apiKey string) Result {
	const name = "Steam"

	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}
	client, err := steam.New(apiKey, baseURL, steam.WithTimeout(steamCheckTimeout))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, steamCheckTimeout)
	defer cancel()
	if err := client.CheckKey(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckSteamFromConfig skips the network check when no key is configured.
func CheckSteamFromConfig(ctx context.Context, cfg *config.Config) Result {
	if strings.TrimSpace(cfg.Steam.APIKey) == "" {
		return Result{Name: "Steam", Passed: true, Detail: "not configured"}
	}
	return CheckSteam(ctx, cfg.Steam.BaseURL, cfg.Steam.APIKey)
}

// CheckNotificationsFromConfig reports whether import notifications are enabled.
func CheckNotificationsFromConfig(cfg *config.Config) Result {
	const name = "Notifications"

	if cfg.Notifications.NtfyTopic == "" {
		return Result{Name: name, Passed: true, Detail: "not configured"}
	}
	return Result{Name: name, Passed: true, Detail: "ntfy topic " + cfg.Notifications.NtfyTopic}
}

func summarizeError(err error) string {
	if errors.Is(err, steam.ErrUnauthorized) {
		return "auth failed (invalid api key)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (Steam API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (Steam API unreachable)"
	}
	return err.Error()
}
