package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"backlog/internal/config"
	"backlog/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyImportFailed(context.Background(), "steam", errors.New("boom")); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestImportSummary(t *testing.T) {
	cases := []struct {
		added, total int
		want         string
	}{
		{0, 12, "No new games found!"},
		{1, 1, "Added 1 game! You now have 1 game!"},
		{3, 40, "Added 3 games! You now have 40 games!"},
	}
	for _, tc := range cases {
		if got := notifications.ImportSummary(tc.added, tc.total); got != tc.want {
			t.Errorf("ImportSummary(%d, %d) = %q, want %q", tc.added, tc.total, got, tc.want)
		}
	}
}

type captured struct {
	title, tags, priority, body string
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, *[]captured) {
	t.Helper()
	var got []captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = append(got, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &got
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	server, got := newCaptureServer(t, http.StatusOK)
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)
	ctx := context.Background()

	if err := svc.NotifyImportCompleted(ctx, "steam", 2, 10); err != nil {
		t.Fatalf("NotifyImportCompleted: %v", err)
	}
	if err := svc.NotifyImportFailed(ctx, "heroic", errors.New("invalid heroic document")); err != nil {
		t.Fatalf("NotifyImportFailed: %v", err)
	}

	if len(*got) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(*got))
	}
	completed := (*got)[0]
	if completed.title != "Backlog - Import Complete" || completed.body != "🎮 Steam: Added 2 games! You now have 10 games!" {
		t.Fatalf("unexpected completed notification %+v", completed)
	}
	if completed.tags != "backlog,import,completed" || completed.priority != "" {
		t.Fatalf("unexpected completed headers %+v", completed)
	}
	failed := (*got)[1]
	if failed.body != "❌ Heroic import failed: invalid heroic document" || failed.priority != "high" {
		t.Fatalf("unexpected failed notification %+v", failed)
	}
}

func TestNtfyServiceReportsHTTPError(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusTooManyRequests)
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	if err := notifications.NewService(&cfg).TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
