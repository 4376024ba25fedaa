package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backlog/internal/config"
)

const userAgent = "backlog/0.1.0"

// Service defines the notification surface used by imports.
type Service interface {
	NotifyImportCompleted(ctx context.Context, source string, added, total int) error
	NotifyImportFailed(ctx context.Context, source string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

// Noop returns a Service that sends nothing.
func Noop() Service { return noopService{} }

// ImportSummary is the user-facing line for a finished import.
func ImportSummary(added, total int) string {
	if added == 0 {
		return "No new games found!"
	}
	return fmt.Sprintf("Added %d %s! You now have %d %s!", added, pluralize("game", added), total, pluralize("game", total))
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyImportCompleted(ctx context.Context, source string, added, total int) error {
	data := payload{
		title:   "Backlog - Import Complete",
		message: fmt.Sprintf("🎮 %s: %s", sourceLabel(source), ImportSummary(added, total)),
		tags:    []string{"backlog", "import", "completed"},
	}
	if added == 0 {
		data.priority = "low"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyImportFailed(ctx context.Context, source string, err error) error {
	var builder strings.Builder
	builder.WriteString("❌ ")
	builder.WriteString(sourceLabel(source))
	builder.WriteString(" import failed: ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}
	data := payload{
		title:    "Backlog - Import Failed",
		message:  builder.String(),
		tags:     []string{"backlog", "import", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Backlog - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"backlog", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func sourceLabel(source string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return "Import"
	}
	return strings.ToUpper(source[:1]) + source[1:]
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyImportCompleted(context.Context, string, int, int) error { return nil }
func (noopService) NotifyImportFailed(context.Context, string, error) error       { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
