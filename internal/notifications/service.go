package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"murmur/internal/config"
	"murmur/internal/services"
)

const userAgent = "murmur/0.1.0"

// Event identifies a notification kind.
type Event string

const (
	EventMonitorStarted   Event = "monitor_started"
	EventMonitorStopped   Event = "monitor_stopped"
	EventTranscriptReady  Event = "transcript_ready"
	EventTranscriptFailed Event = "transcript_failed"
)

// Payload carries the values interpolated into the notification message.
type Payload map[string]string

// Service is the notification surface exposed to the monitor.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
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

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := n.format(event, payload)
	if !ok {
		return services.Wrap(services.ErrExternalService, "ntfy", "publish",
			fmt.Sprintf("unknown event %q", event), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return services.Wrap(services.ErrExternalService, "ntfy", "build request", "", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Title", msg.title)
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternalService, "ntfy", "publish", "", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrExternalService, "ntfy", "publish",
			fmt.Sprintf("status %d", resp.StatusCode), nil)
	}
	return nil
}

func (n *ntfyService) format(event Event, payload Payload) (message, bool) {
	file := filepath.Base(payload["path"])
	switch event {
	case EventMonitorStarted:
		return message{
			title: "Murmur - Monitoring",
			body:  fmt.Sprintf("Watching %s for new audio files", payload["watch_dir"]),
			tags:  []string{"murmur", "monitor", "started"},
		}, true
	case EventMonitorStopped:
		return message{
			title: "Murmur - Stopped",
			body:  "Audio monitor shut down",
			tags:  []string{"murmur", "monitor", "stopped"},
		}, true
	case EventTranscriptReady:
		return message{
			title: "Murmur - Transcript Ready",
			body:  fmt.Sprintf("Transcribed %s\nSaved: %s", file, payload["transcript"]),
			tags:  []string{"murmur", "transcript", "completed"},
		}, true
	case EventTranscriptFailed:
		return message{
			title:    "Murmur - Transcription Failed",
			body:     fmt.Sprintf("Failed %s: %s", file, payload["detail"]),
			tags:     []string{"murmur", "transcript", "failed"},
			priority: "high",
		}, true
	default:
		return message{}, false
	}
}
