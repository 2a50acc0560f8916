// Package notify announces finished sweeps.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"scalebench/internal/analysis"
	"scalebench/internal/benchmark"

	"github.com/dustin/go-humanize"
	"github.com/slack-go/slack"
)

// Notifier delivers a text message somewhere people will see it.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// SlackNotifier sends notifications to Slack via an incoming webhook.
type SlackNotifier struct {
	WebhookURL string
	Client     *http.Client
}

// NewSlackNotifier creates a new SlackNotifier.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify posts message to the configured webhook.
func (s *SlackNotifier) Notify(ctx context.Context, message string) error {
	if s.WebhookURL == "" {
		return fmt.Errorf("slack webhook URL is not configured")
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	msg := &slack.WebhookMessage{Text: message}
	if err := slack.PostWebhookCustomHTTPContext(ctx, s.WebhookURL, client, msg); err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	return nil
}

// SweepMessage is the text sent when a sweep completes.
func SweepMessage(sweep benchmark.Sweep) string {
	var sb strings.Builder

	host := sweep.Host
	if host == "" {
		host = "unknown host"
	}
	fmt.Fprintf(&sb, "Sweep of %s on %s finished: %d samples, %d failures in %s",
		sweep.Executable, host, sweep.SampleCount(), sweep.FailureCount(),
		sweep.FinishedAt.Sub(sweep.StartedAt).Round(time.Second))
	if sweep.ID > 0 {
		fmt.Fprintf(&sb, " (id %d)", sweep.ID)
	}

	for _, r := range analysis.AnalyzeSweep(sweep) {
		if r.Samples == 0 {
			fmt.Fprintf(&sb, "\n• Steps %s: no samples", humanize.Comma(r.Steps))
			continue
		}
		fmt.Fprintf(&sb, "\n• Steps %s: best %.4fs at %d threads, speedup %.2fx",
			humanize.Comma(r.Steps), r.BestSeconds, r.BestThreads, r.MaxSpeedup)
	}
	return sb.String()
}
