package config

import (
	"fmt"
	"net"
	"strings"
)

// Validate checks configuration values and returns every problem found in one error.
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.Executable) == "" {
		errors = append(errors, "executable must be set")
	}

	if len(c.Steps) == 0 {
		errors = append(errors, "steps must list at least one workload size")
	}
	seen := make(map[int64]bool, len(c.Steps))
	for _, s := range c.Steps {
		if s <= 0 {
			errors = append(errors, fmt.Sprintf("steps must be positive, got: %d", s))
		}
		if seen[s] {
			errors = append(errors, fmt.Sprintf("steps must be unique, got %d twice", s))
		}
		seen[s] = true
	}

	if c.Threads.Min < 1 {
		errors = append(errors, fmt.Sprintf("threads.min must be at least 1, got: %d", c.Threads.Min))
	}
	if c.Threads.Max < c.Threads.Min {
		errors = append(errors, fmt.Sprintf("threads.max (%d) must not be below threads.min (%d)", c.Threads.Max, c.Threads.Min))
	}

	if c.Marker == "" {
		errors = append(errors, "marker must not be empty")
	}

	if c.Timeout < 0 {
		errors = append(errors, fmt.Sprintf("timeout must not be negative, got: %v", c.Timeout))
	}

	if c.Chart.Output == "" {
		errors = append(errors, "chart.output must be set")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		errors = append(errors, fmt.Sprintf("chart size must be positive, got: %vx%v", c.Chart.Width, c.Chart.Height))
	}

	switch strings.ToLower(c.Store.Type) {
	case "", "json", "sqlite", "sqlite3":
	case "postgres", "postgresql":
		if c.Store.Path == "" {
			errors = append(errors, "store.path must hold a DSN for postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("store.type must be json, sqlite or postgres, got: %s", c.Store.Type))
	}

	if c.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddr); err != nil {
			errors = append(errors, fmt.Sprintf("metrics_addr must be host:port, got: %s", c.MetricsAddr))
		}
	}

	if c.Notifications.Slack.Enabled && c.Notifications.Slack.WebhookURL == "" {
		errors = append(errors, "notifications.slack.webhook_url is required when slack is enabled")
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
