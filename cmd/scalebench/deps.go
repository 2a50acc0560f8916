package main

import (
	"time"

	"scalebench/internal/benchmark"
	"scalebench/internal/chart"
	"scalebench/internal/config"
	"scalebench/internal/db"
	"scalebench/internal/notify"
)

// Constructors are variables so tests can swap in fakes.
var (
	newRunnerFunc = func(executable string, timeout time.Duration) benchmark.Runner {
		return benchmark.NewProcessRunner(executable, timeout)
	}
	newStoreFunc = func(cfg config.StoreConfig) (benchmark.Store, error) {
		return db.NewStore(db.StoreConfig{Type: cfg.Type, ConnectionString: cfg.Path})
	}
	newNotifierFunc = func(webhookURL string) notify.Notifier {
		return notify.NewSlackNotifier(webhookURL)
	}
	showChartFunc = chart.Show
)
