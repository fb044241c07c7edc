// Package scheduler keeps the recall table fresh. It periodically asks the
// recall registry about every drug in the vocabulary, merges the advisories
// into a new reference snapshot and swaps it into the data container.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/rxguard/rxguard-api/interfaces"
	"github.com/rxguard/rxguard-api/logging"
	"github.com/rxguard/rxguard-api/metrics"
	"github.com/rxguard/rxguard-api/reference"
)

// Compile-time check to ensure Scheduler implements the Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler refreshes recall advisories on a fixed interval using
// injected dependencies.
type Scheduler struct {
	dataStore    interfaces.DataStore
	registry     interfaces.RecallRegistry
	scheduler    *gocron.Scheduler
	refreshHours int
	timeout      time.Duration
	stopMonitor  chan struct{}
}

// NewScheduler creates a scheduler that refreshes recalls every refreshHours
// hours. The timeout bounds each full refresh pass against the registry.
func NewScheduler(dataStore interfaces.DataStore, registry interfaces.RecallRegistry, refreshHours int, timeout time.Duration) *Scheduler {
	if refreshHours <= 0 {
		refreshHours = 12
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Scheduler{
		dataStore:    dataStore,
		registry:     registry,
		scheduler:    gocron.NewScheduler(time.Local),
		refreshHours: refreshHours,
		timeout:      timeout,
		stopMonitor:  make(chan struct{}),
	}
}

// Start performs an initial refresh and schedules recurring ones. Unlike a
// parser-backed store, the built-in tables ship in the binary, so a failed
// initial refresh is logged but does not prevent startup.
func (s *Scheduler) Start() error {
	if s.registry == nil {
		logging.Info("No recall registry configured, skipping recall refresh scheduling")
		return nil
	}

	if err := s.refreshRecalls(); err != nil {
		logging.Warn("Initial recall refresh failed, serving built-in recall table", "error", err)
	}

	_, err := s.scheduler.Every(s.refreshHours).Hours().Do(func() {
		if err := s.refreshRecalls(); err != nil {
			logging.Error("Scheduled recall refresh failed", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule recall refresh", "error", err)
		return fmt.Errorf("failed to schedule recall refresh: %w", err)
	}

	s.scheduler.StartAsync()
	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler and the health monitor.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.stopMonitor)
}

// refreshRecalls queries the registry for every vocabulary drug and swaps a
// merged snapshot into the store. Per-drug failures are tolerated: a partial
// merge is better than a stale one, but a pass where every lookup failed is
// reported as an error so the old snapshot stays authoritative.
func (s *Scheduler) refreshRecalls() error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Recall refresh already in progress, skipping")
		metrics.RecallRefreshTotal.WithLabelValues("skipped").Inc()
		return nil
	}
	defer s.dataStore.EndUpdate()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	current := s.dataStore.GetReference()

	var notices []reference.RecallNotice
	var failed int
	for _, entry := range current.Vocabulary {
		found, err := s.registry.FindRecalls(ctx, entry.Canonical)
		if err != nil {
			failed++
			logging.Warn("Recall lookup failed", "drug", entry.Canonical, "error", err)
			continue
		}
		notices = append(notices, found...)
	}

	if failed > 0 && failed == len(current.Vocabulary) {
		metrics.RecallRefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("recall refresh failed for all %d drugs", failed)
	}

	s.dataStore.UpdateReference(current.WithRecalls(notices))
	metrics.RecallRefreshTotal.WithLabelValues("success").Inc()

	logging.Info("Recall refresh completed",
		"duration", time.Since(start).String(),
		"advisories", len(notices),
		"failed_lookups", failed,
	)

	return nil
}

// startHealthMonitoring warns when the recall table has gone stale past two
// refresh intervals.
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		stale := time.Duration(2*s.refreshHours)*time.Hour + time.Hour
		for {
			select {
			case <-s.stopMonitor:
				return
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				if lastUpdate.IsZero() {
					continue
				}
				if time.Since(lastUpdate) > stale {
					logging.Warn("Recall data is stale",
						"last_updated", lastUpdate.Format(time.RFC3339),
						"threshold", stale.String(),
					)
				}
			}
		}
	}()
}
