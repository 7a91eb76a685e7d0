package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"HackerNews/internal/ports"
)

// Scheduler wires the periodic driver with the refresh use case.
type Scheduler struct {
	driver    ports.Scheduler
	refresher *Refresher
	logger    *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring refreshes.
func NewScheduler(driver ports.Scheduler, refresher *Refresher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{driver: driver, refresher: refresher, logger: logger}
}

// Start registers the refresh job with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.refresher == nil {
		return nil
	}

	job := func(trigger time.Time) {
		report, err := s.refresher.Refresh(ctx)
		switch {
		case errors.Is(err, ErrRefreshInProgress):
			s.logger.Debug("scheduled refresh skipped", "trigger", trigger, "reason", err.Error())
		case err != nil:
			s.logger.Warn("scheduled refresh failed", "trigger", trigger, "error", err)
		default:
			s.logger.Debug("scheduled refresh done", "trigger", trigger, "status", report.Status, "inserted", report.Inserted)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
