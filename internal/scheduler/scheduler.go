// Package scheduler runs the weekly slate simulation on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SlateJob is the work scheduled for each tick: one full slate run
type SlateJob func(ctx context.Context) error

// Scheduler manages the recurring slate simulation job
type Scheduler struct {
	cron       *cron.Cron
	logger     *logrus.Logger
	mu         sync.Mutex
	isRunning  bool
	jobIDs     []cron.EntryID
	jobTimeout time.Duration
}

// NewScheduler creates a scheduler; jobs run in UTC
func NewScheduler(logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		logger:     logger,
		jobTimeout: 30 * time.Minute,
	}
}

// ScheduleSlateRun registers a slate job under a cron expression
func (s *Scheduler) ScheduleSlateRun(cronExpression string, job SlateJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	id, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled slate run failed")
			return
		}
		s.logger.WithField("duration", time.Since(start)).Info("Scheduled slate run completed")
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpression, err)
	}
	s.jobIDs = append(s.jobIDs, id)
	return nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
}

// Stop halts scheduling and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}
