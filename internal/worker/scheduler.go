package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"spendwise/internal/log"
)

// Scheduler runs a job on a standard five-field cron expression or descriptor
// such as "@daily". Runs never overlap; a tick that arrives while the
// previous run is still going is skipped.
type Scheduler struct {
	expr     string
	schedule cron.Schedule
	job      func(ctx context.Context) error
	logger   *log.Logger
}

func NewScheduler(expr string, job func(ctx context.Context) error, logger *log.Logger) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Scheduler{
		expr:     expr,
		schedule: schedule,
		job:      job,
		logger:   logger.WithComponent(log.ComponentWorker),
	}, nil
}

// Next returns the first run time after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Run blocks until ctx is done, then waits for a running job to return.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(s.schedule, cron.FuncJob(func() {
		if err := s.job(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Scheduled job failed", log.FieldError, err)
		}
	}))

	c.Start()
	s.logger.InfoContext(ctx, "Scheduler started", "schedule", s.expr, "next_run", s.Next(time.Now()))

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.InfoContext(ctx, "Scheduler stopped")
	return nil
}
