package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SweepOrdersJob manages the scheduled sweep of timed-out orders.
// Expires stale pending orders, escalates slow driver searches, and gives up
// on searches past the hard timeout. SkipIfStillRunning serializes the runs:
// a sweep that outlasts its interval is never overlapped by the next one.
type SweepOrdersJob struct {
	handler  commands.SweepOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSweepOrdersJob creates a new job sweeping orders on the given cron
// schedule (six-field spec with seconds).
func NewSweepOrdersJob(
	handler commands.SweepOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *SweepOrdersJob {
	return &SweepOrdersJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "sweep_orders_job"),
	}
}

// Start begins the sweep job on its schedule.
func (j *SweepOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSweepOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *SweepOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order sweep job stopped")
}
