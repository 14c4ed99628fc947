package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SettlementJob periodically reconciles pending withdrawals against the
// remote finances. The remote side settles withdrawals asynchronously, so
// the mirror has to poll.
type SettlementJob struct {
	handler  commands.SettleTransactionsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewSettlementJob creates a job that runs a settlement sweep on the given
// cron schedule (with a seconds field, e.g. "*/10 * * * * *").
func NewSettlementJob(
	handler commands.SettleTransactionsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *SettlementJob {
	return &SettlementJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "settlement_job"),
	}
}

// Start begins the periodic settlement sweep.
func (j *SettlementJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSettleTransactionsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Settlement sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement job started", "schedule", j.schedule)
	return nil
}

// Stop stops the settlement job.
func (j *SettlementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Settlement job stopped")
}
