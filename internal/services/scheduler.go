package services

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
	"github.com/invoiceworks/backend/usecase/invoicing"
)

// Scheduler triggers an invoice generation run for the previous calendar
// month on a cron schedule. The starting invoice number is derived from
// the highest number found in the persisted drafts; the generation core
// itself tracks no sequence.
type Scheduler struct {
	generator  *invoicing.Generator
	drafts     repository.DraftRepository
	logger     *zap.Logger
	cron       *cron.Cron
	runTimeout time.Duration
	now        func() time.Time
}

// NewScheduler builds the scheduler with the given cron spec. Overlapping
// ticks are skipped rather than queued.
func NewScheduler(
	generator *invoicing.Generator,
	drafts repository.DraftRepository,
	spec string,
	runTimeout time.Duration,
	logger *zap.Logger,
) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if runTimeout <= 0 {
		runTimeout = 10 * time.Minute
	}

	s := &Scheduler{
		generator:  generator,
		drafts:     drafts,
		logger:     logger,
		runTimeout: runTimeout,
		now:        time.Now,
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	period := domain.PeriodOf(s.now()).Previous()

	last, err := s.drafts.MaxInvoiceNumber(ctx)
	if err != nil {
		s.logger.Error("failed to determine last invoice number", zap.Error(err))
		return
	}

	summary, err := s.generator.Generate(ctx, period, strconv.Itoa(last))
	if err != nil {
		s.logger.Error("scheduled generation failed",
			zap.String("period", period.String()),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("scheduled generation finished",
		zap.String("run_id", summary.RunID),
		zap.String("period", period.String()),
		zap.Int("invoices", summary.Invoices),
	)
}

// Start launches the cron scheduler.
func (s *Scheduler) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("generation scheduler started")
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("generation scheduler stopped")
}
