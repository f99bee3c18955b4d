// Package jobs holds the scheduled background work of the service.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

const sweepTimeout = 4 * time.Minute

// OverdueReport summarises one sweep.
type OverdueReport struct {
	AsOf          time.Time
	Loans         []domain.OverdueLoan
	TotalEstimate decimal.Decimal
	MembersCount  int
}

// OverdueSweep periodically reports open loans past their due date. It does
// not charge anything; fees are assessed when the copy comes back.
type OverdueSweep struct {
	loans  portssvc.LoanReaderSvc
	logger *slog.Logger
	clock  func() time.Time
	cron   *cron.Cron
}

// NewOverdueSweep creates a sweep over the given loan service.
func NewOverdueSweep(loans portssvc.LoanReaderSvc, logger *slog.Logger) *OverdueSweep {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverdueSweep{
		loans:  loans,
		logger: logger.With(slog.String("job", "overdue_sweep")),
		clock:  time.Now,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// RunOnce lists the overdue loans as of now and logs the summary.
func (j *OverdueSweep) RunOnce(ctx context.Context) (*OverdueReport, error) {
	asOf := j.clock()
	overdue, err := j.loans.ListOverdue(ctx, asOf)
	if err != nil {
		j.logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
		return nil, err
	}

	report := &OverdueReport{AsOf: asOf, Loans: overdue, TotalEstimate: decimal.Zero}
	members := make(map[string]struct{}, len(overdue))
	for _, o := range overdue {
		report.TotalEstimate = report.TotalEstimate.Add(o.EstimatedFee)
		members[o.Loan.MemberID] = struct{}{}
		j.logger.Info("Overdue loan",
			slog.String("loan_id", o.Loan.LoanID),
			slog.String("member_id", o.Loan.MemberID),
			slog.String("copy_code", o.Loan.CopyCode),
			slog.Int("overdue_days", o.OverdueDays),
			slog.String("estimated_fee", o.EstimatedFee.StringFixed(2)),
		)
	}
	report.MembersCount = len(members)

	j.logger.Info("Overdue sweep finished",
		slog.Int("overdue_loans", len(overdue)),
		slog.Int("members", report.MembersCount),
		slog.String("estimated_total", report.TotalEstimate.StringFixed(2)),
	)
	return report, nil
}

// Start schedules the sweep with a standard five-field cron expression.
func (j *OverdueSweep) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid overdue sweep schedule %q: %w", schedule, err)
	}
	j.cron.Start()
	j.logger.Info("Overdue sweep scheduled", slog.String("schedule", schedule))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish or ctx to expire.
func (j *OverdueSweep) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.logger.Warn("Overdue sweep still running at shutdown")
	}
}
