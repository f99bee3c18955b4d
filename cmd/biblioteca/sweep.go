package main

import (
	"log/slog"

	"github.com/ginagrosso/biblioteca/internal/jobs"
	"github.com/spf13/cobra"
)

func newSweepOverdueCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-overdue",
		Short: "Report overdue loans once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx, logger)
			if err != nil {
				return err
			}
			defer rt.Close(logger)

			report, err := jobs.NewOverdueSweep(rt.container.Loan, logger).RunOnce(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("%d overdue loans across %d members, estimated %s\n",
				len(report.Loans), report.MembersCount, report.TotalEstimate.StringFixed(2))
			return nil
		},
	}
}
