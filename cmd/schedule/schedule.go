// Package schedule implements the schedule command, which runs the
// report pipeline on a recurring cron schedule.
package schedule

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/keyraces/cmd/common"
	cmdreport "github.com/jonesrussell/keyraces/cmd/report"
)

// defaultCronSpec runs the report every Monday at 07:00.
const defaultCronSpec = "0 7 * * 1"

// Command returns the schedule command.
func Command() *cobra.Command {
	opts := cmdreport.Options{}
	var cronSpec string
	var runNow bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the report on a recurring schedule",
		Long: `Run the report pipeline on a cron schedule until interrupted
with Ctrl+C. Each run assembles, writes, and delivers a fresh report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := cron.New()
			_, err = runner.AddFunc(cronSpec, func() {
				if runErr := cmdreport.RunOnce(ctx, deps, opts); runErr != nil {
					deps.Logger.Error("scheduled run failed", "error", runErr)
				}
			})
			if err != nil {
				return fmt.Errorf("invalid cron spec %q: %w", cronSpec, err)
			}

			if runNow {
				if runErr := cmdreport.RunOnce(ctx, deps, opts); runErr != nil {
					deps.Logger.Error("initial run failed", "error", runErr)
				}
			}

			deps.Logger.Info("scheduler started", "cron", cronSpec)
			runner.Start()

			<-ctx.Done()
			deps.Logger.Info("shutdown signal received")

			// Let an in-flight run finish before exiting.
			<-runner.Stop().Done()
			deps.Logger.Info("scheduler stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&cronSpec, "cron", defaultCronSpec, "cron schedule for report runs")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "run once immediately on startup")
	cmd.Flags().StringVar(&opts.Curated, "curated", "", "curated race list (overrides config)")
	cmd.Flags().StringVar(&opts.Targets, "targets", "", "research target list (overrides config)")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "reports", "directory for report output")
	cmd.Flags().BoolVar(&opts.NoEmail, "no-email", false, "skip email delivery")
	cmd.Flags().BoolVar(&opts.WriteJSON, "write-json", false, "also write the report as JSON")
	cmd.Flags().BoolVar(&opts.SkipEmpty, "skip-empty", false, "write and send nothing when no races were found")

	return cmd
}
