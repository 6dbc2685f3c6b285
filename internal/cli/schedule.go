package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/invoiceworks/backend/internal/services"
	"github.com/invoiceworks/backend/internal/services/lifecycle"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the cron-driven monthly generation until terminated",
	Long: `Schedule keeps the process alive and triggers a generation run for the
previous calendar month on the configured cron schedule (SCHEDULE_CRON).
The starting invoice number is derived from the highest number present in
the stored drafts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.withDrive(ctx); err != nil {
			return err
		}

		scheduler, err := services.NewScheduler(
			app.generator(),
			app.drafts,
			app.cfg.Schedule.Cron,
			app.cfg.Context.RunTimeout,
			app.logger,
		)
		if err != nil {
			return err
		}

		manager := lifecycle.New(app.cfg.Context.ShutdownTimeout, app.logger)
		manager.Listen(cancel)
		manager.Register("scheduler", func(ctx context.Context) error {
			scheduler.Stop(ctx)
			return nil
		})

		scheduler.Start()
		<-ctx.Done()
		return manager.Shutdown(context.Background())
	},
}
