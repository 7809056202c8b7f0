package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"tastepalette/cmd/fx/config_fx"
	"tastepalette/cmd/fx/db_fx"
	"tastepalette/cmd/fx/jobs_fx"
	"tastepalette/cmd/fx/mail_fx"
	"tastepalette/internal/jobs"
	"tastepalette/internal/repositories"
)

const (
	weeklyResetSchedule = "0 0 * * 1"  // Monday 00:00
	marketingSchedule   = "0 10 * * 3" // Wednesday 10:00
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	root := &cobra.Command{
		Use:          "maintenance",
		Short:        "Scheduled account jobs for Taste Palette",
		SilenceUsage: true,
	}
	root.AddCommand(resetUploadsCmd(), sendMarketingCmd(), scheduleCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// withMaintenance builds the minimal graph the jobs need and tears it down
// once fn returns.
func withMaintenance(ctx context.Context, fn func(context.Context, *jobs.Maintenance) error) error {
	var maint *jobs.Maintenance
	app := fx.New(
		fx.NopLogger,
		config_fx.Module,
		db_fx.Module,
		mail_fx.Module,
		jobs_fx.Module,
		fx.Provide(repositories.NewUserRepository),
		fx.Populate(&maint),
	)

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			log.Printf("Error stopping maintenance: %v", err)
		}
	}()

	return fn(ctx, maint)
}

func resetUploadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-uploads",
		Short: "Reset weekly upload counters not reset in the last six days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMaintenance(cmd.Context(), runReset)
		},
	}
}

func sendMarketingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-marketing",
		Short: "Send the marketing email to every verified user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMaintenance(cmd.Context(), runMarketing)
		},
	}
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run both jobs on their weekly schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withMaintenance(ctx, func(ctx context.Context, m *jobs.Maintenance) error {
				c := cron.New()
				if _, err := c.AddFunc(weeklyResetSchedule, func() { _ = runReset(ctx, m) }); err != nil {
					return err
				}
				if _, err := c.AddFunc(marketingSchedule, func() { _ = runMarketing(ctx, m) }); err != nil {
					return err
				}

				c.Start()
				log.Printf("Scheduler started (reset %q, marketing %q)", weeklyResetSchedule, marketingSchedule)

				<-ctx.Done()
				log.Println("Stopping scheduler")
				<-c.Stop().Done()
				return nil
			})
		},
	}
}

func runReset(ctx context.Context, m *jobs.Maintenance) error {
	report, err := m.ResetWeeklyUploads(ctx)
	if err != nil {
		log.Printf("Weekly upload reset failed after %d users: %v", report.Reset, err)
		return err
	}
	log.Printf("Weekly upload reset: %d scanned, %d reset", report.Scanned, report.Reset)
	return nil
}

func runMarketing(ctx context.Context, m *jobs.Maintenance) error {
	report, err := m.SendMarketingEmails(ctx)
	if err != nil {
		log.Printf("Marketing emails stopped: %v", err)
		return err
	}
	log.Printf("Marketing emails: %d attempted, %d sent, %d failed", report.Attempted, report.Sent, report.Failed)
	return nil
}
