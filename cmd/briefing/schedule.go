package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"market-briefing/internal/briefing/service"
	"market-briefing/pkg/logger"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Runs the briefing pipeline on the configured cron schedule",
	Run:   runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx)
	defer func() { _ = a.logger.Sync() }()

	a.logger.Info("Starting briefing scheduler", logger.Field("name", a.cfg.App.Name))

	schedulerSvc := service.NewSchedulerService(a.cfg, a.logger, a.briefing)
	if err := schedulerSvc.Start(ctx); err != nil {
		a.logger.Fatal("Scheduler failed", logger.ErrorField(err))
	}
}
