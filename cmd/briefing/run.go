package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"market-briefing/pkg/logger"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the briefing pipeline once",
	Run:   runOnce,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate the briefing without publishing it")
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx)
	defer func() { _ = a.logger.Sync() }()

	ctx = logger.WithRunID(ctx, uuid.NewString())
	result, err := a.briefing.Run(ctx, !dryRun)
	if err != nil {
		a.logger.ErrorContext(ctx, "Briefing run failed", logger.ErrorField(err))
		_ = a.logger.Sync()
		os.Exit(1)
	}

	if dryRun {
		cmd.Println(result.Briefing.Title)
		cmd.Println()
		cmd.Println(result.Briefing.Body)
		return
	}
	if !result.Published {
		a.logger.ErrorContext(ctx, "Briefing was generated but publishing failed")
		_ = a.logger.Sync()
		os.Exit(1)
	}
}
