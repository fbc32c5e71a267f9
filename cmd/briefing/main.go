package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "market-briefing",
		Short: "Daily market briefing pipeline",
		Long:  `Collects market movers and news, ranks candidates with RSI and MACD, and publishes a generated market briefing.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
	rootCmd.AddCommand(runCmd, scheduleCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing market-briefing CLI: %s\n", err)
		os.Exit(1)
	}
}
