package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Property sales database tool",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "Store driver override (sqlite, postgres)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		upCmd(&opts),
		seedCmd(&opts),
		statusCmd(&opts),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
