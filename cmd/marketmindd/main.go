package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marketmind-ai/marketmind/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "marketmindd",
		Short: "MarketMind daemon and CLI",
		Long:  "MarketMind daemon for serving financial advice and running the news pipelines",
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.SweepCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
