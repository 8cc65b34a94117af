package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marketmind-ai/marketmind/internal/config"
	"github.com/marketmind-ai/marketmind/internal/database"
)

// SweepCmd returns the sweep command, a one-shot retention sweep.
func SweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete articles and chunks older than the retention window",
		RunE:  runSweep,
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	p := buildPipelines(cfg, pool)
	return p.retention.Sweep(ctx)
}
