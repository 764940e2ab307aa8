package main

import (
	"fmt"

	"github.com/jonathan/profile-migrator/internal/logging"
	"github.com/jonathan/profile-migrator/internal/migrator"
	"github.com/jonathan/profile-migrator/internal/observability"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report legacy resources still waiting for migration",
		Long:  "Loads the profiles file and counts bare and object resources without writing anything.",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	stats, err := migrator.Inspect(cfg.File, cfg.AllowComments)
	if err != nil {
		return fmt.Errorf("failed to inspect profiles: %w", err)
	}
	logger.Debugw("Inspected profiles", "path", cfg.File, "legacy", stats.Legacy, "migrated", stats.Migrated)

	observability.NewPrinter(cmd.OutOrStdout()).PrintStatus(cfg.File, stats)
	return nil
}
