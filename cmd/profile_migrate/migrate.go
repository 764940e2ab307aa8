package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/profile-migrator/internal/config"
	"github.com/jonathan/profile-migrator/internal/logging"
	"github.com/jonathan/profile-migrator/internal/migrator"
	"github.com/jonathan/profile-migrator/internal/observability"
	"github.com/jonathan/profile-migrator/internal/profiles"
	"github.com/spf13/cobra"
)

// errMigrationFailed is returned in strict mode after the failure was printed
var errMigrationFailed = errors.New("migration failed")

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"file":           "file",
	"allow-comments": "allow_comments",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"seed":           "seed",
	"dry-run":        "dry_run",
	"backup":         "backup",
	"strict":         "strict",
	"verbose":        "verbose",
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "profile_migrate",
		Short: "Migrate profile resources to weighted objects",
		Long: `Rewrites expertise_data.resources of every profile in a profiles JSON file.
Bare resource names become {"name": ..., "weight": 1-10}; entries that are
already objects are kept as they are, so the command is safe to run again.

Failures are printed and the command still exits 0 unless --strict is set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMigrate,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP("file", "f", config.DefaultFile, "Path to the profiles JSON file")
	pf.String("config", "", "Path to an optional config file (yaml, json or toml)")
	pf.Bool("allow-comments", false, "Accept JSON with comments and trailing commas")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log format (console, json)")

	f := rootCmd.Flags()
	f.Int64("seed", 0, "Seed for weight assignment (0 picks a random seed)")
	f.Bool("dry-run", false, "Migrate in memory and report without writing the file")
	f.Bool("backup", false, "Copy the original file to <file>.<timestamp>.bak before writing")
	f.Bool("strict", false, "Exit with a non-zero status when the migration fails")
	f.BoolP("verbose", "v", false, "Print a summary of the run")

	rootCmd.AddCommand(newStatusCmd())
	return rootCmd
}

// loadConfig merges flags, environment and the optional config file
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.LoadConfig(v, configPath)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		strict, _ := cmd.Flags().GetBool("strict")
		return reportFailure(out, strict, err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return reportFailure(out, cfg.Strict, err)
	}
	defer func() { _ = logger.Close() }()

	m := migrator.New(migrator.Options{
		Path:          cfg.File,
		DryRun:        cfg.DryRun,
		Backup:        cfg.Backup,
		AllowComments: cfg.AllowComments,
	}, profiles.NewRandomWeights(cfg.Seed), logger)

	report, err := m.Run()
	if err != nil {
		return reportFailure(out, cfg.Strict, err)
	}

	if cfg.Verbose {
		observability.NewPrinter(out).PrintReport(report)
	}

	_, _ = fmt.Fprintln(out, "Migration successful.")
	if report.DryRun {
		_, _ = fmt.Fprintln(out, "Dry run: no changes written.")
	}
	return nil
}

// reportFailure prints the failure. The error is swallowed unless strict.
func reportFailure(out io.Writer, strict bool, err error) error {
	_, _ = fmt.Fprintf(out, "Error: %v\n", err)
	if strict {
		return errMigrationFailed
	}
	return nil
}
