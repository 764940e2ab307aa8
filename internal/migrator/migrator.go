// Package migrator runs the resource migration over a profiles file.
package migrator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/profile-migrator/internal/logging"
	"github.com/jonathan/profile-migrator/internal/profiles"
)

// Options configures a migration run
type Options struct {
	Path          string
	DryRun        bool
	Backup        bool
	AllowComments bool
}

// Report describes a finished run
type Report struct {
	RunID      string         `json:"run_id"`
	Path       string         `json:"path"`
	Stats      profiles.Stats `json:"stats"`
	BackupPath string         `json:"backup_path,omitempty"`
	DryRun     bool           `json:"dry_run"`
	Written    bool           `json:"written"`
}

// Migrator loads a profiles file, migrates its resources and writes it back.
type Migrator struct {
	opts    Options
	weights profiles.WeightSource
	logger  *logging.Logger
	now     func() time.Time
}

// New creates a Migrator
func New(opts Options, weights profiles.WeightSource, logger *logging.Logger) *Migrator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Migrator{
		opts:    opts,
		weights: weights,
		logger:  logger,
		now:     time.Now,
	}
}

// Run performs load, migrate and save. Nothing is written unless every
// profile migrated successfully.
func (m *Migrator) Run() (*Report, error) {
	report := &Report{
		RunID:  uuid.New().String(),
		Path:   m.opts.Path,
		DryRun: m.opts.DryRun,
	}
	log := m.logger.WithRunID(report.RunID).WithFields("path", m.opts.Path)

	log.Debugw("Loading profiles", "allow_comments", m.opts.AllowComments)
	doc, err := profiles.Load(m.opts.Path, profiles.ParseOptions{AllowComments: m.opts.AllowComments})
	if err != nil {
		log.WithError(err).Errorw("Failed to load profiles")
		return report, err
	}

	stats, err := profiles.MigrateDocument(doc, m.weights)
	if err != nil {
		log.WithError(err).Errorw("Failed to migrate resources")
		return report, fmt.Errorf("failed to migrate resources: %w", err)
	}
	report.Stats = *stats

	log.Infow("Resources migrated",
		"profiles", stats.Profiles,
		"with_resources", stats.WithResources,
		"legacy", stats.Legacy,
		"migrated", stats.Migrated,
	)

	if m.opts.DryRun {
		log.Infow("Dry run, leaving file untouched")
		return report, nil
	}

	if m.opts.Backup {
		backupPath, err := profiles.Backup(m.opts.Path, m.now())
		if err != nil {
			log.WithError(err).Errorw("Failed to back up profiles")
			return report, err
		}
		report.BackupPath = backupPath
		log.Infow("Backed up profiles", "backup_path", backupPath)
	}

	if err := profiles.Save(m.opts.Path, doc); err != nil {
		log.WithError(err).Errorw("Failed to save profiles")
		return report, err
	}
	report.Written = true

	log.Infow("Profiles saved")
	return report, nil
}

// Inspect loads the profiles file and reports pending work without writing.
func Inspect(path string, allowComments bool) (*profiles.Stats, error) {
	doc, err := profiles.Load(path, profiles.ParseOptions{AllowComments: allowComments})
	if err != nil {
		return nil, err
	}
	return profiles.InspectDocument(doc)
}
