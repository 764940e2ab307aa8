package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/profile-migrator/internal/migrator"
	"github.com/jonathan/profile-migrator/internal/profiles"
	"github.com/stretchr/testify/assert"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&migrator.Report{
		RunID:      "8a1f",
		Path:       "wiki/profiles.json",
		Stats:      profiles.Stats{Profiles: 5, WithResources: 3, Skipped: 2, Legacy: 5, Migrated: 2},
		BackupPath: "wiki/profiles.json.20250102T030405.bak",
		Written:    true,
	})
	output := buf.String()

	assert.Contains(t, output, "PROFILE MIGRATION")
	assert.Contains(t, output, "8a1f")
	assert.Contains(t, output, "wiki/profiles.json")
	assert.Contains(t, output, "Wrapped:         5")
	assert.Contains(t, output, "Already objects: 2")
	assert.Contains(t, output, "File written")
	assert.Contains(t, output, "Backup:")
}

func TestPrintReport_DryRun(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&migrator.Report{Path: "profiles.json", DryRun: true})

	assert.Contains(t, buf.String(), "Dry run: file not written")
	assert.NotContains(t, buf.String(), "File written")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(nil)

	assert.Empty(t, buf.String())
}

func TestPrintStatus(t *testing.T) {
	tests := []struct {
		name     string
		stats    profiles.Stats
		expected string
	}{
		{"pending", profiles.Stats{Profiles: 1, WithResources: 1, Legacy: 2}, "Migration required"},
		{"up to date", profiles.Stats{Profiles: 1, WithResources: 1, Migrated: 2}, "Up to date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintStatus("profiles.json", &tt.stats)

			assert.Contains(t, buf.String(), "PROFILE STATUS")
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	long := strings.Repeat("a", 100) + "profiles.json"
	p.printBox("TITLE", long)

	output := buf.String()
	assert.Contains(t, output, "...")
	assert.Contains(t, output, "profiles.json")
	assert.NotContains(t, output, strings.Repeat("a", 60))
}
