// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/profile-migrator/internal/migrator"
	"github.com/jonathan/profile-migrator/internal/profiles"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Keep the tail of long lines, it holds the file name
		if len(line) > boxWidth-4 {
			line = "..." + line[len(line)-(boxWidth-7):]
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeStats(sb *strings.Builder, stats profiles.Stats, legacyLabel string) {
	sb.WriteString(fmt.Sprintf("Profiles:        %d\n", stats.Profiles))
	sb.WriteString(fmt.Sprintf("  with resources %d\n", stats.WithResources))
	sb.WriteString(fmt.Sprintf("  skipped        %d\n", stats.Skipped))
	sb.WriteString(fmt.Sprintf("%-17s%d\n", legacyLabel+":", stats.Legacy))
	sb.WriteString(fmt.Sprintf("Already objects: %d\n", stats.Migrated))
}

// PrintReport outputs a human-readable summary of a migration run.
func (p *Printer) PrintReport(report *migrator.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:  %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("File: %s\n", report.Path))
	sb.WriteString("\n")
	writeStats(&sb, report.Stats, "Wrapped")

	switch {
	case report.DryRun:
		sb.WriteString("\nDry run: file not written\n")
	case report.Written:
		sb.WriteString("\nFile written\n")
	}
	if report.BackupPath != "" {
		sb.WriteString(fmt.Sprintf("Backup: %s\n", report.BackupPath))
	}

	p.printBox("PROFILE MIGRATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStatus outputs the pending work for a profiles file.
func (p *Printer) PrintStatus(path string, stats *profiles.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", path))
	sb.WriteString("\n")
	writeStats(&sb, *stats, "Pending")

	if stats.Pending() {
		sb.WriteString("\nMigration required\n")
	} else {
		sb.WriteString("\nUp to date\n")
	}

	p.printBox("PROFILE STATUS", strings.TrimSuffix(sb.String(), "\n"))
}
