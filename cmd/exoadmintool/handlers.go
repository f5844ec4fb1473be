package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"exoadmintool/internal/common/logger"
	"exoadmintool/internal/convert"
	"exoadmintool/internal/exo"
	"exoadmintool/internal/inactivity"
)

// Audit status constants
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
	StatusSkipped = "SKIPPED"
)

// executeAction dispatches to the handler for the configured action.
func executeAction(ctx context.Context, cred azcore.TokenCredential, config *Config, slogger *slog.Logger, csvLogger *logger.CSVLogger) error {
	switch config.Action {
	case ActionScan:
		if err := runScan(ctx, cred, config, slogger, csvLogger); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
	case ActionConvert:
		if err := runConvert(ctx, cred, config, slogger, csvLogger); err != nil {
			return fmt.Errorf("convert failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown action: %s", config.Action)
	}

	return nil
}

// runScan drives the distribution group inactivity scan and writes both
// report artifacts plus the audit trail.
func runScan(ctx context.Context, cred azcore.TokenCredential, config *Config, slogger *slog.Logger, csvLogger *logger.CSVLogger) error {
	adminClient := setupAdminClient(cred, config, slogger)
	directory := exo.NewDirectory(adminClient)

	writeAuditHeader(csvLogger, []string{"Action", "Status", "Group", "Detail"})

	scanner := &inactivity.Scanner{
		Source:     directory,
		Logger:     slogger,
		NameFilter: config.NameFilter,
		Domains:    config.Domains,
		Progress: func(current, total int, name string) {
			fmt.Printf("\rProcessing %d/%d: %-50s", current, total, truncate(name, 47))
		},
	}

	result, runErr := scanner.Run(ctx, config.ThresholdDays, config.WindowDays)
	fmt.Println()
	if runErr != nil {
		writeAudit(csvLogger, []string{ActionScan, StatusFailure, "N/A", runErr.Error()})
		if result == nil {
			return runErr
		}
		// Interrupted mid-scan: still render artifacts for the groups
		// that completed before cancellation.
		slogger.Warn("Scan interrupted, writing partial reports",
			"processed", result.Aggregate.TotalScanned, "error", runErr)
	}
	agg := result.Aggregate

	// Artifacts are written even when the run was interrupted mid-scan;
	// they cover the completed subset.
	if err := writeTableArtifact(config.CSVOut, agg); err != nil {
		writeAudit(csvLogger, []string{ActionScan, StatusFailure, "N/A", err.Error()})
		return err
	}
	slogger.Info("Tabular report written", "path", config.CSVOut, "rows", agg.InactiveCount())

	if err := writeNarrativeArtifact(config.HTMLOut, agg); err != nil {
		writeAudit(csvLogger, []string{ActionScan, StatusFailure, "N/A", err.Error()})
		return err
	}
	slogger.Info("Narrative report written", "path", config.HTMLOut)

	for _, rec := range agg.Records {
		writeAudit(csvLogger, []string{ActionScan, StatusSuccess, rec.PrimaryAddress, "classified inactive"})
	}
	for _, skipped := range result.Skipped {
		writeAudit(csvLogger, []string{ActionScan, StatusSkipped, skipped.Identity, skipped.Reason})
	}
	writeAudit(csvLogger, []string{ActionScan, StatusSuccess,
		fmt.Sprintf("%d groups", agg.TotalScanned),
		fmt.Sprintf("%d inactive, %d skipped", agg.InactiveCount(), len(result.Skipped))})

	printScanSummary(result, config)
	return runErr
}

func writeTableArtifact(path string, agg *inactivity.ReportAggregate) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating tabular report %s: %w", path, err)
	}
	defer file.Close()

	if err := inactivity.RenderTable(file, agg); err != nil {
		return fmt.Errorf("writing tabular report %s: %w", path, err)
	}
	return file.Close()
}

func writeNarrativeArtifact(path string, agg *inactivity.ReportAggregate) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating narrative report %s: %w", path, err)
	}
	defer file.Close()

	doc := inactivity.BuildNarrative(agg, time.Now().UTC())
	if err := doc.RenderHTML(file); err != nil {
		return fmt.Errorf("writing narrative report %s: %w", path, err)
	}
	return file.Close()
}

// printScanSummary renders the console table of inactive groups and the
// run statistics.
func printScanSummary(result *inactivity.ScanResult, config *Config) {
	agg := result.Aggregate

	fmt.Println()
	if agg.InactiveCount() == 0 {
		color.Green("No inactive distribution groups found (%d scanned, threshold %d days).",
			agg.TotalScanned, agg.ThresholdDays)
	} else {
		color.Yellow("Inactive distribution groups (threshold %d days):", agg.ThresholdDays)
		fmt.Println()

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Group", "Address", "Last Modified", "Members", "Owners"})

		var data [][]string
		for i := range agg.Records {
			rec := &agg.Records[i]
			lastModified := inactivity.NotAvailable
			if rec.LastModified != nil {
				lastModified = rec.LastModified.UTC().Format("2006-01-02")
			}
			memberCount := inactivity.NotAvailable
			if rec.MemberCount >= 0 {
				memberCount = fmt.Sprintf("%d", rec.MemberCount)
			}
			data = append(data, []string{
				truncate(rec.DisplayName, 40),
				rec.PrimaryAddress,
				lastModified,
				memberCount,
				fmt.Sprintf("%d", len(rec.Owners)),
			})
		}
		if err := table.Bulk(data); err == nil {
			table.Render()
		}
	}

	fmt.Println()
	fmt.Printf("Groups scanned:  %d\n", agg.TotalScanned)
	fmt.Printf("Inactive:        %s\n", color.YellowString("%d (%.1f%%)", agg.InactiveCount(), agg.InactiveRate()))
	if len(result.Skipped) > 0 {
		fmt.Printf("Skipped:         %s\n", color.RedString("%d", len(result.Skipped)))
		for _, skipped := range result.Skipped {
			fmt.Printf("  - %s: %s\n", skipped.Identity, truncate(skipped.Reason, 80))
		}
	}
	fmt.Printf("Reports:         %s, %s\n", config.CSVOut, config.HTMLOut)
}

// runConvert drives the shared-mailbox conversion workflow over the
// configured mailbox list.
func runConvert(ctx context.Context, cred azcore.TokenCredential, config *Config, slogger *slog.Logger, csvLogger *logger.CSVLogger) error {
	graphClient, err := setupGraphClient(cred, config)
	if err != nil {
		return err
	}
	adminClient := setupAdminClient(cred, config, slogger)

	writeAuditHeader(csvLogger, []string{"Action", "Status", "Mailbox", "Detail", "PasswordRotated"})

	converter := &convert.Converter{
		Mailboxes:       exo.NewDirectory(adminClient),
		Accounts:        convert.NewGraphAccountDirectory(graphClient),
		Logger:          slogger,
		RotatePasswords: config.RotatePasswords,
	}

	outcomes, err := converter.Run(ctx, config.Mailboxes)
	for _, outcome := range outcomes {
		status := StatusSuccess
		switch outcome.Status {
		case convert.StatusFailed:
			status = StatusFailure
		case convert.StatusSkipped:
			status = StatusSkipped
		}
		writeAudit(csvLogger, []string{ActionConvert, status, outcome.Identity,
			outcome.Detail, fmt.Sprintf("%t", outcome.PasswordRotated)})
	}
	if err != nil {
		return err
	}

	printConvertSummary(outcomes)

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Status == convert.StatusFailed {
			failed++
		}
	}
	if failed == len(outcomes) && failed > 0 {
		return fmt.Errorf("all %d mailbox conversions failed", failed)
	}
	return nil
}

// printConvertSummary renders the per-mailbox outcome table with colored
// status labels.
func printConvertSummary(outcomes []convert.Outcome) {
	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Mailbox", "Status", "Detail"})

	var data [][]string
	counts := map[convert.Status]int{}
	for _, outcome := range outcomes {
		counts[outcome.Status]++
		data = append(data, []string{
			outcome.Identity,
			colorStatus(outcome.Status),
			truncate(outcome.Detail, 70),
		})
	}
	if err := table.Bulk(data); err == nil {
		table.Render()
	}

	fmt.Println()
	fmt.Printf("Converted: %s  Skipped: %s  Partial: %s  Failed: %s\n",
		color.GreenString("%d", counts[convert.StatusConverted]),
		color.CyanString("%d", counts[convert.StatusSkipped]),
		color.YellowString("%d", counts[convert.StatusPartial]),
		color.RedString("%d", counts[convert.StatusFailed]))
}

func colorStatus(status convert.Status) string {
	switch status {
	case convert.StatusConverted:
		return color.GreenString(string(status))
	case convert.StatusSkipped:
		return color.CyanString(string(status))
	case convert.StatusPartial:
		return color.YellowString(string(status))
	case convert.StatusFailed:
		return color.RedString(string(status))
	}
	return string(status)
}

// writeAuditHeader writes the audit CSV header when the file is new.
func writeAuditHeader(csvLogger *logger.CSVLogger, columns []string) {
	if csvLogger == nil {
		return
	}
	if shouldWrite, err := csvLogger.ShouldWriteHeader(); err == nil && shouldWrite {
		csvLogger.WriteHeader(columns)
	}
}

// writeAudit appends one audit row, tolerating a disabled logger.
func writeAudit(csvLogger *logger.CSVLogger, row []string) {
	if csvLogger == nil {
		return
	}
	csvLogger.WriteRow(row)
}
