package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/linesmerrill/avenue-police-api/backup"
	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/logging"
)

var exportPath string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore officers, statutes and arrest reports from a backup file",
	Long: `Import reads a backup written by the export command or by the old web app
(files with usuarios, artigos and prisoes keys) and merges it into the database.

Officers whose passport is already registered are skipped. Reports keep their
report numbers and the number sequence is moved past the highest one imported.

Examples:
  # Restore a backup downloaded from /api/v1/export
  ./avenue-police-api import backup-avenue-2024-03-01.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a full backup to a JSON file",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)

	today := time.Now().Format("2006-01-02")
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", fmt.Sprintf("backup-avenue-%s.json", today), "File to write the backup to")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := backup.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to read backup %s: %w", args[0], err)
	}

	db, disconnect, err := connect(ctx, config.New())
	if err != nil {
		return err
	}
	defer disconnect()

	bar := progressbar.NewOptions(b.Total(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Importing backup...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("records"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	res, err := backup.Import(ctx, storesFor(db), b, func() { _ = bar.Add(1) })
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	logging.Named("import").Infow("backup imported",
		"file", args[0],
		"officersCreated", res.OfficersCreated,
		"officersSkipped", res.OfficersSkipped,
		"statutesSaved", res.StatutesSaved,
		"reportsCreated", res.ReportsCreated,
		"reportsSkipped", res.ReportsSkipped,
		"lastReportNumber", res.LastReportNum)

	fmt.Printf("Officers:  %d created, %d skipped\n", res.OfficersCreated, res.OfficersSkipped)
	fmt.Printf("Statutes:  %d saved\n", res.StatutesSaved)
	fmt.Printf("Reports:   %d created, %d skipped\n", res.ReportsCreated, res.ReportsSkipped)
	fmt.Printf("Next report number: %d\n", res.LastReportNum+1)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, disconnect, err := connect(ctx, config.New())
	if err != nil {
		return err
	}
	defer disconnect()

	b, err := backup.Export(ctx, storesFor(db))
	if err != nil {
		return err
	}

	f, err := os.Create(exportPath)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportPath, err)
	}
	fmt.Printf("Wrote %d officers, %d statutes and %d arrest reports to %s\n",
		len(b.Officers), len(b.Statutes), len(b.ArrestReports), exportPath)
	return nil
}
