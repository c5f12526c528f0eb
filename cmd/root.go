package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linesmerrill/avenue-police-api/backup"
	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/databases"
)

var rootCmd = &cobra.Command{
	Use:   "avenue-police-api",
	Short: "Arrest reporting API for the Avenue City Police Department",
	Long: `avenue-police-api files arrest reports, computes fines and sentences from
the penal code and serves the dashboards used by command staff.

Run without a subcommand to start the API server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect opens the database for the maintenance commands. The returned func
// disconnects.
func connect(ctx context.Context, conf *config.Config) (databases.DatabaseHelper, func(), error) {
	if conf.URL == "" {
		return nil, nil, fmt.Errorf("DB_URI is required")
	}
	client, err := databases.NewClient(conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	disconnect := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			zap.S().Warnw("failed to disconnect from database", "error", err)
		}
	}
	return databases.NewDatabase(conf, client), disconnect, nil
}

func storesFor(db databases.DatabaseHelper) backup.Stores {
	return backup.Stores{
		Officers: databases.NewUserDatabase(db),
		Statutes: databases.NewStatuteDatabase(db),
		Reports:  databases.NewArrestReportDatabase(db),
		Counters: databases.NewCounterDatabase(db),
	}
}
