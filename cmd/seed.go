package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/linesmerrill/avenue-police-api/api/handlers"
	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/databases"
)

var seedStatutesCmd = &cobra.Command{
	Use:   "seed-statutes",
	Short: "Replace the penal code table with the default statutes",
	Long: `seed-statutes drops every custom or edited statute and restores the
default penal code. Arrest reports already filed keep their own copies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		db, disconnect, err := connect(ctx, config.New())
		if err != nil {
			return err
		}
		defer disconnect()

		statutes, err := databases.NewStatuteDatabase(db).Reset(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d statutes\n", len(statutes))
		return nil
	},
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the head developer account from HEAD_DEV_PASSPORT and HEAD_DEV_PASSWORD",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		conf := config.New()
		db, disconnect, err := connect(ctx, conf)
		if err != nil {
			return err
		}
		defer disconnect()

		created, err := handlers.BootstrapHeadDeveloper(ctx, databases.NewUserDatabase(db), conf.HeadDevName, conf.HeadDevPassport, conf.HeadDevPassword)
		if err != nil {
			return err
		}
		if !created {
			fmt.Println("Head developer already exists or is not configured")
			return nil
		}
		fmt.Printf("Created head developer %s\n", conf.HeadDevPassport)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedStatutesCmd)
	rootCmd.AddCommand(bootstrapCmd)
}
