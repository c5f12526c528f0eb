package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/databases"
)

var hashOnly bool

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <passport> <password>",
	Short: "Set a new password for an officer",
	Long: `reset-password bcrypt-hashes the password and stores it on the officer
registered under passport.

Examples:
  # Reset the password of officer 1234
  ./avenue-police-api reset-password 1234 newsecret

  # Only print the hash, without touching the database
  ./avenue-police-api reset-password 1234 newsecret --hash-only`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		passport, password := args[0], args[1]
		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		if hashOnly {
			fmt.Printf("Bcrypt Hash: %s\n", hash)
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		db, disconnect, err := connect(ctx, config.New())
		if err != nil {
			return err
		}
		defer disconnect()

		res, err := databases.NewUserDatabase(db).UpdateOne(ctx,
			bson.M{"user.passport": passport},
			bson.M{"$set": bson.M{"user.password": hash}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("no officer with passport %s", passport)
		}
		fmt.Printf("Password updated for %s\n", passport)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetPasswordCmd)
	resetPasswordCmd.Flags().BoolVar(&hashOnly, "hash-only", false, "Print the bcrypt hash instead of updating the database")
}

func hashPassword(password string) (string, error) {
	if len(password) < 4 {
		return "", fmt.Errorf("password must be at least 4 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error generating hash: %w", err)
	}
	return string(hash), nil
}
