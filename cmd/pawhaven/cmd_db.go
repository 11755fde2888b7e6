package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawhaven/pawhaven/config"
	"github.com/pawhaven/pawhaven/database/seeders"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/auth"
)

// pawhaven seed — run the registered seeders against the configured
// database.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database (admin user, pet categories)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		mongo, err := store.ConnectMongo(ctx, config.MongoURI(), config.MongoDB())
		if err != nil {
			return err
		}
		defer mongo.Close(context.Background())

		fmt.Println("Seeding", config.MongoDB())
		return seeders.RunAll(ctx, mongo)
	},
}

// pawhaven hash-password — print the bcrypt hash for an admin password,
// for the ADMIN_PASSWORD_HASH env entry.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}
