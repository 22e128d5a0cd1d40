package main

import (
	"github.com/spf13/cobra"

	"github.com/foreman-dev/foreman/db"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default accounts and sample projects into an empty database",
		Long: `Load the default accounts (admin/admin123, john_doe and jane_smith with
employee123) and sample projects, tasks and resources.

Nothing is inserted when the users table already has rows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()

			if err != nil {
				return err
			}

			defer a.close()

			if err := a.migrate(); err != nil {
				return err
			}

			_, err = db.Seed(cmd.Context(), a.db, a.logger)

			return err
		},
	}
}
