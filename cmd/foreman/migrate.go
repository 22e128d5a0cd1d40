package main

import "github.com/spf13/cobra"

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := openApp()

			if err != nil {
				return err
			}

			defer a.close()

			return a.migrate()
		},
	}
}
