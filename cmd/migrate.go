package cmd

import (
	"github.com/spf13/cobra"

	catalogCmd "github.com/Alturino/catalog/catalog/cmd"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply catalog schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogCmd.RunMigration(cmd.Context())
		},
	}
}
