package cmd

import (
	"github.com/spf13/cobra"

	catalogCmd "github.com/Alturino/catalog/catalog/cmd"
)

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Run catalog service",
		Run: func(cmd *cobra.Command, args []string) {
			catalogCmd.RunCatalogService(cmd.Context())
		},
	}
}
