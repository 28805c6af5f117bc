package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Alturino/catalog/internal/common/constants"
	"github.com/Alturino/catalog/internal/log"
)

func Start() {
	logger := log.InitLogger("/var/log/catalog.log").
		With().
		Str(log.KeyAppName, constants.AppCatalog).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:          constants.AppCatalog,
		Short:        "Read-only product catalog API",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newCatalogCommand(), newMigrateCommand())
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
