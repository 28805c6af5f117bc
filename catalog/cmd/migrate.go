package cmd

import (
	"context"
	"fmt"

	catalogOtel "github.com/Alturino/catalog/catalog/internal/otel"
	"github.com/Alturino/catalog/internal/common/constants"
	"github.com/Alturino/catalog/internal/config"
	"github.com/Alturino/catalog/internal/infra"
	"github.com/Alturino/catalog/internal/log"
	"github.com/Alturino/catalog/internal/otel"
)

// RunMigration applies pending schema migrations and exits without serving.
func RunMigration(c context.Context) error {
	c, span := catalogOtel.Tracer.Start(c, "RunMigration")
	defer span.End()

	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.AppCatalogMigrate)).
		With().
		Str(log.KeyAppName, constants.AppCatalogMigrate).
		Str(log.KeyTag, "main RunMigration").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg, err := config.InitConfig(c, constants.AppCatalogService)
	if err != nil {
		err = fmt.Errorf("failed initializing config with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	pool, err := infra.NewDatabaseClient(c, cfg.Database)
	if err != nil {
		err = fmt.Errorf("failed initializing database with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer pool.Close()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "migrating database").Logger()
	logger.Info().Msg("migrating database")
	c = logger.WithContext(c)
	if err := infra.MigrateUp(c, pool, cfg.Database); err != nil {
		err = fmt.Errorf("failed migrating database with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("migrated database")

	return nil
}
