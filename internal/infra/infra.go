package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/catalog/internal/config"
	"github.com/Alturino/catalog/internal/log"
)

// Clients is the application context built once at startup and handed to
// whatever needs the store or the cache.
type Clients struct {
	DB    *pgxpool.Pool
	Cache *redis.Client
}

func NewClients(c context.Context, cfg config.Config) (Clients, error) {
	db, err := NewDatabaseClient(c, cfg.Database)
	if err != nil {
		return Clients{}, err
	}

	cache, err := NewCacheClient(c, cfg.Cache)
	if err != nil {
		db.Close()
		return Clients{}, err
	}

	return Clients{DB: db, Cache: cache}, nil
}

func (cl Clients) Close(c context.Context) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "infra Clients Close").Logger()

	logger = logger.With().Str(log.KeyProcess, "shutting down cache connection").Logger()
	logger.Info().Msg("shutting down cache connection")
	if cl.Cache != nil {
		if err := cl.Cache.Close(); err != nil {
			err = fmt.Errorf("failed closing cache with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}
	logger.Info().Msg("shutdown cache connection")

	logger = logger.With().Str(log.KeyProcess, "shutting down database connection").Logger()
	logger.Info().Msg("shutting down database connection")
	if cl.DB != nil {
		cl.DB.Close()
	}
	logger.Info().Msg("shutdown database connection")
}
