package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	catalogErrors "github.com/Alturino/catalog/catalog/internal/errors"
	"github.com/Alturino/catalog/catalog/internal/otel"
	"github.com/Alturino/catalog/internal/log"
	inOtel "github.com/Alturino/catalog/internal/otel"
)

const findCategories = `SELECT id, name, description, slug FROM categories ORDER BY name`

func (q *Queries) FindCategories(c context.Context) ([]CategoryRow, error) {
	c, span := otel.Tracer.Start(c, "Queries FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Queries FindCategories").
		Logger()

	logger.Trace().Msg("querying categories")
	rows, err := q.db.Query(c, findCategories)
	if err != nil {
		err = fmt.Errorf("%w: failed querying categories with error=%w", catalogErrors.ErrStoreUnavailable, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[CategoryRow])
	if err != nil {
		err = fmt.Errorf("%w: failed scanning categories with error=%w", catalogErrors.ErrStoreUnavailable, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Int("rows", len(categories)).Msg("queried categories")

	return categories, nil
}
