package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	catalogErrors "github.com/Alturino/catalog/catalog/internal/errors"
	"github.com/Alturino/catalog/catalog/internal/otel"
	"github.com/Alturino/catalog/catalog/internal/query"
	"github.com/Alturino/catalog/internal/log"
	inOtel "github.com/Alturino/catalog/internal/otel"
)

const findProductById = `SELECT p.id, p.name, p.description, p.price, p.category_id, p.sku, p.brand,
       p.stock_quantity, p.image_url, p.is_active, p.created_at, c.name AS category_name
FROM products p
LEFT JOIN categories c ON p.category_id = c.id
WHERE p.id = $1 AND p.is_active = true`

func (q *Queries) FindProducts(c context.Context, qry query.Query) ([]ProductRow, error) {
	c, span := otel.Tracer.Start(c, "Queries FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Queries FindProducts").
		Any(log.KeyQueryArgs, qry.Args).
		Logger()

	logger.Trace().Msg("querying products")
	rows, err := q.db.Query(c, qry.SQL, qry.Args...)
	if err != nil {
		err = fmt.Errorf("%w: failed querying products with error=%w", catalogErrors.ErrStoreUnavailable, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[ProductRow])
	if err != nil {
		err = fmt.Errorf("%w: failed scanning products with error=%w", catalogErrors.ErrStoreUnavailable, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(products)))
	logger.Trace().Int("rows", len(products)).Msg("queried products")

	return products, nil
}

func (q *Queries) FindProductByID(c context.Context, id int64) (ProductRow, error) {
	c, span := otel.Tracer.Start(c, "Queries FindProductByID")
	defer span.End()
	span.SetAttributes(attribute.Int64(log.KeyProductID, id))

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Queries FindProductByID").
		Int64(log.KeyProductID, id).
		Logger()

	logger.Trace().Msg("querying product")
	rows, err := q.db.Query(c, findProductById, id)
	if err != nil {
		err = fmt.Errorf("%w: failed querying product with error=%w", catalogErrors.ErrStoreUnavailable, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ProductRow{}, err
	}

	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[ProductRow])
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Debug().Msg("product not found")
		return ProductRow{}, fmt.Errorf("product id=%d: %w", id, catalogErrors.ErrProductNotFound)
	}
	if err != nil {
		err = fmt.Errorf("%w: failed scanning product with error=%w", catalogErrors.ErrStoreUnavailable, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ProductRow{}, err
	}
	logger.Trace().Msg("queried product")

	return product, nil
}
