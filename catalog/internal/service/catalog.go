package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/catalog/catalog/internal/cache"
	catalogErrors "github.com/Alturino/catalog/catalog/internal/errors"
	"github.com/Alturino/catalog/catalog/internal/metrics"
	"github.com/Alturino/catalog/catalog/internal/otel"
	"github.com/Alturino/catalog/catalog/internal/query"
	"github.com/Alturino/catalog/catalog/internal/repository"
	"github.com/Alturino/catalog/catalog/pkg/request"
	"github.com/Alturino/catalog/catalog/pkg/response"
	"github.com/Alturino/catalog/internal/log"
	inOtel "github.com/Alturino/catalog/internal/otel"
)

type Store interface {
	FindProducts(c context.Context, qry query.Query) ([]repository.ProductRow, error)
	FindProductByID(c context.Context, id int64) (repository.ProductRow, error)
	FindCategories(c context.Context) ([]repository.CategoryRow, error)
}

type Cache interface {
	Get(c context.Context, key string) cache.Lookup
	Set(c context.Context, key string, value []byte, ttl time.Duration)
}

// CatalogService serves catalog reads cache-aside. It holds no mutable state;
// concurrent misses on one key all go to the store and the last write wins.
type CatalogService struct {
	store   Store
	cache   Cache
	metrics *metrics.Metrics
}

func NewCatalogService(store Store, cache Cache, metrics *metrics.Metrics) *CatalogService {
	return &CatalogService{store: store, cache: cache, metrics: metrics}
}

func (svc *CatalogService) ListProducts(
	c context.Context,
	param request.ListProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService ListProducts")
	defer span.End()

	cacheKey := cache.ProductsKey(param.Skip, param.Limit, param.CategoryID, param.Search)
	span.SetAttributes(attribute.String(log.KeyCacheKey, cacheKey))
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CatalogService ListProducts").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	c = logger.WithContext(c)

	products, err := readThrough(c, svc, cache.KindProducts, cacheKey, cache.ProductsTTL,
		func(c context.Context) ([]response.Product, error) {
			logger.Trace().Msg("building products query")
			qry := query.BuildListProducts(query.Params{
				Skip:       param.Skip,
				Limit:      param.Limit,
				CategoryID: param.CategoryID,
				Search:     param.Search,
			})
			logger.Trace().Str(log.KeyQuery, qry.SQL).Msg("built products query")

			rows, err := svc.store.FindProducts(c, qry)
			if err != nil {
				svc.metrics.ObserveStore("find_products", "error")
				return nil, err
			}
			svc.metrics.ObserveStore("find_products", "ok")
			return repository.ProductsResponse(rows), nil
		},
	)
	if err != nil {
		err = fmt.Errorf("failed listing products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyProducts, len(products)).Msg("listed products")

	return products, nil
}

func (svc *CatalogService) GetProduct(c context.Context, id int64) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService GetProduct")
	defer span.End()

	cacheKey := cache.ProductKey(id)
	span.SetAttributes(attribute.String(log.KeyCacheKey, cacheKey))
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CatalogService GetProduct").
		Str(log.KeyCacheKey, cacheKey).
		Int64(log.KeyProductID, id).
		Logger()
	c = logger.WithContext(c)

	product, err := readThrough(c, svc, cache.KindProduct, cacheKey, cache.ProductTTL,
		func(c context.Context) (response.Product, error) {
			row, err := svc.store.FindProductByID(c, id)
			if errors.Is(err, catalogErrors.ErrProductNotFound) {
				svc.metrics.ObserveStore("find_product", "not_found")
				return response.Product{}, err
			}
			if err != nil {
				svc.metrics.ObserveStore("find_product", "error")
				return response.Product{}, err
			}
			svc.metrics.ObserveStore("find_product", "ok")
			return row.Response(), nil
		},
	)
	if errors.Is(err, catalogErrors.ErrProductNotFound) {
		span.AddEvent("product not found")
		logger.Info().Msg("product not found")
		return response.Product{}, err
	}
	if err != nil {
		err = fmt.Errorf("failed getting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("got product")

	return product, nil
}

func (svc *CatalogService) ListCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "CatalogService ListCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CatalogService ListCategories").
		Str(log.KeyCacheKey, cache.KeyCategories).
		Logger()
	c = logger.WithContext(c)

	categories, err := readThrough(c, svc, cache.KindCategories, cache.KeyCategories, cache.CategoriesTTL,
		func(c context.Context) ([]response.Category, error) {
			rows, err := svc.store.FindCategories(c)
			if err != nil {
				svc.metrics.ObserveStore("find_categories", "error")
				return nil, err
			}
			svc.metrics.ObserveStore("find_categories", "ok")
			return repository.CategoriesResponse(rows), nil
		},
	)
	if err != nil {
		err = fmt.Errorf("failed listing categories with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyCategories, len(categories)).Msg("listed categories")

	return categories, nil
}

// readThrough returns the cached payload under key when it decodes, otherwise
// loads from the store and populates the cache with ttl. Cache problems never
// fail the call; store errors always do, and nothing is cached for them.
func readThrough[T any](
	c context.Context,
	svc *CatalogService,
	kind string,
	key string,
	ttl time.Duration,
	load func(context.Context) (T, error),
) (T, error) {
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "finding "+kind+" in cache").Logger()

	logger.Trace().Msg("finding in cache")
	lookup := svc.cache.Get(c, key)
	svc.metrics.ObserveCache(kind, lookup.Status.String())
	if lookup.Hit() {
		var cached T
		err := cache.Decode(lookup.Value, kind, &cached)
		if err == nil {
			logger.Debug().Msg("found in cache")
			return cached, nil
		}
		err = fmt.Errorf("failed decoding cached %s with error=%w", kind, err)
		logger.Warn().Err(err).Msg(err.Error())
	} else {
		logger.Debug().Str(log.KeyCacheStatus, lookup.Status.String()).Msg("not found in cache")
	}

	logger = logger.With().Str(log.KeyProcess, "finding "+kind+" in database").Logger()
	logger.Trace().Msg("finding in database")
	value, err := load(c)
	if err != nil {
		var zero T
		return zero, err
	}
	logger.Debug().Msg("found in database")

	logger = logger.With().Str(log.KeyProcess, "inserting "+kind+" to cache").Logger()
	payload, err := cache.Encode(kind, value)
	if err != nil {
		err = fmt.Errorf("failed encoding %s for cache with error=%w", kind, err)
		logger.Warn().Err(err).Msg(err.Error())
		return value, nil
	}
	svc.cache.Set(c, key, payload, ttl)
	logger.Trace().Msg("inserted to cache")

	return value, nil
}
