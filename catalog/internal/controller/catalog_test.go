package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/catalog/catalog/internal/cache"
	catalogErrors "github.com/Alturino/catalog/catalog/internal/errors"
	"github.com/Alturino/catalog/catalog/internal/query"
	"github.com/Alturino/catalog/catalog/internal/repository"
	"github.com/Alturino/catalog/catalog/internal/service"
)

type stubStore struct {
	down    bool
	queries []query.Query
}

func (s *stubStore) FindProducts(_ context.Context, qry query.Query) ([]repository.ProductRow, error) {
	s.queries = append(s.queries, qry)
	if s.down {
		return nil, fmt.Errorf("%w: failed querying products", catalogErrors.ErrStoreUnavailable)
	}
	return []repository.ProductRow{mug()}, nil
}

func (s *stubStore) FindProductByID(_ context.Context, id int64) (repository.ProductRow, error) {
	if s.down {
		return repository.ProductRow{}, fmt.Errorf("%w: failed querying product", catalogErrors.ErrStoreUnavailable)
	}
	if id != 1 {
		return repository.ProductRow{}, fmt.Errorf("product id=%d: %w", id, catalogErrors.ErrProductNotFound)
	}
	return mug(), nil
}

func (s *stubStore) FindCategories(context.Context) ([]repository.CategoryRow, error) {
	if s.down {
		return nil, fmt.Errorf("%w: failed querying categories", catalogErrors.ErrStoreUnavailable)
	}
	return []repository.CategoryRow{{ID: 1, Name: "Kitchen", Slug: "kitchen"}}, nil
}

type missCache struct{}

func (missCache) Get(context.Context, string) cache.Lookup {
	return cache.Lookup{Status: cache.StatusMiss}
}

func (missCache) Set(context.Context, string, []byte, time.Duration) {}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func mug() repository.ProductRow {
	price := pgtype.Numeric{}
	if err := price.Scan("12.50"); err != nil {
		panic(err)
	}
	return repository.ProductRow{
		ID:            1,
		Name:          "Red Mug",
		Price:         price,
		CategoryID:    1,
		StockQuantity: 10,
		IsActive:      true,
		CreatedAt:     pgtype.Timestamptz{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true},
	}
}

func newRouter(store *stubStore, database, redis error) *mux.Router {
	router := mux.NewRouter()
	AttachCatalogController(router, service.NewCatalogService(store, missCache{}, nil))
	AttachHealthController(
		router,
		service.NewHealthService(stubPinger{database}, stubPinger{redis}),
		"catalog-service",
		"1.0.0",
	)
	return router
}

func serve(t *testing.T, router http.Handler, target string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec.Code, body
}

func TestListProducts(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		down       bool
		statusCode int
		args       []any
	}{
		{
			name:       "given no params should use default paging",
			target:     "/api/v1/products",
			statusCode: http.StatusOK,
			args:       []any{50, 0},
		},
		{
			name:       "given all params should pass them to the query",
			target:     "/api/v1/products?skip=10&limit=5&category_id=2&search=mug",
			statusCode: http.StatusOK,
			args:       []any{int64(2), "%mug%", 5, 10},
		},
		{
			name:       "given limit above maximum should return bad request",
			target:     "/api/v1/products?limit=101",
			statusCode: http.StatusBadRequest,
		},
		{
			name:       "given negative skip should return bad request",
			target:     "/api/v1/products?skip=-1",
			statusCode: http.StatusBadRequest,
		},
		{
			name:       "given non numeric category should return bad request",
			target:     "/api/v1/products?category_id=abc",
			statusCode: http.StatusBadRequest,
		},
		{
			name:       "given store outage should return generic internal error",
			target:     "/api/v1/products",
			down:       true,
			statusCode: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := &stubStore{down: test.down}

			statusCode, body := serve(t, newRouter(store, nil, nil), test.target)

			assert.Equal(t, test.statusCode, statusCode)
			switch test.statusCode {
			case http.StatusOK:
				require.Len(t, store.queries, 1)
				assert.Equal(t, test.args, store.queries[0].Args)
				products := body["data"].(map[string]any)["products"].([]any)
				require.Len(t, products, 1)
				assert.Equal(t, "12.5", products[0].(map[string]any)["price"])
			case http.StatusBadRequest:
				assert.Empty(t, store.queries)
				assert.Equal(t, "failed", body["status"])
			case http.StatusInternalServerError:
				assert.Equal(t, messageDatabaseError, body["message"])
			}
		})
	}
}

func TestGetProduct(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		down       bool
		statusCode int
		message    string
	}{
		{
			name:       "given existing id should return product",
			target:     "/api/v1/products/1",
			statusCode: http.StatusOK,
			message:    "product id=1 found",
		},
		{
			name:       "given unknown id should return not found",
			target:     "/api/v1/products/999",
			statusCode: http.StatusNotFound,
			message:    messageProductNotFound,
		},
		{
			name:       "given store outage should not report not found",
			target:     "/api/v1/products/1",
			down:       true,
			statusCode: http.StatusInternalServerError,
			message:    messageDatabaseError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			statusCode, body := serve(t, newRouter(&stubStore{down: test.down}, nil, nil), test.target)

			assert.Equal(t, test.statusCode, statusCode)
			assert.Equal(t, test.message, body["message"])
		})
	}

	t.Run("given non integer id should return bad request", func(t *testing.T) {
		statusCode, body := serve(t, newRouter(&stubStore{}, nil, nil), "/api/v1/products/abc")

		assert.Equal(t, http.StatusBadRequest, statusCode)
		assert.Contains(t, body["message"], catalogErrors.ErrInvalidProductID.Error())
	})
}

func TestListCategories(t *testing.T) {
	t.Run("given available store should return categories", func(t *testing.T) {
		statusCode, body := serve(t, newRouter(&stubStore{}, nil, nil), "/api/v1/categories")

		assert.Equal(t, http.StatusOK, statusCode)
		categories := body["data"].(map[string]any)["categories"].([]any)
		require.Len(t, categories, 1)
		assert.Equal(t, "kitchen", categories[0].(map[string]any)["slug"])
	})

	t.Run("given store outage should return generic internal error", func(t *testing.T) {
		statusCode, body := serve(t, newRouter(&stubStore{down: true}, nil, nil), "/api/v1/categories")

		assert.Equal(t, http.StatusInternalServerError, statusCode)
		assert.Equal(t, messageDatabaseError, body["message"])
	})
}

func TestHealth(t *testing.T) {
	down := errors.New("connection refused")
	tests := []struct {
		name       string
		database   error
		redis      error
		statusCode int
		status     string
	}{
		{name: "given both up should be healthy", statusCode: http.StatusOK, status: service.HealthStatusHealthy},
		{name: "given redis down should be unavailable", redis: down, statusCode: http.StatusServiceUnavailable, status: service.HealthStatusUnhealthy},
		{name: "given database down should be unavailable", database: down, statusCode: http.StatusServiceUnavailable, status: service.HealthStatusUnhealthy},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			statusCode, body := serve(t, newRouter(&stubStore{}, test.database, test.redis), "/health")

			assert.Equal(t, test.statusCode, statusCode)
			assert.Equal(t, test.status, body["status"])
			assert.Len(t, body["services"], 2)
		})
	}

	t.Run("given root should return name and version", func(t *testing.T) {
		statusCode, body := serve(t, newRouter(&stubStore{}, nil, nil), "/")

		assert.Equal(t, http.StatusOK, statusCode)
		assert.Equal(t, "catalog-service", body["message"])
		assert.Equal(t, "1.0.0", body["version"])
	})
}
