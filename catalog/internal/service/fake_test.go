package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Alturino/catalog/catalog/internal/cache"
	catalogErrors "github.com/Alturino/catalog/catalog/internal/errors"
	"github.com/Alturino/catalog/catalog/internal/query"
	"github.com/Alturino/catalog/catalog/internal/repository"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

type fakeStore struct {
	mu         sync.Mutex
	products   []repository.ProductRow
	categories []repository.CategoryRow
	down       bool
	queries    []query.Query
	calls      map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: []repository.ProductRow{
			productRow(1, "Red Mug", "12.50"),
			productRow(3, "Gaming Mouse", "49.99"),
		},
		categories: []repository.CategoryRow{
			{ID: 3, Name: "Audio", Slug: "audio"},
			{ID: 1, Name: "Kitchen", Slug: "kitchen"},
		},
		calls: map[string]int{},
	}
}

func productRow(id int64, name string, price string) repository.ProductRow {
	n := pgtype.Numeric{}
	if err := n.Scan(price); err != nil {
		panic(err)
	}
	return repository.ProductRow{
		ID:            id,
		Name:          name,
		Price:         n,
		CategoryID:    1,
		StockQuantity: 10,
		IsActive:      true,
		CreatedAt: pgtype.Timestamptz{
			Time:  time.Date(2025, 1, int(id), 10, 0, 0, 0, time.UTC),
			Valid: true,
		},
	}
}

func (s *fakeStore) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *fakeStore) FindProducts(c context.Context, qry query.Query) ([]repository.ProductRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["FindProducts"]++
	s.queries = append(s.queries, qry)
	if s.down {
		return nil, fmt.Errorf("%w: %w", catalogErrors.ErrStoreUnavailable, errConnRefused)
	}
	return append([]repository.ProductRow{}, s.products...), nil
}

func (s *fakeStore) FindProductByID(c context.Context, id int64) (repository.ProductRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["FindProductByID"]++
	if s.down {
		return repository.ProductRow{}, fmt.Errorf("%w: %w", catalogErrors.ErrStoreUnavailable, errConnRefused)
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return repository.ProductRow{}, catalogErrors.ErrProductNotFound
}

func (s *fakeStore) FindCategories(c context.Context) ([]repository.CategoryRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["FindCategories"]++
	if s.down {
		return nil, fmt.Errorf("%w: %w", catalogErrors.ErrStoreUnavailable, errConnRefused)
	}
	return append([]repository.CategoryRow{}, s.categories...), nil
}

type entry struct {
	value []byte
	ttl   time.Duration
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]entry
	down    bool
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]entry{}}
}

func (f *fakeCache) Get(c context.Context, key string) cache.Lookup {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.down {
		return cache.Lookup{Status: cache.StatusUnavailable}
	}
	e, ok := f.entries[key]
	if !ok {
		return cache.Lookup{Status: cache.StatusMiss}
	}
	return cache.Lookup{Value: e.value, Status: cache.StatusHit}
}

func (f *fakeCache) Set(c context.Context, key string, value []byte, ttl time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.down {
		return
	}
	f.entries[key] = entry{value: value, ttl: ttl}
}

func (f *fakeCache) entry(key string) (entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[key]
	return e, ok
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
