// Package cache is the best-effort key-value layer in front of the catalog
// store. Nothing here returns an error on transport failure: an unreachable
// redis reads as a miss and writes are dropped.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	catalogErrors "github.com/Alturino/catalog/catalog/internal/errors"
	"github.com/Alturino/catalog/catalog/internal/otel"
	"github.com/Alturino/catalog/internal/log"
	inOtel "github.com/Alturino/catalog/internal/otel"
)

type Status int

const (
	StatusMiss Status = iota
	StatusHit
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusHit:
		return "hit"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "miss"
	}
}

// Lookup is the outcome of a Get. Absence and outage both carry no value.
type Lookup struct {
	Value  []byte
	Status Status
}

func (l Lookup) Hit() bool {
	return l.Status == StatusHit
}

type Gateway struct {
	client *redis.Client
}

func NewGateway(client *redis.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Get(c context.Context, key string) Lookup {
	c, span := otel.Tracer.Start(c, "cache Gateway Get")
	defer span.End()
	span.SetAttributes(attribute.String(log.KeyCacheKey, key))

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "cache Gateway Get").
		Str(log.KeyCacheKey, key).
		Logger()

	logger.Trace().Msg("getting value from cache")
	value, err := g.client.Get(c, key).Bytes()
	if errors.Is(err, redis.Nil) {
		span.AddEvent("cache miss")
		logger.Debug().Msg("cache miss")
		return Lookup{Status: StatusMiss}
	}
	if err != nil {
		err = fmt.Errorf("%w: failed getting key from cache with error=%w", catalogErrors.ErrCacheUnavailable, err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return Lookup{Status: StatusUnavailable}
	}
	span.AddEvent("cache hit")
	logger.Debug().Msg("cache hit")

	return Lookup{Value: value, Status: StatusHit}
}

func (g *Gateway) Set(c context.Context, key string, value []byte, ttl time.Duration) {
	c, span := otel.Tracer.Start(c, "cache Gateway Set")
	defer span.End()
	span.SetAttributes(
		attribute.String(log.KeyCacheKey, key),
		attribute.Int64("ttlSeconds", int64(ttl/time.Second)),
	)

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "cache Gateway Set").
		Str(log.KeyCacheKey, key).
		Dur("ttl", ttl).
		Logger()

	logger.Trace().Msg("setting value to cache")
	if err := g.client.Set(c, key, value, ttl).Err(); err != nil {
		err = fmt.Errorf("%w: failed setting key to cache with error=%w", catalogErrors.ErrCacheUnavailable, err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return
	}
	span.AddEvent("set value to cache")
	logger.Debug().Msg("set value to cache")
}

func (g *Gateway) Ping(c context.Context) error {
	return g.client.Ping(c).Err()
}
