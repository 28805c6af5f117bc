package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/catalog/catalog/internal/otel"
	"github.com/Alturino/catalog/catalog/pkg/response"
	"github.com/Alturino/catalog/internal/log"
	inOtel "github.com/Alturino/catalog/internal/otel"
)

const (
	HealthStatusHealthy   = response.HealthStatusHealthy
	HealthStatusUnhealthy = response.HealthStatusUnhealthy
	serviceStatusOk       = "ok"
	serviceStatusDown     = "unavailable"
)

type Pinger interface {
	Ping(c context.Context) error
}

type HealthService struct {
	database Pinger
	cache    Pinger
}

func NewHealthService(database Pinger, cache Pinger) *HealthService {
	return &HealthService{database: database, cache: cache}
}

// Check pings the store and the cache. The service is healthy only when both answer.
func (svc *HealthService) Check(c context.Context) response.Health {
	c, span := otel.Tracer.Start(c, "HealthService Check")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "HealthService Check").
		Logger()

	health := response.Health{
		Status:   HealthStatusHealthy,
		Services: map[string]string{"database": serviceStatusOk, "redis": serviceStatusOk},
	}

	if err := svc.database.Ping(c); err != nil {
		err = fmt.Errorf("failed ping database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		health.Status = HealthStatusUnhealthy
		health.Services["database"] = serviceStatusDown
	}

	if err := svc.cache.Ping(c); err != nil {
		err = fmt.Errorf("failed ping redis with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		health.Status = HealthStatusUnhealthy
		health.Services["redis"] = serviceStatusDown
	}

	return health
}
