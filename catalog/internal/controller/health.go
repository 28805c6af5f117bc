package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/catalog/catalog/internal/otel"
	"github.com/Alturino/catalog/catalog/internal/service"
	inHttp "github.com/Alturino/catalog/internal/http"
	"github.com/Alturino/catalog/internal/log"
)

type HealthController struct {
	service *service.HealthService
	name    string
	version string
}

func AttachHealthController(router *mux.Router, service *service.HealthService, name, version string) {
	controller := HealthController{service: service, name: name, version: version}

	router.HandleFunc("/health", controller.Health).Methods(http.MethodGet)
	router.HandleFunc("/", controller.Root).Methods(http.MethodGet)
}

func (ctrl HealthController) Health(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "HealthController Health")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "HealthController Health").
		Logger()

	health := ctrl.service.Check(c)
	statusCode := http.StatusOK
	if !health.Healthy() {
		statusCode = http.StatusServiceUnavailable
		logger.Warn().Any("services", health.Services).Msg("service unhealthy")
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     health.Status,
		"statusCode": statusCode,
		"services":   health.Services,
	})
}

func (ctrl HealthController) Root(w http.ResponseWriter, r *http.Request) {
	inHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    ctrl.name,
		"version":    ctrl.version,
	})
}
