package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	catalogErrors "github.com/Alturino/catalog/catalog/internal/errors"
	"github.com/Alturino/catalog/catalog/internal/otel"
	"github.com/Alturino/catalog/catalog/internal/service"
	"github.com/Alturino/catalog/catalog/pkg/request"
	inHttp "github.com/Alturino/catalog/internal/http"
	"github.com/Alturino/catalog/internal/log"
	inOtel "github.com/Alturino/catalog/internal/otel"
)

const (
	messageDatabaseError   = "Database error"
	messageProductNotFound = "Product not found"
)

type CatalogController struct {
	service  *service.CatalogService
	validate *validator.Validate
}

func AttachCatalogController(router *mux.Router, service *service.CatalogService) {
	controller := CatalogController{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/products", controller.ListProducts).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/products/{productId}", controller.GetProduct).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/categories", controller.ListCategories).Methods(http.MethodGet, http.MethodOptions)
}

func (ctrl CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController ListProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CatalogController ListProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing query params").Logger()
	logger.Trace().Msg("parsing query params")
	param, err := request.ParseListProducts(r.URL.Query())
	if err != nil {
		err = fmt.Errorf("%w: %w", catalogErrors.ErrInvalidQueryParam, err)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With().Any(log.KeyQueryArgs, param).Logger()
	logger.Trace().Msg("parsed query params")

	logger = logger.With().Str(log.KeyProcess, "validating query params").Logger()
	logger.Trace().Msg("validating query params")
	if err := ctrl.validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("%w: failed validating query params with error=%w", catalogErrors.ErrInvalidQueryParam, err)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Trace().Msg("validated query params")

	logger = logger.With().Str(log.KeyProcess, "listing products").Logger()
	logger.Trace().Msg("listing products")
	c = logger.WithContext(c)
	products, err := ctrl.service.ListProducts(c, param)
	if err != nil {
		err = fmt.Errorf("failed listing products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusInternalServerError, messageDatabaseError)
		return
	}
	logger.Info().Int(log.KeyProducts, len(products)).Msg("listed products")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (ctrl CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController GetProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CatalogController GetProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting pathValue productId").Logger()
	logger.Trace().Msg("getting pathValue productId")
	rawId := mux.Vars(r)["productId"]
	id, err := strconv.ParseInt(rawId, 10, 64)
	if err != nil {
		err = fmt.Errorf("%w: productId=%q with error=%w", catalogErrors.ErrInvalidProductID, rawId, err)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.Int64(log.KeyProductID, id))
	logger = logger.With().Int64(log.KeyProductID, id).Logger()
	logger.Trace().Msg("got pathValue productId")

	logger = logger.With().Str(log.KeyProcess, "getting product").Logger()
	logger.Trace().Msg("getting product")
	c = logger.WithContext(c)
	product, err := ctrl.service.GetProduct(c, id)
	if errors.Is(err, catalogErrors.ErrProductNotFound) {
		span.AddEvent("product not found")
		logger.Info().Msg("product not found")
		inHttp.WriteFailed(c, w, http.StatusNotFound, messageProductNotFound)
		return
	}
	if err != nil {
		err = fmt.Errorf("failed getting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusInternalServerError, messageDatabaseError)
		return
	}
	logger.Info().Msg("got product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product id=%d found", id),
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (ctrl CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController ListCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CatalogController ListCategories").
		Str(log.KeyProcess, "listing categories").
		Logger()

	logger.Trace().Msg("listing categories")
	c = logger.WithContext(c)
	categories, err := ctrl.service.ListCategories(c)
	if err != nil {
		err = fmt.Errorf("failed listing categories with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusInternalServerError, messageDatabaseError)
		return
	}
	logger.Info().Int(log.KeyCategories, len(categories)).Msg("listed categories")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "categories found",
		"data": map[string]interface{}{
			"categories": categories,
		},
	})
}
