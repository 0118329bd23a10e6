package rest

import (
	"context"
	"net/http"
	"time"

	_ "github.com/DRSN-tech/catalog/docs" // Swagger-спецификация
	"github.com/DRSN-tech/catalog/internal/delivery/v1/middleware"
	"github.com/DRSN-tech/catalog/internal/gateway"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const healthCheckTimeout = 2 * time.Second

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init регистрирует маршруты шлюза. Если health равен nil, /healthz не опрашивает catalog-сервис.
func (r *Router) Init(adapter *gateway.ProductsAdapter, health gateway.HealthChecker) {
	r.router.Use(
		middleware.RequestID,
		chiMiddleware.RealIP,
		middleware.Logging(r.logger),
		chiMiddleware.Recoverer,
	)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Get("/healthz", healthHandler(health, r.logger))

	prHandler := NewProductHandler(adapter, r.logger)
	r.router.Route(gateway.ProductsPath, func(pr chi.Router) {
		registerProductRoutes(pr, prHandler)
	})
	r.router.Route("/products", func(pr chi.Router) {
		registerProductRoutes(pr, prHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Get("/", prHandler.listProducts)
	router.Post("/", prHandler.createProduct)
	router.Get("/{id}", prHandler.getProduct)
	router.Put("/{id}", prHandler.updateProduct)
	router.Delete("/{id}", prHandler.deleteProduct)
}

func healthHandler(health gateway.HealthChecker, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()

			if err := health.Check(ctx); err != nil {
				log.Warnf("health check failed: %v", err)
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}

		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
