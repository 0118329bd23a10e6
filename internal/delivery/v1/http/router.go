package http

import (
	"context"
	"net/http"
	"time"

	"github.com/DRSN-tech/catalog/internal/delivery/v1/middleware"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/graphql-go/graphql"
)

const healthCheckTimeout = 2 * time.Second

// StorageChecker проверяет доступность хранилища.
type StorageChecker interface {
	Check(ctx context.Context) error
}

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init регистрирует маршруты catalog-сервиса. storage может быть nil (хранилище в памяти).
func (r *Router) Init(schema graphql.Schema, storage StorageChecker) {
	r.router.Use(
		middleware.RequestID,
		chiMiddleware.RealIP,
		middleware.Logging(r.logger),
		chiMiddleware.Recoverer,
	)

	r.router.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if storage != nil {
			ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
			defer cancel()

			if err := storage.Check(ctx); err != nil {
				r.logger.Warnf("storage health check failed: %v", err)
				WriteSuccess(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}

		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	gqlHandler := NewGraphQLHandler(schema, r.logger)
	r.router.Post("/graphql", gqlHandler.serveGraphQL)
}
