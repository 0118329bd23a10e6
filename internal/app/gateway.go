package app

import (
	"context"
	"errors"
	"net/http"

	config "github.com/DRSN-tech/catalog/internal/cfg"
	"github.com/DRSN-tech/catalog/internal/delivery/v1/rest"
	v1Http "github.com/DRSN-tech/catalog/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog/internal/gateway"
	"github.com/DRSN-tech/catalog/internal/infrastructure/catalog"
	"github.com/DRSN-tech/catalog/pkg/closer"
	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// GatewayApp — REST-шлюз, проксирующий операции в GraphQL catalog-сервиса.
type GatewayApp struct {
	cfg     *config.GatewayConfig
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
}

// NewGatewayApp собирает зависимости шлюза.
func NewGatewayApp(cfg *config.GatewayConfig, logger logger.Logger) (*GatewayApp, error) {
	cl := closer.NewCloser(0)

	catalogClient := catalog.NewClient(&http.Client{Timeout: cfg.Upstream.Timeout}, cfg.Upstream.GraphQLURL)
	adapter := gateway.NewProductsAdapter(catalogClient, logger)

	var health gateway.HealthChecker
	if cfg.Upstream.GrpcAddr != "" {
		probe, err := catalog.NewHealthProbe(cfg.Upstream.GrpcAddr)
		if err != nil {
			logger.Errorf(err, "failed to initialize grpc health client")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		cl.Add("grpc health client", func(context.Context) error {
			return probe.Close()
		})
		health = probe
	}

	r := chi.NewRouter()
	router := rest.NewRouter(r, logger)
	router.Init(adapter, health)

	return &GatewayApp{
		cfg:     cfg,
		logger:  logger,
		closer:  cl,
		httpSrv: v1Http.NewServer(r, cfg.Http),
	}, nil
}

// Run запускает HTTP-сервер шлюза и блокируется до сигнала остановки или фатальной ошибки.
func (a *GatewayApp) Run() error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		a.logger.Infof("HTTP gateway started on port %s, upstream %s", a.cfg.Http.Port, a.cfg.Upstream.GraphQLURL)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	a.closer.Add("http server", func(ctx context.Context) error {
		if err := a.httpSrv.Stop(ctx); err != nil {
			return err
		}
		a.logger.Infof("HTTP server stopped")
		return nil
	})

	appErr := waitForShutdown(a.logger, errCh)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}

	a.logger.Infof("Gateway shutdown complete")
	return appErr
}
