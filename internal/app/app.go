package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog/internal/cfg"
	"github.com/DRSN-tech/catalog/internal/delivery/v1/gql"
	v1Grpc "github.com/DRSN-tech/catalog/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/catalog/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog/internal/repository/memory"
	"github.com/DRSN-tech/catalog/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog/internal/usecase"
	"github.com/DRSN-tech/catalog/pkg/closer"
	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/DRSN-tech/catalog/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const shutdownTimeout = 10 * time.Second

// CatalogApp — catalog-сервис: GraphQL поверх хранилища товаров и gRPC health.
type CatalogApp struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
}

// NewCatalogApp собирает зависимости catalog-сервиса.
func NewCatalogApp(cfg *config.Config, logger logger.Logger) (*CatalogApp, error) {
	cl := closer.NewCloser(0)

	productRepo, storage, err := initProductRepo(logger, cfg, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	policy := usecase.NewValidationPolicy(cfg.Validation.NonNegativePrice, cfg.Validation.MaxNameLength)
	productUC := usecase.NewProductUC(productRepo, policy, time.Now)

	schema, err := gql.NewSchema(productUC, logger)
	if err != nil {
		cl.Close(context.Background())
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(schema, storage)

	grpcSrv := v1Grpc.NewGRPCServer(cfg.Grpc)
	grpcSrv.RegisterServices()

	return &CatalogApp{
		cfg:     cfg,
		logger:  logger,
		closer:  cl,
		httpSrv: v1Http.NewServer(r, cfg.Http),
		grpcSrv: grpcSrv,
	}, nil
}

// Run запускает HTTP и gRPC серверы и блокируется до сигнала остановки или фатальной ошибки.
func (a *CatalogApp) Run() error {
	grpcErrCh := make(chan error, 1)
	go func() {
		defer close(grpcErrCh)
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	a.grpcSrv.SetServing(true)

	// Серверы останавливаются раньше хранилища (LIFO)
	a.closer.Add("grpc server", func(ctx context.Context) error {
		if err := a.grpcSrv.Stop(ctx); err != nil {
			return err
		}
		a.logger.Infof("gRPC server stopped")
		return nil
	})
	a.closer.Add("http server", func(ctx context.Context) error {
		a.grpcSrv.SetServing(false)
		if err := a.httpSrv.Stop(ctx); err != nil {
			return err
		}
		a.logger.Infof("HTTP server stopped")
		return nil
	})

	appErr := waitForShutdown(a.logger, errCh, grpcErrCh)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// initProductRepo выбирает хранилище по STORAGE_DRIVER.
// Для хранилища в памяти StorageChecker равен nil.
func initProductRepo(logger logger.Logger, cfg *config.Config, cl *closer.Closer) (usecase.ProductRepository, v1Http.StorageChecker, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warnf("using in-memory storage, data will not survive a restart")
		return memory.NewProductRepo(cfg.Storage.SearchCaseInsensitive), nil, nil
	case config.StorageDriverPostgres:
		db, err := initPGDB(logger, cfg)
		if err != nil {
			return nil, nil, err
		}

		cl.Add("postgres pool", func(context.Context) error {
			db.Close()
			logger.Infof("PostgreSQL pool closed")
			return nil
		})

		return pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverterImpl(), cfg.Storage.SearchCaseInsensitive), db, nil
	default:
		return nil, nil, e.Wrap(cfg.Storage.Driver, e.ErrUnknownStorageDriver)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// waitForShutdown ждёт сигнала остановки или ошибки любого из серверов.
func waitForShutdown(logger logger.Logger, errChs ...<-chan error) error {
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	return awaitStop(logger, shutdown, errChs...)
}

// awaitStop возвращает первую ошибку сервера или nil по сигналу.
// Каналы ошибок закрываются горутинами серверов, после чего пересылающие горутины завершаются.
func awaitStop(logger logger.Logger, stop <-chan os.Signal, errChs ...<-chan error) error {
	merged := make(chan error, len(errChs))
	for _, ch := range errChs {
		go func() {
			if err, ok := <-ch; ok {
				merged <- err
			}
		}()
	}

	select {
	case err := <-merged:
		logger.Errorf(err, "server fatal error")
		return err
	case <-stop:
		logger.Infof("Received shutdown signal, stopping gracefully...")
		return nil
	}
}
