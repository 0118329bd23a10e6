package main

import (
	"os"

	"github.com/DRSN-tech/catalog/internal/app"
	config "github.com/DRSN-tech/catalog/internal/cfg"
	"github.com/DRSN-tech/catalog/pkg/logger"
)

//	@title			Product Catalog Gateway API
//	@version		1.0
//	@description	REST-шлюз каталога товаров поверх GraphQL catalog-сервиса.
//	@BasePath		/

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.LoadGateway(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewGatewayApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize gateway")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
