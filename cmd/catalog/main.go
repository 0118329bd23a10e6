package main

import (
	"os"

	"github.com/DRSN-tech/catalog/internal/app"
	config "github.com/DRSN-tech/catalog/internal/cfg"
	"github.com/DRSN-tech/catalog/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.LoadCatalog(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewCatalogApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
