package main

import (
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"go.uber.org/zap"

	"github.com/chazu/foilworks/internal/api"
	"github.com/chazu/foilworks/internal/config"
	"github.com/chazu/foilworks/internal/logging"
	"github.com/chazu/foilworks/pkg/naca6"
)

func main() {
	cfg, err := config.Load("foilworks.yaml")
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := logging.New(cfg.Logging, false)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	lib, err := naca6.Load(cfg.NACA6.Dir, cfg.NACA6.File)
	if err != nil {
		logger.Fatal("failed to load 6-series base shapes", zap.Error(err))
	}

	app := NewApp(cfg, lib, logger)

	// The API router doubles as the asset handler so the frontend can
	// fetch exports (dat, dxf, png) from the same origin.
	err = wails.Run(&options.App{
		Title:  "foilworks",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Handler: api.New(cfg, lib, logger),
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Fatal("wails", zap.Error(err))
	}
}
