// @title School Planner API
// @version 1.0
// @description Record store behind the school planner: homework, timetable, profiles, quiz progress and roles.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"

	"school_planner_backend/internal/app"
	"school_planner_backend/internal/config"
	"school_planner_backend/internal/service"
	"school_planner_backend/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on startup even in release mode")
	seedScenes := flag.String("seed-scenes", "", "upload the scene background images found in this directory and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to read .env: %v", err)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	if *seedScenes != "" {
		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		scenes := service.NewSceneService(service.NewStorageService(cfg))
		n, err := scenes.PublishAssets(context.Background(), *seedScenes)
		if err != nil {
			logger.Log.Fatal("Failed to publish scene assets", zap.Error(err))
		}
		logger.Log.Info("Scene assets published", zap.Int("count", n))
		return
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer logger.Log.Sync()
	defer application.Close()
	application.ConfigDir = *configDir

	if *migrateOnly {
		logger.Log.Info("Database migration completed, exiting")
		return
	}

	if err := application.Run(); err != nil {
		logger.Log.Error("Server stopped", zap.Error(err))
	}
}
