// main.go
package main

import (
	"log"

	"qr-attendance/cmd"
	"qr-attendance/internal/data/repository"
	"qr-attendance/internal/wire"
	"qr-attendance/pkg/database"
	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.Storage.Backend),
		zap.Bool("debug", config.App.Debug),
	)

	// Pick the store backend; core logic only sees the repository interfaces
	var repo *repository.Repository
	switch config.Storage.Backend {
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Database connected successfully")
		repo = repository.NewRepository(db, logger)

	case "redis":
		rdb := database.NewRedis(config.Redis.Addr)
		defer rdb.Client.Close()
		logger.Info("Redis store selected", zap.String("addr", config.Redis.Addr))
		repo = repository.NewRedisRepository(rdb, logger)

	default:
		logger.Info("In-memory store selected; records do not survive restarts")
		repo = repository.NewMemoryRepository(logger)
	}

	// Wire all dependencies
	app := wire.Wiring(repo, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
