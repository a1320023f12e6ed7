package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dnminh/vshop/config"
	"github.com/dnminh/vshop/internal/db"
	"github.com/dnminh/vshop/internal/mockapi"
	"github.com/dnminh/vshop/internal/storage"
	"github.com/dnminh/vshop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting vshop fixture API", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	var uploads storage.Storage
	if cfg.S3.AccessKeyID != "" || cfg.S3.BaseURL != "" {
		uploads = storage.NewS3Storage(&cfg.S3)
	} else {
		local, err := storage.NewLocalStorage("./uploads", "http://localhost:"+cfg.Server.Port)
		if err != nil {
			logger.Fatal("Failed to prepare upload directory", err)
		}
		uploads = local
	}

	server := mockapi.NewServer(db.GetDB(), uploads, cfg)
	engine := server.Router()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Fixture API started", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down fixture API")
}
