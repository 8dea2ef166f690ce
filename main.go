package main

import (
	"buysell_server/api"
	"buysell_server/config"
	"buysell_server/database"
	"buysell_server/services"
	"buysell_server/structs"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init loads environment variables and initializes the logger and database
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}

	if cfg.Database.RunMigrations {
		if err := database.GetInstance().Migrate(logger); err != nil {
			logger.Fatal("Failed to run migrations", gecho.Field("error", err))
		}
	}
}

func main() {
	db := database.GetInstance()
	sm := services.NewServiceManager(logger, cfg, db)

	server := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(cfg, sm, db),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", gecho.Field("error", err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", gecho.Field("error", err))
	}
	if err := sm.CacheService.Close(); err != nil {
		logger.Warn("Failed to close redis connection", gecho.Field("error", err))
	}
	if err := database.CloseInstance(); err != nil {
		logger.Warn("Failed to close database", gecho.Field("error", err))
	}

	logger.Info("Server stopped")
}
