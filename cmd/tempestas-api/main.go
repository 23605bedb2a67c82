package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tempestas-api/internal/config"
	"tempestas-api/internal/database"
	httpapi "tempestas-api/internal/http"
	"tempestas-api/internal/logger"
	"tempestas-api/internal/repository"
	"tempestas-api/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "tempestas-api")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := database.Open(ctx, &cfg.Database, log); err == nil {
			db = d
			log.Info("DB enabled for tempestas-api")
		} else {
			log.Warn("DB enabled but connection failed, falling back to in-memory repositories", zap.Error(err))
		}
	}

	var devicesRepo repository.DevicesRepository
	var measurementsRepo repository.MeasurementsRepository
	if db != nil {
		devicesRepo = repository.NewPostgresDevicesRepo(db, log)
		measurementsRepo = repository.NewPostgresMeasurementsRepo(db, log)
	} else {
		devicesRepo = repository.NewMemoryDevicesRepo()
		measurementsRepo = repository.NewMemoryMeasurementsRepo()
	}

	aiClient := service.NewAIClient(cfg.AI.BaseURL, log)
	devices := service.NewDeviceService(devicesRepo, log)
	measurements := service.NewMeasurementService(devicesRepo, measurementsRepo, log)
	predictions := service.NewPredictionService(measurementsRepo, aiClient, log)

	router := httpapi.NewRouter(log)
	router.RegisterDeviceRoutes(httpapi.NewDeviceHandler(devices, log))
	router.RegisterMeasurementRoutes(httpapi.NewMeasurementHandler(measurements, log))
	router.RegisterPredictionRoutes(httpapi.NewPredictionHandler(predictions, log))
	router.RegisterHealthRoutes(httpapi.NewHealthHandler(db, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = database.Close(db)
}
