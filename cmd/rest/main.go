package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-journaling-be/internal/bootstrap"
	"ai-journaling-be/internal/config"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/server"
	"ai-journaling-be/internal/tracer"
	"ai-journaling-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.App, sysLogger)
	defer func() { _ = shutdownTracer(context.Background()) }()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Debug)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	if err := container.StartWorkers(ctx); err != nil {
		log.Panicf("Unable to start workers: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	if err := srv.Run(); err != nil {
		sysLogger.Error("SERVER", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
