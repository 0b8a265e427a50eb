package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-canvas-be/internal/bootstrap"
	"ai-canvas-be/internal/config"
	"ai-canvas-be/internal/server"
	"ai-canvas-be/internal/tracer"
	"ai-canvas-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	// A failed open is not fatal: persistence degrades to the key-value tier.
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Printf("[WARN] Unable to connect to GORM DB, degrading to key-value tier: %v", err)
			gormDB = nil
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Relay Service...")
		if err := container.RelayService.Consume(context.Background()); err != nil {
			log.Printf("Background Relay Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Flush pending writes on shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("Shutting down, flushing pending writes...")
		container.SyncService.Shutdown(context.Background())
		srv.GetApp().Shutdown()
	}()

	// 7. Run Server
	log.Fatal(srv.Run())
}
