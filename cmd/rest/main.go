package main

import (
	"context"
	"log"

	"ai-chat-be/internal/bootstrap"
	"ai-chat-be/internal/config"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/server"
	"ai-chat-be/internal/storage"
	"ai-chat-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Initialize Storage (runs pending schema migrations)
	store, err := storage.Open(cfg.Database, nil, sysLogger)
	if err != nil {
		log.Panicf("Unable to initialize storage: %v", err)
	}
	defer store.Close()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(store, cfg)

	// 4. Start Background Services
	if err := container.EventLogService.Consume(context.Background()); err != nil {
		log.Printf("Background event consumer error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
