package main

import (
	"context"
	"log"

	"ai-studymate-be/internal/bootstrap"
	"ai-studymate-be/internal/config"
	"ai-studymate-be/internal/server"
	"ai-studymate-be/internal/tracer"
	"ai-studymate-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// The ingest consumer runs for the lifetime of the process.
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Panicf("Unable to start ingest consumer: %v", err)
	}

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
