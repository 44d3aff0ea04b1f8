package main

import (
	"context"
	"log"

	"shopping-chat-be/internal/bootstrap"
	"shopping-chat-be/internal/config"
	"shopping-chat-be/internal/server"
	"shopping-chat-be/internal/tracer"
	"shopping-chat-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	db, disconnect, err := database.NewMongoDatabase(cfg.Database.MongoURI, cfg.Database.MongoDBName)
	if err != nil {
		log.Panicf("Unable to connect to MongoDB: %v", err)
	}
	defer disconnect(context.Background())

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(db, cfg)
	defer container.Logger.Sync()

	// 5. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
