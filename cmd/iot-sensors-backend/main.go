package main

import (
	"github.com/JDVlist/iot-sensors-backend/internal/config"
	"github.com/JDVlist/iot-sensors-backend/internal/infra/db"
	httpinfra "github.com/JDVlist/iot-sensors-backend/internal/infra/http"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; container deployments pass real environment.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	database, err := config.ResolveDatabase(cfg)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	store, err := db.NewStore(database)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	if err := store.EnsureSchema(); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	srv := httpinfra.NewServer(cfg, store)
	log.WithFields(log.Fields{"addr": cfg.HTTPAddr}).Info("starting server")
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
