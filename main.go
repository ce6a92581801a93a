package main

import (
	"flag"
	"log"

	"screener_backend/internal/app"
	"screener_backend/internal/config"
	"screener_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	seedOnly := flag.Bool("seed-only", false, "load reference data and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly
	cfg.SeedOnly = *seedOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}
	if *seedOnly {
		log.Println("Reference data loaded, exiting")
		return
	}

	application.Run()
}
