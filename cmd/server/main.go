package main

import (
	"context"
	"log"

	"userCatalog/internal/config"
	"userCatalog/internal/db"
	"userCatalog/internal/importer"
	"userCatalog/internal/randomuser"
	"userCatalog/internal/web"
	"userCatalog/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	// Open DB; migrations create the users table on first run.
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	var users repository.UserRepositoryI = repository.NewUserRepository(d)

	mode, err := importer.ParsePersistMode(cfg.Import.Mode)
	if err != nil {
		log.Fatalf("import mode: %v", err)
	}
	fetcher := randomuser.NewClient(cfg.RandomUser.BaseURL, cfg.RandomUser.Timeout)
	im := importer.New(fetcher, users, importer.Options{Mode: mode, MaxCount: cfg.Import.MaxCount})

	// Seed before accepting requests. A failed seed leaves an empty store
	// that can still be filled from the import form.
	seeded, err := im.SeedIfEmpty(context.Background(), cfg.Import.SeedCount)
	if err != nil {
		log.Printf("seed users: %v", err)
	} else if seeded > 0 {
		log.Printf("seeded %d users", seeded)
	}

	rd, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("load templates: %v", err)
	}
	h := web.NewHandler(users, im, rd, web.WithImportLimits(cfg.Import.MaxCount, mode.String()))

	srv := web.NewServer(cfg.HTTP.Address, web.SetupRoutes(h))
	if err := srv.StartWithGracefulShutdown(); err != nil {
		log.Printf("server: %v", err)
	}
}
