package main

import (
	"log"
	"net/http"
	"os"

	"github.com/clearledger/reconciler/internal/api"
	"github.com/clearledger/reconciler/internal/config"
	"github.com/clearledger/reconciler/internal/repository"
)

func main() {
	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	log.Printf("Initializing database at %s", cfg.Database.Path)
	db, err := repository.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	defer db.Close()

	// Create repositories.
	runRepo := repository.NewRunRepo(db)
	recordRepo := repository.NewRecordRepo(db)

	// Create router.
	router := api.NewRouter(cfg, runRepo, recordRepo)

	log.Printf("Clearledger Transaction Reconciler")
	log.Printf("Listening on http://localhost:%s", cfg.Server.Port)
	log.Printf("API base: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("")
	log.Printf("Endpoints:")
	log.Printf("  POST   /api/v1/reconciliations")
	log.Printf("  GET    /api/v1/reconciliations")
	log.Printf("  GET    /api/v1/reconciliations/{id}")
	log.Printf("  GET    /api/v1/reconciliations/{id}/records")

	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
