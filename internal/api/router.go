package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clearledger/reconciler/internal/config"
	"github.com/clearledger/reconciler/internal/repository"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(
	cfg config.Config,
	runRepo *repository.RunRepo,
	recordRepo *repository.RecordRepo,
) http.Handler {
	h := &Handlers{
		cfg:        cfg,
		runRepo:    runRepo,
		recordRepo: recordRepo,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		// Reconciliation runs.
		r.Post("/reconciliations", h.RunReconciliation)
		r.Get("/reconciliations", h.ListRuns)
		r.Get("/reconciliations/{id}", h.GetRun)
		r.Get("/reconciliations/{id}/records", h.ListRecords)
	})

	return r
}
