package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clearledger/reconciler/internal/config"
	"github.com/clearledger/reconciler/internal/domain"
	"github.com/clearledger/reconciler/internal/pipeline"
	"github.com/clearledger/reconciler/internal/repository"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	cfg        config.Config
	runRepo    *repository.RunRepo
	recordRepo *repository.RecordRepo
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// --- RunReconciliation ---

type reconcileRequest struct {
	ERP     []domain.RawRecord `json:"erp"`
	Bank    []domain.RawRecord `json:"bank"`
	Options *runOptions        `json:"options"`
}

type runOptions struct {
	DayFirst *bool `json:"day_first"`
}

type reconcileResponse struct {
	Run     domain.Run                    `json:"run"`
	Summary map[string]int                `json:"summary"`
	Results []domain.ReconciliationRecord `json:"results"`
	Log     []pipeline.Entry              `json:"log"`
}

// RunReconciliation accepts already-structured ERP and bank records, runs
// the pipeline over them, persists the outcome and returns it.
func (h *Handlers) RunReconciliation(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var req reconcileRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ERP == nil || req.Bank == nil {
		writeError(w, http.StatusBadRequest, "erp and bank record collections are required")
		return
	}

	opts := pipeline.Options{
		DayFirst:  h.cfg.Reconcile.DayFirst,
		Tolerance: h.cfg.Tolerance(),
	}
	if req.Options != nil && req.Options.DayFirst != nil {
		opts.DayFirst = *req.Options.DayFirst
	}

	result, err := pipeline.New(opts).Run(req.ERP, req.Bank)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	run := domain.Run{
		ID:            "RUN-" + uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		ERPCount:      len(result.ERP),
		BankCount:     len(result.Bank),
		MatchedCount:  len(result.Matches.Assignments),
		ERPUnmatched:  len(result.Matches.ERPUnmatched),
		BankUnmatched: len(result.Matches.BankUnmatched),
	}
	if err := h.runRepo.Insert(&run); err != nil {
		writeError(w, http.StatusInternalServerError, "store run: "+err.Error())
		return
	}
	if _, err := h.recordRepo.BulkInsert(run.ID, result.Records); err != nil {
		writeError(w, http.StatusInternalServerError, "store records: "+err.Error())
		return
	}

	summary := make(map[string]int)
	for _, rec := range result.Records {
		summary[string(rec.Status)]++
	}

	log.Printf("[api] Reconciliation %s: %d records classified", run.ID, len(result.Records))

	writeJSON(w, http.StatusOK, reconcileResponse{
		Run:     run,
		Summary: summary,
		Results: result.Records,
		Log:     result.Log,
	})
}

// --- ListRuns ---

func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseIntDefault(q.Get("page"), 1)
	limit := parseIntDefault(q.Get("limit"), 50)

	runs, total, err := h.runRepo.List(page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []domain.Run{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// --- GetRun ---

func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.runRepo.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found: "+id)
		return
	}

	summary, err := h.recordRepo.StatusSummary(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run":     run,
		"summary": summary,
	})
}

// --- ListRecords ---

func (h *Handlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.runRepo.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found: "+id)
		return
	}

	q := r.URL.Query()
	filter := repository.RecordFilter{
		Status: q.Get("status"),
		Page:   parseIntDefault(q.Get("page"), 1),
		Limit:  parseIntDefault(q.Get("limit"), 50),
	}

	records, total, err := h.recordRepo.ListByRun(id, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []domain.ReconciliationRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"total":   total,
		"page":    filter.Page,
		"limit":   filter.Limit,
	})
}
