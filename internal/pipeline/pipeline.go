// Package pipeline wires the reconciliation stages into one explicit,
// statically-ordered run: normalize both ledgers, match, classify. Each run
// is a pure function of its inputs; the pipeline holds no state between
// invocations and many runs may execute concurrently.
package pipeline

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/clearledger/reconciler/internal/classify"
	"github.com/clearledger/reconciler/internal/domain"
	"github.com/clearledger/reconciler/internal/match"
	"github.com/clearledger/reconciler/internal/normalize"
)

// Options configures a pipeline.
type Options struct {
	// DayFirst selects day-first parsing for ambiguous numeric dates.
	DayFirst bool
	// Tolerance is the rounding tolerance for amount comparison; zero means
	// the classifier default.
	Tolerance decimal.Decimal
}

// Pipeline runs the normalize -> match -> classify sequence.
type Pipeline struct {
	normalizer *normalize.Normalizer
	classifier *classify.Classifier
}

// New creates a Pipeline with the given options.
func New(opts Options) *Pipeline {
	return &Pipeline{
		normalizer: normalize.New(normalize.Options{DayFirst: opts.DayFirst}),
		classifier: classify.New(opts.Tolerance),
	}
}

// Result carries everything one run produced, including the run-scoped log.
type Result struct {
	ERP     []domain.NormalizedRecord     `json:"erp"`
	Bank    []domain.NormalizedRecord     `json:"bank"`
	Matches *domain.MatchSet              `json:"matches"`
	Records []domain.ReconciliationRecord `json:"results"`
	Log     []Entry                       `json:"log"`
}

// Run executes the full pipeline over one pair of raw record collections.
// Input collections are never mutated.
func (p *Pipeline) Run(erpRaw, bankRaw []domain.RawRecord) (*Result, error) {
	runLog := NewLog()

	erp, err := p.normalizer.Normalize(erpRaw, domain.RoleERP)
	if err != nil {
		return nil, fmt.Errorf("normalize erp: %w", err)
	}
	runLog.Appendf("normalizer", "normalize_erp", "normalized %d ERP records", len(erp))

	bank, err := p.normalizer.Normalize(bankRaw, domain.RoleBank)
	if err != nil {
		return nil, fmt.Errorf("normalize bank: %w", err)
	}
	runLog.Appendf("normalizer", "normalize_bank", "normalized %d bank records", len(bank))

	ms, err := match.Match(erp, bank)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	runLog.Appendf("matcher", "match_records", "matched %d pairs, %d ERP and %d bank records unmatched",
		len(ms.Assignments), len(ms.ERPUnmatched), len(ms.BankUnmatched))

	records, err := p.classifier.Classify(erp, bank, ms)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	runLog.Appendf("classifier", "classify_discrepancies", "classified %d records", len(records))

	log.Printf("[pipeline] Run complete: erp=%d bank=%d matched=%d unmatched_erp=%d unmatched_bank=%d",
		len(erp), len(bank), len(ms.Assignments), len(ms.ERPUnmatched), len(ms.BankUnmatched))

	return &Result{
		ERP:     erp,
		Bank:    bank,
		Matches: ms,
		Records: records,
		Log:     runLog.Entries(),
	}, nil
}
