// Package classify labels matched pairs and unmatched records with a
// reconciliation status and a human-readable rationale.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/clearledger/reconciler/internal/domain"
)

// DefaultTolerance is the amount difference, inclusive, still considered a
// rounding artifact rather than a genuine mismatch.
var DefaultTolerance = decimal.RequireFromString("0.05")

// Classifier turns a match set into the final reconciliation records.
type Classifier struct {
	tolerance decimal.Decimal
}

// New creates a Classifier with the given rounding tolerance. A zero or
// negative tolerance falls back to DefaultTolerance.
func New(tolerance decimal.Decimal) *Classifier {
	if tolerance.LessThanOrEqual(decimal.Zero) {
		tolerance = DefaultTolerance
	}
	return &Classifier{tolerance: tolerance}
}

// Classify emits exactly one record per assignment and per unmatched index:
// matched pairs first in assignment order, then ERP-unmatched ascending,
// then bank-unmatched ascending.
func (c *Classifier) Classify(erp, bank []domain.NormalizedRecord, ms *domain.MatchSet) ([]domain.ReconciliationRecord, error) {
	if ms == nil {
		return nil, fmt.Errorf("classify: missing match set")
	}
	if erp == nil || bank == nil {
		return nil, fmt.Errorf("classify: missing records collection")
	}

	erpDupes := invoiceCounts(erp)
	bankDupes := invoiceCounts(bank)

	results := make([]domain.ReconciliationRecord, 0,
		len(ms.Assignments)+len(ms.ERPUnmatched)+len(ms.BankUnmatched))

	type pairKey struct{ e, b int }
	seen := make(map[pairKey]bool, len(ms.Assignments))

	for _, a := range ms.Assignments {
		if a.ERPIndex < 0 || a.ERPIndex >= len(erp) {
			return nil, fmt.Errorf("classify: erp index %d out of range", a.ERPIndex)
		}
		if a.BankIndex < 0 || a.BankIndex >= len(bank) {
			return nil, fmt.Errorf("classify: bank index %d out of range", a.BankIndex)
		}
		key := pairKey{a.ERPIndex, a.BankIndex}
		if seen[key] {
			continue
		}
		seen[key] = true

		results = append(results, c.classifyPair(a, &erp[a.ERPIndex], &bank[a.BankIndex], erpDupes, bankDupes))
	}

	for _, i := range sortedIndices(ms.ERPUnmatched) {
		i := i
		results = append(results, domain.ReconciliationRecord{
			ERPIndex: &i,
			Status:   domain.StatusMissingInBank,
			Rationale: []string{
				"ERP record has no corresponding bank transaction after matching.",
			},
		})
	}
	for _, j := range sortedIndices(ms.BankUnmatched) {
		j := j
		results = append(results, domain.ReconciliationRecord{
			BankIndex: &j,
			Status:    domain.StatusMissingInERP,
			Rationale: []string{
				"Bank transaction has no corresponding ERP record after matching.",
			},
		})
	}

	return results, nil
}

func (c *Classifier) classifyPair(a domain.MatchAssignment, e, b *domain.NormalizedRecord, erpDupes, bankDupes map[string]int) domain.ReconciliationRecord {
	ei, bi := a.ERPIndex, a.BankIndex
	rec := domain.ReconciliationRecord{
		ERPIndex:  &ei,
		BankIndex: &bi,
		Status:    domain.StatusMatched,
		Rationale: []string{},
	}

	if e.Amount != nil && b.Amount != nil {
		diff := e.Amount.Sub(*b.Amount).Abs().Round(2)
		rec.AmountDiff = &diff

		switch {
		case diff.IsZero():
			rec.Status = domain.StatusMatched
			rec.Rationale = append(rec.Rationale, "Exact amount match.")
		case diff.Cmp(c.tolerance) <= 0:
			rec.Status = domain.StatusRoundingDiff
			rec.Rationale = append(rec.Rationale, fmt.Sprintf(
				"Amounts differ by %s, within rounding tolerance (<= %s).",
				diff.String(), c.tolerance.String()))
		default:
			rec.Status = domain.StatusAmountMismatch
			rec.Rationale = append(rec.Rationale, fmt.Sprintf(
				"Amounts differ by %s (> %s).", diff.String(), c.tolerance.String()))
		}
	}

	// Duplicate detection runs independently of the amount comparison and
	// always wins when triggered.
	if inv := invoiceKey(e); inv != "" {
		if erpDupes[inv] > 1 || bankDupes[inv] > 1 {
			rec.Status = domain.StatusDuplicate
			rec.Rationale = append(rec.Rationale,
				"Invoice ID appears multiple times in one dataset.")
		}
	}

	return rec
}

// invoiceCounts tallies non-empty invoice identifiers across one record set.
func invoiceCounts(records []domain.NormalizedRecord) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		if inv := invoiceKey(&records[i]); inv != "" {
			counts[inv]++
		}
	}
	return counts
}

func invoiceKey(r *domain.NormalizedRecord) string {
	if r.InvoiceID == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(*r.InvoiceID))
}

// sortedIndices copies and sorts an index slice so output ordering never
// depends on the caller's set iteration order.
func sortedIndices(indices []int) []int {
	out := make([]int, len(indices))
	copy(out, indices)
	sort.Ints(out)
	return out
}
