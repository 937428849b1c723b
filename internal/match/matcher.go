// Package match pairs normalized ERP records against bank records using
// invoice identifiers and amount/text similarity.
package match

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/clearledger/reconciler/internal/domain"
)

// scoreWeight converts the amount difference into score units: every unit of
// amount difference costs ten similarity points.
var scoreWeight = decimal.NewFromInt(10)

// candidate is one bank record under consideration for an ERP record.
type candidate struct {
	bankIndex  int
	rec        domain.NormalizedRecord
	amountDiff *decimal.Decimal // nil when either side lacks an amount
	descScore  int              // only meaningful when the invoice filter applied
}

// Match assigns bank records to ERP records in a single greedy pass over the
// ERP side in index order. Earlier ERP records get first claim on contested
// bank records; when an ERP record's best-ranked candidate is already
// consumed it goes unmatched rather than falling back to a worse candidate.
func Match(erp, bank []domain.NormalizedRecord) (*domain.MatchSet, error) {
	if erp == nil {
		return nil, fmt.Errorf("match: missing erp records collection")
	}
	if bank == nil {
		return nil, fmt.Errorf("match: missing bank records collection")
	}

	bankHasInvoice := false
	for i := range bank {
		if bank[i].InvoiceID != nil {
			bankHasInvoice = true
			break
		}
	}

	consumed := make(map[int]bool, len(bank))
	assignments := []domain.MatchAssignment{}

	for i := range erp {
		cands, byInvoice := collectCandidates(&erp[i], bank, consumed, bankHasInvoice)
		if len(cands) == 0 {
			continue
		}
		rankCandidates(cands, byInvoice)

		best := cands[0]
		if consumed[best.bankIndex] {
			// Greedy policy: the contested record was claimed by an earlier
			// ERP record and no fallback is attempted.
			continue
		}
		consumed[best.bankIndex] = true

		assignments = append(assignments, domain.MatchAssignment{
			ERPIndex:     i,
			BankIndex:    best.bankIndex,
			Score:        assignmentScore(best, &erp[i]),
			BankSnapshot: best.rec,
		})
	}

	matchedERP := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		matchedERP[a.ERPIndex] = true
	}

	set := &domain.MatchSet{
		Assignments:   assignments,
		ERPUnmatched:  []int{},
		BankUnmatched: []int{},
	}
	for i := range erp {
		if !matchedERP[i] {
			set.ERPUnmatched = append(set.ERPUnmatched, i)
		}
	}
	for j := range bank {
		if !consumed[j] {
			set.BankUnmatched = append(set.BankUnmatched, j)
		}
	}
	return set, nil
}

// collectCandidates builds the candidate set for one ERP record. With an
// invoice identifier on both sides the set is restricted to exact invoice
// matches and may include already-consumed records (only the top-ranked one
// is checked later). Without the invoice filter only unconsumed bank records
// are eligible. The second return value reports whether the invoice filter
// applied.
func collectCandidates(e *domain.NormalizedRecord, bank []domain.NormalizedRecord, consumed map[int]bool, bankHasInvoice bool) ([]candidate, bool) {
	byInvoice := e.InvoiceID != nil && *e.InvoiceID != "" && bankHasInvoice

	var cands []candidate
	for j := range bank {
		if byInvoice {
			if bank[j].InvoiceID == nil || *bank[j].InvoiceID != *e.InvoiceID {
				continue
			}
		} else if consumed[j] {
			continue
		}

		c := candidate{bankIndex: j, rec: bank[j]}
		if e.Amount != nil && bank[j].Amount != nil {
			d := e.Amount.Sub(*bank[j].Amount).Abs()
			c.amountDiff = &d
		}
		if byInvoice {
			desc := ""
			if bank[j].Description != nil {
				desc = *bank[j].Description
			}
			c.descScore = PartialRatio(*e.InvoiceID, desc)
		}
		cands = append(cands, c)
	}
	return cands, byInvoice
}

// rankCandidates orders candidates by ascending amount difference (a missing
// amount on either side ranks after every known difference), then by
// descending description similarity when the invoice filter applied. The
// stable sort leaves bank index order as the final tie-break.
func rankCandidates(cands []candidate, byInvoice bool) {
	sort.SliceStable(cands, func(a, b int) bool {
		da, db := cands[a].amountDiff, cands[b].amountDiff
		switch {
		case da == nil && db == nil:
			// fall through to the similarity comparison
		case da == nil:
			return false
		case db == nil:
			return true
		default:
			if cmp := da.Cmp(*db); cmp != 0 {
				return cmp < 0
			}
		}
		if byInvoice {
			return cands[a].descScore > cands[b].descScore
		}
		return false
	})
}

// assignmentScore folds description similarity and amount difference into a
// single weighted measure: descScore - amountDiff*10. A missing amount on
// either side contributes zero to the difference term.
func assignmentScore(c candidate, e *domain.NormalizedRecord) float64 {
	ea := decimal.Zero
	if e.Amount != nil {
		ea = *e.Amount
	}
	ba := decimal.Zero
	if c.rec.Amount != nil {
		ba = *c.rec.Amount
	}
	diff := ba.Sub(ea).Abs()

	score := decimal.NewFromInt(int64(c.descScore)).Sub(diff.Mul(scoreWeight))
	f, _ := score.Float64()
	return f
}
