package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status labels the reconciliation outcome for a single record or pair.
type Status string

const (
	StatusMatched        Status = "Matched"
	StatusRoundingDiff   Status = "Rounding difference"
	StatusAmountMismatch Status = "Amount mismatch"
	StatusDuplicate      Status = "Duplicate"
	StatusMissingInBank  Status = "Missing in Bank"
	StatusMissingInERP   Status = "Missing in ERP"
)

// ReconciliationRecord is the terminal artifact of the pipeline: one per
// matched pair and one per unmatched index on either side. ERPIndex and
// BankIndex are nil for the side a record does not cover.
type ReconciliationRecord struct {
	ERPIndex   *int             `json:"erp_index"`
	BankIndex  *int             `json:"bank_index"`
	Status     Status           `json:"status"`
	AmountDiff *decimal.Decimal `json:"amount_diff"`
	Rationale  []string         `json:"rationale"`
}

// RationaleText joins the rationale entries for flat export consumers.
func (r ReconciliationRecord) RationaleText() string {
	return strings.Join(r.Rationale, " | ")
}

// Run records the metadata of one reconciliation run.
type Run struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ERPCount      int       `json:"erp_count"`
	BankCount     int       `json:"bank_count"`
	MatchedCount  int       `json:"matched_count"`
	ERPUnmatched  int       `json:"erp_unmatched"`
	BankUnmatched int       `json:"bank_unmatched"`
}
