package domain

import "github.com/shopspring/decimal"

// LedgerRole identifies which side of the reconciliation a record set belongs to.
type LedgerRole string

const (
	RoleERP  LedgerRole = "erp"
	RoleBank LedgerRole = "bank"
)

// Field names recognized on raw records. Upstream extractors are responsible
// for mapping their own column headers onto these names.
const (
	FieldDate        = "Date"
	FieldAmount      = "Amount"
	FieldInvoiceID   = "Invoice ID"
	FieldDescription = "Description"
	FieldStatus      = "Status"
	FieldRefID       = "Ref ID"
)

// RawRecord is a single ledger row as handed over by an upstream extractor,
// keyed by schema field name. Values are whatever the extractor produced:
// strings, numbers, or nil for blank cells.
type RawRecord map[string]any

// NormalizedRecord is the canonical form of a ledger row. Nil fields mean
// "absent or unparseable"; a present Amount is always rounded to 2 decimal
// places and a present InvoiceID is always uppercase with no surrounding
// whitespace.
type NormalizedRecord struct {
	Date        *string          `json:"date"`
	Amount      *decimal.Decimal `json:"amount"`
	InvoiceID   *string          `json:"invoice_id"`
	Description *string          `json:"description"`
	Status      *string          `json:"status"`
	RefID       *string          `json:"ref_id"`
}
