// Package normalize canonicalizes raw ledger rows into the common record
// schema shared by both reconciliation sides.
package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/clearledger/reconciler/internal/domain"
)

// invoicePattern recognizes an invoice marker inside free-text descriptions:
// the token "INV", an optional separator, then a digit run.
var invoicePattern = regexp.MustCompile(`(?i)INV[-\s]?(\d+)`)

// Options configures normalization behavior.
type Options struct {
	// DayFirst selects day-first interpretation for ambiguous numeric dates
	// such as "03/04/2024". The default is month-first.
	DayFirst bool
}

// Normalizer converts raw ledger rows into normalized records. A malformed
// individual field degrades to nil, never an error; only a structurally
// absent input collection fails.
type Normalizer struct {
	opts Options
}

// New creates a Normalizer with the given options.
func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Normalize canonicalizes records for one ledger side, preserving input
// order: output[i] derives from input[i].
func (n *Normalizer) Normalize(records []domain.RawRecord, role domain.LedgerRole) ([]domain.NormalizedRecord, error) {
	if records == nil {
		return nil, fmt.Errorf("normalize %s: missing records collection", role)
	}

	out := make([]domain.NormalizedRecord, len(records))
	for i, raw := range records {
		out[i] = n.normalizeOne(raw, role)
	}
	return out, nil
}

func (n *Normalizer) normalizeOne(raw domain.RawRecord, role domain.LedgerRole) domain.NormalizedRecord {
	rec := domain.NormalizedRecord{
		Date:   n.toDate(raw[domain.FieldDate]),
		Amount: toAmount(raw[domain.FieldAmount]),
	}

	switch role {
	case domain.RoleERP:
		if s := fieldString(raw[domain.FieldInvoiceID]); s != "" {
			inv := strings.ToUpper(strings.TrimSpace(s))
			rec.InvoiceID = &inv
		}
		if s := fieldString(raw[domain.FieldStatus]); s != "" {
			// Casers are stateful, so one is built per call rather than shared.
			st := cases.Title(language.English).String(strings.TrimSpace(s))
			rec.Status = &st
		}
	case domain.RoleBank:
		if s := fieldString(raw[domain.FieldDescription]); s != "" {
			desc := s
			rec.Description = &desc
			rec.InvoiceID = extractInvoiceID(desc)
		}
		if s := fieldString(raw[domain.FieldRefID]); s != "" {
			ref := s
			rec.RefID = &ref
		}
	}

	return rec
}

// extractInvoiceID derives an invoice identifier from a bank description.
// The digit run is zero-padded to 4 characters; longer runs pass through
// unpadded. Returns nil when no marker is found.
func extractInvoiceID(description string) *string {
	m := invoicePattern.FindStringSubmatch(description)
	if m == nil {
		return nil
	}
	digits := m[1]
	for len(digits) < 4 {
		digits = "0" + digits
	}
	inv := "INV" + digits
	return &inv
}

// toAmount parses a raw amount value into a decimal rounded to 2 places,
// half away from zero. Thousands separators are stripped. Returns nil when
// the value is absent or unparseable.
func toAmount(v any) *decimal.Decimal {
	s := fieldString(v)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	d = d.Round(2)
	return &d
}

// fieldString renders a raw cell value as a string. Nil cells and empty
// strings both come back as "".
func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}
