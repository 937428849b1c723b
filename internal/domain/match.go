package domain

// MatchAssignment pairs one ERP record with one bank record. BankSnapshot is
// a copy of the matched bank record at assignment time, so downstream
// consumers do not need the bank collection to inspect the match.
type MatchAssignment struct {
	ERPIndex     int              `json:"erp_index"`
	BankIndex    int              `json:"bank_index"`
	Score        float64          `json:"score"`
	BankSnapshot NormalizedRecord `json:"bank_row"`
}

// MatchSet is the complete outcome of one matcher pass. Every ERP index
// appears in exactly one of Assignments or ERPUnmatched, and symmetrically
// for bank indices. Unmatched index slices are sorted ascending.
type MatchSet struct {
	Assignments   []MatchAssignment `json:"matches"`
	ERPUnmatched  []int             `json:"erp_unmatched"`
	BankUnmatched []int             `json:"bank_unmatched"`
}
