package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/clearledger/reconciler/internal/domain"
)

type RecordRepo struct {
	db *sql.DB
}

func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// BulkInsert stores a run's reconciliation records, keyed by their position
// in classifier output order. Rationale entries are stored joined with " | "
// as flat-export consumers expect them.
func (r *RecordRepo) BulkInsert(runID string, records []domain.ReconciliationRecord) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO reconciliation_records
		(run_id, position, erp_index, bank_index, status, amount_diff, rationale)
		VALUES (?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for pos := range records {
		rec := &records[pos]

		var erpIdx, bankIdx, diff any
		if rec.ERPIndex != nil {
			erpIdx = *rec.ERPIndex
		}
		if rec.BankIndex != nil {
			bankIdx = *rec.BankIndex
		}
		if rec.AmountDiff != nil {
			diff = rec.AmountDiff.StringFixed(2)
		}

		if _, err := stmt.Exec(
			runID, pos, erpIdx, bankIdx,
			string(rec.Status), diff, rec.RationaleText(),
		); err != nil {
			return inserted, fmt.Errorf("insert %d: %w", pos, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

type RecordFilter struct {
	Status string
	Page   int
	Limit  int
}

// ListByRun returns a run's records in classifier output order, optionally
// filtered by status.
func (r *RecordRepo) ListByRun(runID string, f RecordFilter) ([]domain.ReconciliationRecord, int, error) {
	where := " WHERE run_id = ?"
	args := []any{runID}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}

	var total int
	if err := r.db.QueryRow(
		"SELECT COUNT(*) FROM reconciliation_records"+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.db.Query(
		`SELECT erp_index, bank_index, status, amount_diff, rationale
		 FROM reconciliation_records`+where+
			` ORDER BY position LIMIT ? OFFSET ?`, args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.ReconciliationRecord
	for rows.Next() {
		var rec domain.ReconciliationRecord
		var erpIdx, bankIdx sql.NullInt64
		var diff sql.NullString
		var status, rationale string

		if err := rows.Scan(&erpIdx, &bankIdx, &status, &diff, &rationale); err != nil {
			return nil, 0, err
		}

		if erpIdx.Valid {
			i := int(erpIdx.Int64)
			rec.ERPIndex = &i
		}
		if bankIdx.Valid {
			j := int(bankIdx.Int64)
			rec.BankIndex = &j
		}
		if diff.Valid {
			if d, err := decimal.NewFromString(diff.String); err == nil {
				rec.AmountDiff = &d
			}
		}
		rec.Status = domain.Status(status)
		if rationale != "" {
			rec.Rationale = strings.Split(rationale, " | ")
		} else {
			rec.Rationale = []string{}
		}

		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// StatusSummary returns per-status record counts for one run.
func (r *RecordRepo) StatusSummary(runID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT status, COUNT(*) FROM reconciliation_records
		 WHERE run_id = ? GROUP BY status`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		summary[status] = n
	}
	return summary, rows.Err()
}
