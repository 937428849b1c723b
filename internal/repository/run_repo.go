package repository

import (
	"database/sql"
	"time"

	"github.com/clearledger/reconciler/internal/domain"
)

type RunRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) Insert(run *domain.Run) error {
	_, err := r.db.Exec(
		`INSERT INTO runs
		(id, created_at, erp_count, bank_count, matched_count, erp_unmatched, bank_unmatched)
		VALUES (?,?,?,?,?,?,?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339),
		run.ERPCount, run.BankCount,
		run.MatchedCount, run.ERPUnmatched, run.BankUnmatched,
	)
	return err
}

// GetByID returns a run by ID, or nil when no such run exists.
func (r *RunRepo) GetByID(id string) (*domain.Run, error) {
	row := r.db.QueryRow(
		`SELECT id, created_at, erp_count, bank_count, matched_count, erp_unmatched, bank_unmatched
		 FROM runs WHERE id = ?`, id,
	)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns runs newest-first with the given page and limit.
func (r *RunRepo) List(page, limit int) ([]domain.Run, int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := r.db.Query(
		`SELECT id, created_at, erp_count, bank_count, matched_count, erp_unmatched, bank_unmatched
		 FROM runs ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, *run)
	}
	return runs, total, rows.Err()
}

func (r *RunRepo) Count() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*domain.Run, error) {
	var run domain.Run
	var createdAt string
	if err := row.Scan(
		&run.ID, &createdAt,
		&run.ERPCount, &run.BankCount,
		&run.MatchedCount, &run.ERPUnmatched, &run.BankUnmatched,
	); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		run.CreatedAt = t
	}
	return &run, nil
}
