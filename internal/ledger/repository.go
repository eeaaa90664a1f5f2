package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles advance payment ledger persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new ledger repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const entryColumns = `id, team_id, worker_id, year_month,
	accommodation, private_room, electricity, gas, internet, water, fines, deposit, gloves,
	prev_month_carryover, total_deduction, updated_at`

func scanEntry(row interface {
	Scan(dest ...interface{}) error
}) (*Entry, error) {
	entry := &Entry{}
	err := row.Scan(
		&entry.ID,
		&entry.TeamID,
		&entry.WorkerID,
		&entry.YearMonth,
		&entry.Accommodation,
		&entry.PrivateRoom,
		&entry.Electricity,
		&entry.Gas,
		&entry.Internet,
		&entry.Water,
		&entry.Fines,
		&entry.Deposit,
		&entry.Gloves,
		&entry.PrevMonthCarryover,
		&entry.TotalDeduction,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// LoadByID retrieves a ledger entry by its composite ID, or nil if absent
func (r *Repository) LoadByID(ctx context.Context, id string) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM advance_payment_ledger WHERE id = $1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return entry, nil
}

// ListByTeamMonth retrieves all ledger entries for a team and month
func (r *Repository) ListByTeamMonth(ctx context.Context, teamID int64, yearMonth string) ([]*Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM advance_payment_ledger
		WHERE team_id = $1 AND year_month = $2
		ORDER BY worker_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, teamID, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

const upsertEntryQuery = `
	INSERT INTO advance_payment_ledger (
		id, team_id, worker_id, year_month,
		accommodation, private_room, electricity, gas, internet, water, fines, deposit, gloves,
		prev_month_carryover, total_deduction, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
	ON CONFLICT (id) DO UPDATE SET
		accommodation = EXCLUDED.accommodation,
		private_room = EXCLUDED.private_room,
		electricity = EXCLUDED.electricity,
		gas = EXCLUDED.gas,
		internet = EXCLUDED.internet,
		water = EXCLUDED.water,
		fines = EXCLUDED.fines,
		deposit = EXCLUDED.deposit,
		gloves = EXCLUDED.gloves,
		prev_month_carryover = EXCLUDED.prev_month_carryover,
		total_deduction = EXCLUDED.total_deduction,
		updated_at = NOW()
`

// Commit persists a ledger entry AND marks the billing document confirmed
// with a back-reference, in a single transaction. Either both writes land or
// neither does; a partial application would let a later confirm double-post.
func (r *Repository) Commit(ctx context.Context, entry *Entry, documentID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, upsertEntryQuery,
		entry.ID, entry.TeamID, entry.WorkerID, entry.YearMonth,
		entry.Accommodation, entry.PrivateRoom, entry.Electricity, entry.Gas,
		entry.Internet, entry.Water, entry.Fines, entry.Deposit, entry.Gloves,
		entry.PrevMonthCarryover, entry.TotalDeduction,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ledger entry: %w", err)
	}

	docQuery := `
		UPDATE billing_documents
		SET status = 'confirmed', posted_advance_payment_id = $2
		WHERE id = $1 AND status != 'confirmed'
	`
	if _, err := tx.ExecContext(ctx, docQuery, documentID, entry.ID); err != nil {
		return fmt.Errorf("failed to confirm billing document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit posting: %w", err)
	}

	return nil
}

// SetCarryover updates an entry's previous month carryover and recomputes
// its total inside one transaction
func (r *Repository) SetCarryover(ctx context.Context, id string, amount float64) (*Entry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + entryColumns + ` FROM advance_payment_ledger WHERE id = $1 FOR UPDATE`
	entry, err := scanEntry(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	entry.PrevMonthCarryover = amount
	entry.RecomputeTotal()

	updateQuery := `
		UPDATE advance_payment_ledger
		SET prev_month_carryover = $2, total_deduction = $3, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, updateQuery, id, entry.PrevMonthCarryover, entry.TotalDeduction); err != nil {
		return nil, fmt.Errorf("failed to update carryover: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit carryover update: %w", err)
	}

	return entry, nil
}
