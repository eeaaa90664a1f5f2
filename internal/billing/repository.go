package billing

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles billing document persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new billing repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const documentColumns = `id, year_month, team_id, team_name, issued_to_type,
	issued_to_worker_id, issued_to_worker_name, status, memo,
	COALESCE(posted_advance_payment_id, ''), created_at, updated_at`

func scanDocument(row interface {
	Scan(dest ...interface{}) error
}) (*Document, error) {
	doc := &Document{}
	err := row.Scan(
		&doc.ID,
		&doc.YearMonth,
		&doc.TeamID,
		&doc.TeamName,
		&doc.IssuedToType,
		&doc.IssuedToWorkerID,
		&doc.IssuedToWorkerName,
		&doc.Status,
		&doc.Memo,
		&doc.PostedAdvancePaymentID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadByID retrieves a billing document with its line items, or nil if absent
func (r *Repository) LoadByID(ctx context.Context, id string) (*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM billing_documents WHERE id = $1`

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing document: %w", err)
	}

	items, err := r.getLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.LineItems = items

	return doc, nil
}

// ListByTeamMonth retrieves all billing documents for a team and month,
// line items included
func (r *Repository) ListByTeamMonth(ctx context.Context, teamID int64, yearMonth string) ([]*Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM billing_documents
		WHERE team_id = $1 AND year_month = $2
		ORDER BY issued_to_worker_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, teamID, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan billing document: %w", err)
		}
		docs = append(docs, doc)
	}

	for _, doc := range docs {
		items, err := r.getLineItems(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.LineItems = items
	}

	return docs, nil
}

func (r *Repository) getLineItems(ctx context.Context, documentID string) ([]*LineItem, error) {
	query := `
		SELECT id, label, amount, target_field
		FROM billing_line_items
		WHERE document_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	var items []*LineItem
	for rows.Next() {
		item := &LineItem{}
		if err := rows.Scan(&item.ID, &item.Label, &item.Amount, &item.Target); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// Upsert creates or replaces a document and its line items in one
// transaction. The caller is responsible for refusing writes to confirmed
// documents before calling this.
func (r *Repository) Upsert(ctx context.Context, doc *Document) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	docQuery := `
		INSERT INTO billing_documents (
			id, year_month, team_id, team_name, issued_to_type,
			issued_to_worker_id, issued_to_worker_name, status, memo
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			team_name = EXCLUDED.team_name,
			issued_to_worker_name = EXCLUDED.issued_to_worker_name,
			memo = EXCLUDED.memo,
			updated_at = NOW()
	`
	_, err = tx.ExecContext(ctx, docQuery,
		doc.ID, doc.YearMonth, doc.TeamID, doc.TeamName, doc.IssuedToType,
		doc.IssuedToWorkerID, doc.IssuedToWorkerName, doc.Status, doc.Memo,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert billing document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM billing_line_items WHERE document_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("failed to clear line items: %w", err)
	}

	itemQuery := `
		INSERT INTO billing_line_items (document_id, position, label, amount, target_field)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i, item := range doc.LineItems {
		if err := tx.QueryRowContext(ctx, itemQuery, doc.ID, i, item.Label, item.Amount, item.Target).Scan(&item.ID); err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit billing document: %w", err)
	}

	return nil
}
