package worker

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles worker data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new worker repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new worker into the database
func (r *Repository) Create(ctx context.Context, req *CreateWorkerRequest) (*Worker, error) {
	query := `
		INSERT INTO workers (team_id, name, phone, trade, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, team_id, name, phone, trade, unit_price, created_at
	`

	worker := &Worker{}
	err := r.db.QueryRowContext(ctx, query, req.TeamID, req.Name, req.Phone, req.Trade, req.UnitPrice).Scan(
		&worker.ID,
		&worker.TeamID,
		&worker.Name,
		&worker.Phone,
		&worker.Trade,
		&worker.UnitPrice,
		&worker.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	return worker, nil
}

// GetByID retrieves a worker by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Worker, error) {
	query := `
		SELECT id, team_id, name, phone, trade, unit_price, created_at
		FROM workers
		WHERE id = $1
	`

	worker := &Worker{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&worker.ID,
		&worker.TeamID,
		&worker.Name,
		&worker.Phone,
		&worker.Trade,
		&worker.UnitPrice,
		&worker.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}

	return worker, nil
}

// List retrieves workers with pagination, optionally filtered by team
func (r *Repository) List(ctx context.Context, teamID *int64, limit, offset int) ([]*Worker, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM workers WHERE ($1::bigint IS NULL OR team_id = $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, teamID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	query := `
		SELECT id, team_id, name, phone, trade, unit_price, created_at
		FROM workers
		WHERE ($1::bigint IS NULL OR team_id = $1)
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, teamID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []*Worker
	for rows.Next() {
		worker := &Worker{}
		if err := rows.Scan(
			&worker.ID,
			&worker.TeamID,
			&worker.Name,
			&worker.Phone,
			&worker.Trade,
			&worker.UnitPrice,
			&worker.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, worker)
	}

	return workers, total, nil
}

// Update modifies an existing worker
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateWorkerRequest) (*Worker, error) {
	query := `
		UPDATE workers
		SET team_id = COALESCE($2, team_id),
		    name = COALESCE($3, name),
		    phone = COALESCE($4, phone),
		    trade = COALESCE($5, trade),
		    unit_price = COALESCE($6, unit_price)
		WHERE id = $1
		RETURNING id, team_id, name, phone, trade, unit_price, created_at
	`

	worker := &Worker{}
	err := r.db.QueryRowContext(ctx, query, id, req.TeamID, req.Name, req.Phone, req.Trade, req.UnitPrice).Scan(
		&worker.ID,
		&worker.TeamID,
		&worker.Name,
		&worker.Phone,
		&worker.Trade,
		&worker.UnitPrice,
		&worker.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}

	return worker, nil
}

// Delete removes a worker from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM workers WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("worker not found")
	}

	return nil
}
