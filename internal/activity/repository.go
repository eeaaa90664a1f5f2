package activity

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles activity log persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new activity repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new activity entry into the database
func (r *Repository) Create(ctx context.Context, actorID int64, action, detail string, entityType, entityID *string) (*Entry, error) {
	query := `
		INSERT INTO activity_log (actor_id, action, detail, entity_type, entity_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, actor_id, action, entity_type, entity_id, detail, created_at
	`

	entry := &Entry{}
	err := r.db.QueryRowContext(ctx, query, actorID, action, detail, entityType, entityID).Scan(
		&entry.ID,
		&entry.ActorID,
		&entry.Action,
		&entry.EntityType,
		&entry.EntityID,
		&entry.Detail,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity entry: %w", err)
	}

	return entry, nil
}

// List retrieves activity entries newest first, optionally filtered by actor
func (r *Repository) List(ctx context.Context, actorID *int64, limit, offset int) ([]*Entry, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM activity_log WHERE ($1::bigint IS NULL OR actor_id = $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, actorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	query := `
		SELECT id, actor_id, action, entity_type, entity_id, detail, created_at
		FROM activity_log
		WHERE ($1::bigint IS NULL OR actor_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
