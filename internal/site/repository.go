package site

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles site data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new site repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new site into the database
func (r *Repository) Create(ctx context.Context, req *CreateSiteRequest) (*Site, error) {
	query := `
		INSERT INTO sites (team_id, name, address)
		VALUES ($1, $2, $3)
		RETURNING id, team_id, name, address, created_at
	`

	site := &Site{}
	err := r.db.QueryRowContext(ctx, query, req.TeamID, req.Name, req.Address).Scan(
		&site.ID,
		&site.TeamID,
		&site.Name,
		&site.Address,
		&site.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create site: %w", err)
	}

	return site, nil
}

// GetByID retrieves a site by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Site, error) {
	query := `
		SELECT id, team_id, name, address, created_at
		FROM sites
		WHERE id = $1
	`

	site := &Site{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&site.ID,
		&site.TeamID,
		&site.Name,
		&site.Address,
		&site.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get site: %w", err)
	}

	return site, nil
}

// List retrieves sites with pagination, optionally filtered by team
func (r *Repository) List(ctx context.Context, teamID *int64, limit, offset int) ([]*Site, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM sites WHERE ($1::bigint IS NULL OR team_id = $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, teamID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sites: %w", err)
	}

	query := `
		SELECT id, team_id, name, address, created_at
		FROM sites
		WHERE ($1::bigint IS NULL OR team_id = $1)
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, teamID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []*Site
	for rows.Next() {
		site := &Site{}
		if err := rows.Scan(
			&site.ID,
			&site.TeamID,
			&site.Name,
			&site.Address,
			&site.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, total, nil
}

// Update modifies an existing site
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateSiteRequest) (*Site, error) {
	query := `
		UPDATE sites
		SET team_id = COALESCE($2, team_id),
		    name = COALESCE($3, name),
		    address = COALESCE($4, address)
		WHERE id = $1
		RETURNING id, team_id, name, address, created_at
	`

	site := &Site{}
	err := r.db.QueryRowContext(ctx, query, id, req.TeamID, req.Name, req.Address).Scan(
		&site.ID,
		&site.TeamID,
		&site.Name,
		&site.Address,
		&site.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update site: %w", err)
	}

	return site, nil
}

// Delete removes a site from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM sites WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("site not found")
	}

	return nil
}
