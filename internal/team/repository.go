package team

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles team data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new team repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new team into the database
func (r *Repository) Create(ctx context.Context, req *CreateTeamRequest) (*Team, error) {
	query := `
		INSERT INTO teams (name, leader_name)
		VALUES ($1, $2)
		RETURNING id, name, leader_name, created_at
	`

	team := &Team{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.LeaderName).Scan(
		&team.ID,
		&team.Name,
		&team.LeaderName,
		&team.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// GetByID retrieves a team by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Team, error) {
	query := `
		SELECT id, name, leader_name, created_at
		FROM teams
		WHERE id = $1
	`

	team := &Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.LeaderName,
		&team.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// List retrieves all teams with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Team, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM teams`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count teams: %w", err)
	}

	query := `
		SELECT id, name, leader_name, created_at
		FROM teams
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		team := &Team{}
		if err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.LeaderName,
			&team.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, total, nil
}

// Update modifies an existing team
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateTeamRequest) (*Team, error) {
	query := `
		UPDATE teams
		SET name = COALESCE($2, name),
		    leader_name = COALESCE($3, leader_name)
		WHERE id = $1
		RETURNING id, name, leader_name, created_at
	`

	team := &Team{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.LeaderName).Scan(
		&team.ID,
		&team.Name,
		&team.LeaderName,
		&team.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// Delete removes a team from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("team not found")
	}

	return nil
}

// GetRateProfile retrieves a team's rate profile, or nil if nothing is configured
func (r *Repository) GetRateProfile(ctx context.Context, teamID int64) (*RateProfile, error) {
	profile := &RateProfile{TeamID: teamID, CustomRates: map[int64]float64{}}
	found := false

	query := `SELECT default_rate FROM team_rate_profiles WHERE team_id = $1`
	err := r.db.QueryRowContext(ctx, query, teamID).Scan(&profile.DefaultRate)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get rate profile: %w", err)
	}
	if err == nil {
		found = true
	}

	customQuery := `
		SELECT target_team_id, rate
		FROM team_custom_rates
		WHERE team_id = $1
	`
	rows, err := r.db.QueryContext(ctx, customQuery, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get custom rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var targetTeamID int64
		var rate float64
		if err := rows.Scan(&targetTeamID, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan custom rate: %w", err)
		}
		profile.CustomRates[targetTeamID] = rate
		found = true
	}

	if !found {
		return nil, nil
	}
	return profile, nil
}

// GetRateProfiles retrieves rate profiles for a set of teams in two queries.
// Teams without any configuration are simply absent from the result map.
func (r *Repository) GetRateProfiles(ctx context.Context, teamIDs []int64) (map[int64]*RateProfile, error) {
	profiles := make(map[int64]*RateProfile)
	if len(teamIDs) == 0 {
		return profiles, nil
	}

	ensure := func(teamID int64) *RateProfile {
		p, ok := profiles[teamID]
		if !ok {
			p = &RateProfile{TeamID: teamID, CustomRates: map[int64]float64{}}
			profiles[teamID] = p
		}
		return p
	}

	query := `SELECT team_id, default_rate FROM team_rate_profiles WHERE team_id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get rate profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int64
		var defaultRate float64
		if err := rows.Scan(&teamID, &defaultRate); err != nil {
			return nil, fmt.Errorf("failed to scan rate profile: %w", err)
		}
		ensure(teamID).DefaultRate = defaultRate
	}

	customQuery := `SELECT team_id, target_team_id, rate FROM team_custom_rates WHERE team_id = ANY($1)`
	customRows, err := r.db.QueryContext(ctx, customQuery, pq.Array(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get custom rates: %w", err)
	}
	defer customRows.Close()

	for customRows.Next() {
		var teamID, targetTeamID int64
		var rate float64
		if err := customRows.Scan(&teamID, &targetTeamID, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan custom rate: %w", err)
		}
		ensure(teamID).CustomRates[targetTeamID] = rate
	}

	return profiles, nil
}

// SetDefaultRate upserts a team's default support rate
func (r *Repository) SetDefaultRate(ctx context.Context, teamID int64, rate float64) error {
	query := `
		INSERT INTO team_rate_profiles (team_id, default_rate)
		VALUES ($1, $2)
		ON CONFLICT (team_id) DO UPDATE SET default_rate = EXCLUDED.default_rate
	`

	if _, err := r.db.ExecContext(ctx, query, teamID, rate); err != nil {
		return fmt.Errorf("failed to set default rate: %w", err)
	}
	return nil
}

// SetCustomRate upserts an override rate toward a counterpart team.
// A later write for the same counterpart replaces the earlier one.
func (r *Repository) SetCustomRate(ctx context.Context, teamID, targetTeamID int64, rate float64) error {
	query := `
		INSERT INTO team_custom_rates (team_id, target_team_id, rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, target_team_id) DO UPDATE SET rate = EXCLUDED.rate
	`

	if _, err := r.db.ExecContext(ctx, query, teamID, targetTeamID, rate); err != nil {
		return fmt.Errorf("failed to set custom rate: %w", err)
	}
	return nil
}

// DeleteCustomRate removes an override rate toward a counterpart team
func (r *Repository) DeleteCustomRate(ctx context.Context, teamID, targetTeamID int64) error {
	query := `DELETE FROM team_custom_rates WHERE team_id = $1 AND target_team_id = $2`

	if _, err := r.db.ExecContext(ctx, query, teamID, targetTeamID); err != nil {
		return fmt.Errorf("failed to delete custom rate: %w", err)
	}
	return nil
}
