package activity

import (
	"context"
	"fmt"
)

// Service handles activity log business logic
type Service struct {
	repo *Repository
}

// NewService creates a new activity service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Record writes a raw activity entry
func (s *Service) Record(ctx context.Context, actorID int64, action, detail string, entityType, entityID *string) (*Entry, error) {
	return s.repo.Create(ctx, actorID, action, detail, entityType, entityID)
}

// List retrieves activity entries newest first
func (s *Service) List(ctx context.Context, actorID *int64, page, perPage int) ([]*Entry, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, actorID, perPage, offset)
}

// Helper methods for recording specific actions

// RecordReportCreated logs a new daily report
func (s *Service) RecordReportCreated(ctx context.Context, actorID, reportID int64) (*Entry, error) {
	entityType := "REPORT"
	entityID := fmt.Sprintf("%d", reportID)
	return s.repo.Create(ctx, actorID, ActionReportCreated, "Daily report created", &entityType, &entityID)
}

// RecordBillingPosted logs a confirmed billing document
func (s *Service) RecordBillingPosted(ctx context.Context, actorID int64, documentID string) (*Entry, error) {
	entityType := "BILLING"
	return s.repo.Create(ctx, actorID, ActionBillingPosted, "Billing document confirmed and posted to ledger", &entityType, &documentID)
}

// RecordRateUpdated logs a change to a team's rate profile
func (s *Service) RecordRateUpdated(ctx context.Context, actorID, teamID int64) (*Entry, error) {
	entityType := "TEAM"
	entityID := fmt.Sprintf("%d", teamID)
	return s.repo.Create(ctx, actorID, ActionRateUpdated, "Exchange rate profile updated", &entityType, &entityID)
}
