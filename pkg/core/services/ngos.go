package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// CreateNGOParams holds the arguments for creating an organization profile
type CreateNGOParams struct {
	UserID           string
	OrganizationName string
	Mission          string
	Description      string
	Logo             string
	CoverImage       string
	Website          string
}

// CreateNGO creates an organization profile tied to a user account. New
// organizations start unverified and cannot post opportunities until an
// admin verifies them.
func CreateNGO(ctx context.Context, store db.Store, logger *zap.Logger, p CreateNGOParams) (string, error) {
	if p.OrganizationName == "" || p.Mission == "" || p.Description == "" {
		return "", fmt.Errorf("organization name, mission and description are required: %w", db.ErrValidation)
	}

	if _, err := store.GetUser(ctx, p.UserID); err != nil {
		return "", fmt.Errorf("user %s: %w", p.UserID, err)
	}

	ngo := &db.NGO{
		ID:               uuid.New().String(),
		UserID:           p.UserID,
		OrganizationName: p.OrganizationName,
		Mission:          p.Mission,
		Description:      p.Description,
		Logo:             p.Logo,
		CoverImage:       p.CoverImage,
		Website:          p.Website,
		IsVerified:       false,
		CreatedAt:        time.Now(),
	}

	if err := store.InsertNGO(ctx, ngo); err != nil {
		return "", fmt.Errorf("failed to insert organization: %w", err)
	}

	logger.Info("Organization created",
		zap.String("ngo_id", ngo.ID),
		zap.String("name", ngo.OrganizationName))
	return ngo.ID, nil
}

// UpdateNGO applies a partial organization profile edit
func UpdateNGO(ctx context.Context, store db.NGOStore, logger *zap.Logger, ngoID string, update db.NGOUpdate) error {
	if _, err := store.GetNGO(ctx, ngoID); err != nil {
		return fmt.Errorf("organization %s: %w", ngoID, err)
	}

	if err := store.UpdateNGO(ctx, ngoID, update); err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}

	logger.Info("Organization updated", zap.String("ngo_id", ngoID))
	return nil
}

// VerifyNGO flips the verification gate for an organization
func VerifyNGO(ctx context.Context, store db.NGOStore, logger *zap.Logger, ngoID string, verified bool) error {
	if _, err := store.GetNGO(ctx, ngoID); err != nil {
		return fmt.Errorf("organization %s: %w", ngoID, err)
	}

	if err := store.SetNGOVerified(ctx, ngoID, verified); err != nil {
		return fmt.Errorf("failed to set verification: %w", err)
	}

	logger.Info("Organization verification changed",
		zap.String("ngo_id", ngoID),
		zap.Bool("verified", verified))
	return nil
}

// NGOStats summarizes an organization's engagement
type NGOStats struct {
	ActiveVolunteers   int     `json:"activeVolunteers"`
	TotalOpportunities int     `json:"totalOpportunities"`
	CompletedTasks     int     `json:"completedTasks"`
	TotalHours         float64 `json:"totalHours"`
}

// GetNGOStats derives the organization dashboard numbers
func GetNGOStats(ctx context.Context, store db.Store, ngoID string) (*NGOStats, error) {
	ngo, err := store.GetNGO(ctx, ngoID)
	if err != nil {
		return nil, fmt.Errorf("organization %s: %w", ngoID, err)
	}

	activeMatches, err := store.CountMatchesByNGO(ctx, ngoID, db.MatchActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active matches: %w", err)
	}

	opportunities, err := store.CountOpportunitiesByNGO(ctx, ngoID)
	if err != nil {
		return nil, fmt.Errorf("failed to count opportunities: %w", err)
	}

	completedTasks, err := store.CountTasksByNGO(ctx, ngoID, db.TaskCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	return &NGOStats{
		ActiveVolunteers:   activeMatches,
		TotalOpportunities: opportunities,
		CompletedTasks:     completedTasks,
		TotalHours:         ngo.TotalHoursReceived,
	}, nil
}

// UpdateNGOStats applies an explicit increment to the cached organization
// counters
func UpdateNGOStats(ctx context.Context, store db.NGOStore, logger *zap.Logger, ngoID string, hoursToAdd float64, volunteersToAdd int) error {
	if _, err := store.GetNGO(ctx, ngoID); err != nil {
		return fmt.Errorf("organization %s: %w", ngoID, err)
	}

	if err := store.AddNGOStats(ctx, ngoID, hoursToAdd, volunteersToAdd); err != nil {
		return fmt.Errorf("failed to update organization stats: %w", err)
	}
	return nil
}
