package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// CreateOpportunityParams holds the arguments for posting an opportunity
type CreateOpportunityParams struct {
	NGOID          string
	Title          string
	Description    string
	RequiredSkills []string
	TimeCommitment string
	Location       string
	LocationType   db.LocationType
	Cause          []string
	CoverImage     string
	Duration       string
	SpotsAvailable *int
	// Schedule is an optional RRULE string for recurring sessions
	Schedule string
}

// CreateOpportunity posts a new opportunity for a verified organization
func CreateOpportunity(ctx context.Context, store db.Store, logger *zap.Logger, p CreateOpportunityParams) (string, error) {
	if p.Title == "" || p.Description == "" {
		return "", fmt.Errorf("title and description are required: %w", db.ErrValidation)
	}

	ngo, err := store.GetNGO(ctx, p.NGOID)
	if err != nil {
		return "", fmt.Errorf("organization %s: %w", p.NGOID, err)
	}
	if !ngo.IsVerified {
		return "", fmt.Errorf("organization %s is not verified: %w", p.NGOID, db.ErrInvalidState)
	}

	if p.Schedule != "" {
		if _, err := rrule.StrToRRule(p.Schedule); err != nil {
			return "", fmt.Errorf("invalid schedule rrule: %v: %w", err, db.ErrValidation)
		}
	}

	op := &db.Opportunity{
		ID:             uuid.New().String(),
		NGOID:          p.NGOID,
		Title:          p.Title,
		Description:    p.Description,
		CoverImage:     p.CoverImage,
		RequiredSkills: p.RequiredSkills,
		TimeCommitment: p.TimeCommitment,
		Duration:       p.Duration,
		Location:       p.Location,
		LocationType:   p.LocationType,
		Cause:          p.Cause,
		Schedule:       p.Schedule,
		IsActive:       true,
		SpotsAvailable: p.SpotsAvailable,
		CreatedAt:      time.Now(),
	}

	if err := store.InsertOpportunity(ctx, op); err != nil {
		return "", fmt.Errorf("failed to insert opportunity: %w", err)
	}

	logger.Info("Opportunity created",
		zap.String("opportunity_id", op.ID),
		zap.String("ngo_id", p.NGOID),
		zap.String("title", p.Title))
	return op.ID, nil
}

// NGOSummary is the slice of organization data shown on cards
type NGOSummary struct {
	Name       string `json:"name"`
	Logo       string `json:"logo,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
	Mission    string `json:"mission,omitempty"`
}

// OpportunityWithNGO joins an opportunity with its organization summary
type OpportunityWithNGO struct {
	db.Opportunity
	NGO *NGOSummary `json:"ngo"`
}

// GetOpportunitiesForUser returns the swipe deck: active opportunities the
// user has not yet swiped on, optionally filtered by cause and skill overlap
func GetOpportunitiesForUser(ctx context.Context, store db.Store, userID string, causeFilter, skillFilter []string) ([]OpportunityWithNGO, error) {
	opportunities, err := store.ListActiveOpportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	swipes, err := store.ListSwipesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swipes: %w", err)
	}
	swiped := make(map[string]bool, len(swipes))
	for _, s := range swipes {
		swiped[s.OpportunityID] = true
	}

	deck := make([]OpportunityWithNGO, 0, len(opportunities))
	for _, op := range opportunities {
		if swiped[op.ID] {
			continue
		}
		if len(causeFilter) > 0 && !anyOverlap(op.Cause, causeFilter) {
			continue
		}
		if len(skillFilter) > 0 && !anyOverlap(op.RequiredSkills, skillFilter) {
			continue
		}

		entry := OpportunityWithNGO{Opportunity: op}
		if ngo, err := store.GetNGO(ctx, op.NGOID); err == nil {
			entry.NGO = &NGOSummary{
				Name:       ngo.OrganizationName,
				Logo:       ngo.Logo,
				CoverImage: ngo.CoverImage,
			}
		}
		deck = append(deck, entry)
	}

	return deck, nil
}

// GetOpportunity returns one opportunity with its organization summary
func GetOpportunity(ctx context.Context, store db.Store, opportunityID string) (*OpportunityWithNGO, error) {
	op, err := store.GetOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("opportunity %s: %w", opportunityID, err)
	}

	result := &OpportunityWithNGO{Opportunity: *op}
	if ngo, err := store.GetNGO(ctx, op.NGOID); err == nil {
		result.NGO = &NGOSummary{
			Name:    ngo.OrganizationName,
			Logo:    ngo.Logo,
			Mission: ngo.Mission,
		}
	}
	return result, nil
}

// UpdateOpportunity applies a partial opportunity edit
func UpdateOpportunity(ctx context.Context, store db.OpportunityStore, logger *zap.Logger, opportunityID string, update db.OpportunityUpdate) error {
	if _, err := store.GetOpportunity(ctx, opportunityID); err != nil {
		return fmt.Errorf("opportunity %s: %w", opportunityID, err)
	}

	if update.Schedule != nil && *update.Schedule != "" {
		if _, err := rrule.StrToRRule(*update.Schedule); err != nil {
			return fmt.Errorf("invalid schedule rrule: %v: %w", err, db.ErrValidation)
		}
	}

	if err := store.UpdateOpportunity(ctx, opportunityID, update); err != nil {
		return fmt.Errorf("failed to update opportunity: %w", err)
	}

	logger.Info("Opportunity updated", zap.String("opportunity_id", opportunityID))
	return nil
}

// DeleteOpportunity removes an opportunity
func DeleteOpportunity(ctx context.Context, store db.OpportunityStore, logger *zap.Logger, opportunityID string) error {
	if _, err := store.GetOpportunity(ctx, opportunityID); err != nil {
		return fmt.Errorf("opportunity %s: %w", opportunityID, err)
	}

	if err := store.DeleteOpportunity(ctx, opportunityID); err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}

	logger.Info("Opportunity deleted", zap.String("opportunity_id", opportunityID))
	return nil
}

// UpcomingSessions expands an opportunity's schedule RRULE into its next n
// session dates. Opportunities without a schedule yield no dates.
func UpcomingSessions(ctx context.Context, store db.OpportunityStore, opportunityID string, n int) ([]time.Time, error) {
	op, err := store.GetOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("opportunity %s: %w", opportunityID, err)
	}

	if op.Schedule == "" || n <= 0 {
		return nil, nil
	}

	rule, err := rrule.StrToRRule(op.Schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule rrule: %w", err)
	}

	now := time.Now()
	sessions := make([]time.Time, 0, n)
	next := rule.After(now, false)
	for !next.IsZero() && len(sessions) < n {
		sessions = append(sessions, next)
		next = rule.After(next, false)
	}
	return sessions, nil
}

// anyOverlap reports whether the two string sets intersect
func anyOverlap(values, filter []string) bool {
	set := make(map[string]bool, len(filter))
	for _, f := range filter {
		set[f] = true
	}
	for _, v := range values {
		if set[v] {
			return true
		}
	}
	return false
}
