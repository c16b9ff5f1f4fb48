package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// SwipeResult reports the records produced by one swipe
type SwipeResult struct {
	SwipeID string `json:"swipeId"`
	// MatchID is set for right swipes; it references the newly created
	// match, or the existing one when the user already applied
	MatchID string `json:"matchId,omitempty"`
}

// SwipeOpportunity records a volunteer's swipe. A right swipe additionally
// creates a pending match (at most one per user/opportunity pair) and
// notifies the organization. Left and super swipes have no match side
// effect; super is a bookmark.
func SwipeOpportunity(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, userID, opportunityID string, swipeType db.SwipeType) (*SwipeResult, error) {
	switch swipeType {
	case db.SwipeLeft, db.SwipeRight, db.SwipeSuper:
	default:
		return nil, fmt.Errorf("unknown swipe type %q: %w", swipeType, db.ErrValidation)
	}

	var (
		result      SwipeResult
		newMatch    *db.Match
		opportunity *db.Opportunity
	)

	err := store.InTx(ctx, func(tx db.Store) error {
		op, err := tx.GetOpportunity(ctx, opportunityID)
		if err != nil {
			return fmt.Errorf("opportunity %s: %w", opportunityID, err)
		}
		opportunity = op

		swipe := &db.Swipe{
			ID:            uuid.New().String(),
			UserID:        userID,
			OpportunityID: opportunityID,
			NGOID:         op.NGOID,
			SwipeType:     swipeType,
			CreatedAt:     time.Now(),
		}
		if err := tx.InsertSwipe(ctx, swipe); err != nil {
			return fmt.Errorf("failed to insert swipe: %w", err)
		}
		result.SwipeID = swipe.ID

		if swipeType != db.SwipeRight {
			return nil
		}

		existing, err := tx.FindMatch(ctx, userID, opportunityID)
		if err == nil {
			// Already applied; keep the single match per pair
			result.MatchID = existing.ID
			return nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("failed to look up match: %w", err)
		}

		match := &db.Match{
			ID:            uuid.New().String(),
			UserID:        userID,
			OpportunityID: opportunityID,
			NGOID:         op.NGOID,
			Status:        db.MatchPending,
			CreatedAt:     time.Now(),
		}
		err = tx.InsertMatch(ctx, match)
		if errors.Is(err, db.ErrDuplicate) {
			// A concurrent right swipe created the match between our
			// lookup and the insert; defer to it
			existing, err := tx.FindMatch(ctx, userID, opportunityID)
			if err != nil {
				return fmt.Errorf("failed to look up match: %w", err)
			}
			result.MatchID = existing.ID
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
		result.MatchID = match.ID
		newMatch = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Swipe recorded",
		zap.String("user_id", userID),
		zap.String("opportunity_id", opportunityID),
		zap.String("swipe_type", string(swipeType)),
		zap.Bool("match_created", newMatch != nil))

	if newMatch != nil {
		ngo, err := store.GetNGO(ctx, opportunity.NGOID)
		if err != nil {
			logger.Warn("Skipping applicant notification, organization not found",
				zap.String("ngo_id", opportunity.NGOID))
		} else {
			NotifyUser(ctx, store, logger, mailer, &db.Notification{
				UserID:    ngo.UserID,
				Type:      db.NotifyNewApplicant,
				Title:     "New Volunteer Interest!",
				Message:   fmt.Sprintf("A volunteer has shown interest in your opportunity: %s", opportunity.Title),
				RelatedID: newMatch.ID,
			})
		}
	}

	return &result, nil
}
