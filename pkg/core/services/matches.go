package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// RespondToMatch is the organization's accept/reject decision on a pending
// match. Responding to an already-resolved match fails with ErrInvalidState
// rather than overwriting the earlier decision.
func RespondToMatch(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, matchID string, accept bool) (string, error) {
	var match *db.Match

	err := store.InTx(ctx, func(tx db.Store) error {
		m, err := tx.GetMatchForUpdate(ctx, matchID)
		if err != nil {
			return fmt.Errorf("match %s: %w", matchID, err)
		}
		if m.Status != db.MatchPending {
			return fmt.Errorf("match %s already %s: %w", matchID, m.Status, db.ErrInvalidState)
		}

		if accept {
			now := time.Now()
			m.Status = db.MatchAccepted
			m.AcceptedAt = &now
		} else {
			m.Status = db.MatchRejected
		}

		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("failed to update match: %w", err)
		}
		match = m
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Match resolved",
		zap.String("match_id", matchID),
		zap.Bool("accepted", accept))

	if accept {
		opportunity, opErr := store.GetOpportunity(ctx, match.OpportunityID)
		ngo, ngoErr := store.GetNGO(ctx, match.NGOID)
		if opErr == nil && ngoErr == nil {
			NotifyUser(ctx, store, logger, mailer, &db.Notification{
				UserID:    match.UserID,
				Type:      db.NotifyMatchAccepted,
				Title:     "Match Confirmed!",
				Message:   fmt.Sprintf("%s has accepted your application for %s", ngo.OrganizationName, opportunity.Title),
				RelatedID: matchID,
			})
		}
	}

	return matchID, nil
}

// UpdateMatchStatus moves a match through the accepted/active/completed
// lifecycle
func UpdateMatchStatus(ctx context.Context, store db.Store, logger *zap.Logger, matchID string, status db.MatchStatus) (string, error) {
	switch status {
	case db.MatchPending, db.MatchAccepted, db.MatchRejected, db.MatchActive, db.MatchCompleted:
	default:
		return "", fmt.Errorf("unknown match status %q: %w", status, db.ErrValidation)
	}

	err := store.InTx(ctx, func(tx db.Store) error {
		m, err := tx.GetMatchForUpdate(ctx, matchID)
		if err != nil {
			return fmt.Errorf("match %s: %w", matchID, err)
		}
		m.Status = status
		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("failed to update match: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Match status updated",
		zap.String("match_id", matchID),
		zap.String("status", string(status)))
	return matchID, nil
}

// MatchWithDetails joins a match with the records the UI shows alongside it
type MatchWithDetails struct {
	db.Match
	Volunteer   *db.User        `json:"volunteer,omitempty"`
	NGO         *db.NGO         `json:"ngo,omitempty"`
	Opportunity *db.Opportunity `json:"opportunity,omitempty"`
}

// GetPendingMatchesForNGO lists applications awaiting the organization's
// decision, joined with volunteer and opportunity
func GetPendingMatchesForNGO(ctx context.Context, store db.Store, ngoID string) ([]MatchWithDetails, error) {
	matches, err := store.ListMatchesByNGO(ctx, ngoID, db.MatchPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	results := make([]MatchWithDetails, 0, len(matches))
	for _, m := range matches {
		detail := MatchWithDetails{Match: m}
		if user, err := store.GetUser(ctx, m.UserID); err == nil {
			detail.Volunteer = user
		}
		if op, err := store.GetOpportunity(ctx, m.OpportunityID); err == nil {
			detail.Opportunity = op
		}
		results = append(results, detail)
	}
	return results, nil
}

// GetMatchesForVolunteer lists the volunteer's accepted and active
// engagements, joined with organization and opportunity
func GetMatchesForVolunteer(ctx context.Context, store db.Store, userID string) ([]MatchWithDetails, error) {
	matches, err := store.ListMatchesByUser(ctx, userID, db.MatchAccepted, db.MatchActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	results := make([]MatchWithDetails, 0, len(matches))
	for _, m := range matches {
		detail := MatchWithDetails{Match: m}
		if ngo, err := store.GetNGO(ctx, m.NGOID); err == nil {
			detail.NGO = ngo
		}
		if op, err := store.GetOpportunity(ctx, m.OpportunityID); err == nil {
			detail.Opportunity = op
		}
		results = append(results, detail)
	}
	return results, nil
}

// GetMatch returns one match fully joined
func GetMatch(ctx context.Context, store db.Store, matchID string) (*MatchWithDetails, error) {
	m, err := store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}

	detail := &MatchWithDetails{Match: *m}
	if user, err := store.GetUser(ctx, m.UserID); err == nil {
		detail.Volunteer = user
	}
	if ngo, err := store.GetNGO(ctx, m.NGOID); err == nil {
		detail.NGO = ngo
	}
	if op, err := store.GetOpportunity(ctx, m.OpportunityID); err == nil {
		detail.Opportunity = op
	}
	return detail, nil
}
