package postgres

import (
	"context"
	"fmt"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// InsertSwipe inserts a new swipe record
func (d *DB) InsertSwipe(ctx context.Context, swipe *db.Swipe) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO swipes (id, user_id, opportunity_id, ngo_id, swipe_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, swipe.ID, swipe.UserID, swipe.OpportunityID, swipe.NGOID, swipe.SwipeType, swipe.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert swipe: %w", err)
	}
	return nil
}

// ListSwipesByUser retrieves a user's swipe history
func (d *DB) ListSwipesByUser(ctx context.Context, userID string) ([]db.Swipe, error) {
	rows, err := d.q.Query(ctx, `
		SELECT id, user_id, opportunity_id, ngo_id, swipe_type, created_at
		FROM swipes
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes: %w", err)
	}
	defer rows.Close()

	var swipes []db.Swipe
	for rows.Next() {
		var s db.Swipe
		if err := rows.Scan(&s.ID, &s.UserID, &s.OpportunityID, &s.NGOID, &s.SwipeType, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan swipe: %w", err)
		}
		swipes = append(swipes, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swipes: %w", err)
	}
	return swipes, nil
}
