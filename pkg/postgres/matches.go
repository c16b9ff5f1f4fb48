package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/causeswipe/causeswipe/pkg/db"
)

const matchColumns = `id, user_id, opportunity_id, ngo_id, status, created_at, accepted_at`

func scanMatch(row pgx.Row) (*db.Match, error) {
	var m db.Match
	err := row.Scan(&m.ID, &m.UserID, &m.OpportunityID, &m.NGOID, &m.Status, &m.CreatedAt, &m.AcceptedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// InsertMatch inserts a new match record
func (d *DB) InsertMatch(ctx context.Context, match *db.Match) error {
	// ON CONFLICT keeps the statement from aborting the surrounding
	// transaction when a concurrent swipe wins the race
	tag, err := d.q.Exec(ctx, `
		INSERT INTO matches (id, user_id, opportunity_id, ngo_id, status, created_at, accepted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, opportunity_id) DO NOTHING
	`, match.ID, match.UserID, match.OpportunityID, match.NGOID, match.Status, match.CreatedAt, match.AcceptedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match for user %s and opportunity %s: %w", match.UserID, match.OpportunityID, db.ErrDuplicate)
	}
	return nil
}

// GetMatch retrieves a match by id
func (d *DB) GetMatch(ctx context.Context, id string) (*db.Match, error) {
	match, err := scanMatch(d.q.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

// GetMatchForUpdate retrieves a match and locks its row until the enclosing
// transaction ends
func (d *DB) GetMatchForUpdate(ctx context.Context, id string) (*db.Match, error) {
	match, err := scanMatch(d.q.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

// FindMatch looks up the match for one (user, opportunity) pair
func (d *DB) FindMatch(ctx context.Context, userID, opportunityID string) (*db.Match, error) {
	match, err := scanMatch(d.q.QueryRow(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE user_id = $1 AND opportunity_id = $2
		LIMIT 1
	`, userID, opportunityID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	return match, nil
}

// UpdateMatch writes a match's mutable fields
func (d *DB) UpdateMatch(ctx context.Context, match *db.Match) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE matches SET status = $2, accepted_at = $3 WHERE id = $1
	`, match.ID, match.Status, match.AcceptedAt)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (d *DB) listMatches(ctx context.Context, column, id string, statuses []db.MatchStatus) ([]db.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE ` + column + ` = $1`
	args := []any{id}
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			args = append(args, s)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += ` AND status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []db.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}
	return matches, nil
}

// ListMatchesByNGO retrieves an organization's matches, optionally filtered
// by status
func (d *DB) ListMatchesByNGO(ctx context.Context, ngoID string, statuses ...db.MatchStatus) ([]db.Match, error) {
	return d.listMatches(ctx, "ngo_id", ngoID, statuses)
}

// ListMatchesByUser retrieves a volunteer's matches, optionally filtered by
// status
func (d *DB) ListMatchesByUser(ctx context.Context, userID string, statuses ...db.MatchStatus) ([]db.Match, error) {
	return d.listMatches(ctx, "user_id", userID, statuses)
}

// CountMatchesByNGO counts an organization's matches in one status
func (d *DB) CountMatchesByNGO(ctx context.Context, ngoID string, status db.MatchStatus) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `SELECT COUNT(*) FROM matches WHERE ngo_id = $1 AND status = $2`, ngoID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}
