package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/causeswipe/causeswipe/pkg/db"
)

const opportunityColumns = `id, ngo_id, title, description, cover_image, required_skills,
	time_commitment, duration, location, location_type, cause, schedule, is_active,
	spots_available, created_at`

func scanOpportunity(row pgx.Row) (*db.Opportunity, error) {
	var o db.Opportunity
	err := row.Scan(&o.ID, &o.NGOID, &o.Title, &o.Description, &o.CoverImage,
		&o.RequiredSkills, &o.TimeCommitment, &o.Duration, &o.Location, &o.LocationType,
		&o.Cause, &o.Schedule, &o.IsActive, &o.SpotsAvailable, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// InsertOpportunity inserts a new opportunity record
func (d *DB) InsertOpportunity(ctx context.Context, op *db.Opportunity) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO opportunities (id, ngo_id, title, description, cover_image,
			required_skills, time_commitment, duration, location, location_type,
			cause, schedule, is_active, spots_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, op.ID, op.NGOID, op.Title, op.Description, op.CoverImage, op.RequiredSkills,
		op.TimeCommitment, op.Duration, op.Location, op.LocationType, op.Cause,
		op.Schedule, op.IsActive, op.SpotsAvailable, op.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert opportunity: %w", err)
	}
	return nil
}

// GetOpportunity retrieves an opportunity by id
func (d *DB) GetOpportunity(ctx context.Context, id string) (*db.Opportunity, error) {
	op, err := scanOpportunity(d.q.QueryRow(ctx, `SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return op, nil
}

func (d *DB) listOpportunities(ctx context.Context, query string, args ...any) ([]db.Opportunity, error) {
	rows, err := d.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []db.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opportunities = append(opportunities, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunities: %w", err)
	}
	return opportunities, nil
}

// ListActiveOpportunities retrieves all active opportunities
func (d *DB) ListActiveOpportunities(ctx context.Context) ([]db.Opportunity, error) {
	return d.listOpportunities(ctx, `SELECT `+opportunityColumns+` FROM opportunities WHERE is_active ORDER BY created_at DESC`)
}

// ListOpportunitiesByNGO retrieves an organization's opportunities
func (d *DB) ListOpportunitiesByNGO(ctx context.Context, ngoID string) ([]db.Opportunity, error) {
	return d.listOpportunities(ctx, `SELECT `+opportunityColumns+` FROM opportunities WHERE ngo_id = $1 ORDER BY created_at DESC`, ngoID)
}

// UpdateOpportunity applies the non-nil fields of an opportunity edit
func (d *DB) UpdateOpportunity(ctx context.Context, id string, update db.OpportunityUpdate) error {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.RequiredSkills != nil {
		add("required_skills", update.RequiredSkills)
	}
	if update.TimeCommitment != nil {
		add("time_commitment", *update.TimeCommitment)
	}
	if update.Schedule != nil {
		add("schedule", *update.Schedule)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE opportunities SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	if _, err := d.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update opportunity: %w", err)
	}
	return nil
}

// DeleteOpportunity removes an opportunity record
func (d *DB) DeleteOpportunity(ctx context.Context, id string) error {
	tag, err := d.q.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// CountOpportunitiesByNGO counts an organization's opportunities
func (d *DB) CountOpportunitiesByNGO(ctx context.Context, ngoID string) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `SELECT COUNT(*) FROM opportunities WHERE ngo_id = $1`, ngoID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count opportunities: %w", err)
	}
	return count, nil
}
