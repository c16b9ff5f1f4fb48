package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/causeswipe/causeswipe/pkg/db"
)

const ngoColumns = `id, user_id, organization_name, logo, cover_image, mission, vision,
	description, website, social_media, is_verified, total_volunteers, total_hours_received, created_at`

func scanNGO(row pgx.Row) (*db.NGO, error) {
	var n db.NGO
	err := row.Scan(&n.ID, &n.UserID, &n.OrganizationName, &n.Logo, &n.CoverImage,
		&n.Mission, &n.Vision, &n.Description, &n.Website, &n.SocialMedia, &n.IsVerified,
		&n.TotalVolunteers, &n.TotalHoursReceived, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// InsertNGO inserts a new organization record
func (d *DB) InsertNGO(ctx context.Context, ngo *db.NGO) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO ngos (id, user_id, organization_name, logo, cover_image, mission,
			vision, description, website, social_media, is_verified, total_volunteers,
			total_hours_received, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, ngo.ID, ngo.UserID, ngo.OrganizationName, ngo.Logo, ngo.CoverImage, ngo.Mission,
		ngo.Vision, ngo.Description, ngo.Website, ngo.SocialMedia, ngo.IsVerified,
		ngo.TotalVolunteers, ngo.TotalHoursReceived, ngo.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	return nil
}

// GetNGO retrieves an organization by id
func (d *DB) GetNGO(ctx context.Context, id string) (*db.NGO, error) {
	ngo, err := scanNGO(d.q.QueryRow(ctx, `SELECT `+ngoColumns+` FROM ngos WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return ngo, nil
}

// GetNGOByUserID retrieves the organization owned by a user account
func (d *DB) GetNGOByUserID(ctx context.Context, userID string) (*db.NGO, error) {
	ngo, err := scanNGO(d.q.QueryRow(ctx, `SELECT `+ngoColumns+` FROM ngos WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization by user: %w", err)
	}
	return ngo, nil
}

// UpdateNGO applies the non-nil fields of an organization edit
func (d *DB) UpdateNGO(ctx context.Context, id string, update db.NGOUpdate) error {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.OrganizationName != nil {
		add("organization_name", *update.OrganizationName)
	}
	if update.Mission != nil {
		add("mission", *update.Mission)
	}
	if update.Vision != nil {
		add("vision", *update.Vision)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Logo != nil {
		add("logo", *update.Logo)
	}
	if update.CoverImage != nil {
		add("cover_image", *update.CoverImage)
	}
	if update.Website != nil {
		add("website", *update.Website)
	}
	if update.SocialMedia != nil {
		add("social_media", update.SocialMedia)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE ngos SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	if _, err := d.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	return nil
}

// AddNGOStats increments the cached organization counters
func (d *DB) AddNGOStats(ctx context.Context, id string, hours float64, volunteers int) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE ngos
		SET total_hours_received = total_hours_received + $2,
			total_volunteers = total_volunteers + $3
		WHERE id = $1
	`, id, hours, volunteers)
	if err != nil {
		return fmt.Errorf("failed to update organization stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// SetNGOVerified flips the verification flag
func (d *DB) SetNGOVerified(ctx context.Context, id string, verified bool) error {
	tag, err := d.q.Exec(ctx, `UPDATE ngos SET is_verified = $2 WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("failed to set verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ListVerifiedNGOs retrieves all verified organizations
func (d *DB) ListVerifiedNGOs(ctx context.Context) ([]db.NGO, error) {
	rows, err := d.q.Query(ctx, `SELECT `+ngoColumns+` FROM ngos WHERE is_verified`)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	var ngos []db.NGO
	for rows.Next() {
		n, err := scanNGO(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		ngos = append(ngos, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}
	return ngos, nil
}
