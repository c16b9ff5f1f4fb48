package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/causeswipe/causeswipe/pkg/db"
)

const achievementColumns = `id, name, description, type, tier, icon, category,
	criteria_type, criteria_value, criteria_skill`

func scanAchievement(row pgx.Row) (*db.Achievement, error) {
	var a db.Achievement
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Type, &a.Tier, &a.Icon,
		&a.Category, &a.CriteriaType, &a.CriteriaValue, &a.CriteriaSkill)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertAchievement inserts a new achievement template
func (d *DB) InsertAchievement(ctx context.Context, achievement *db.Achievement) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO achievements (id, name, description, type, tier, icon, category,
			criteria_type, criteria_value, criteria_skill)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, achievement.ID, achievement.Name, achievement.Description, achievement.Type,
		achievement.Tier, achievement.Icon, achievement.Category, achievement.CriteriaType,
		achievement.CriteriaValue, achievement.CriteriaSkill)
	if err != nil {
		return fmt.Errorf("failed to insert achievement: %w", err)
	}
	return nil
}

// GetAchievement retrieves an achievement template by id
func (d *DB) GetAchievement(ctx context.Context, id string) (*db.Achievement, error) {
	achievement, err := scanAchievement(d.q.QueryRow(ctx, `SELECT `+achievementColumns+` FROM achievements WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}
	return achievement, nil
}

// ListAchievements retrieves all achievement templates
func (d *DB) ListAchievements(ctx context.Context) ([]db.Achievement, error) {
	rows, err := d.q.Query(ctx, `SELECT `+achievementColumns+` FROM achievements`)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []db.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}
	return achievements, nil
}

// InsertUserAchievement inserts a new achievement grant
func (d *DB) InsertUserAchievement(ctx context.Context, grant *db.UserAchievement) error {
	tag, err := d.q.Exec(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_id, earned_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`, grant.ID, grant.UserID, grant.AchievementID, grant.EarnedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("achievement %s for user %s: %w", grant.AchievementID, grant.UserID, db.ErrDuplicate)
	}
	return nil
}

// ListUserAchievements retrieves a user's achievement grants
func (d *DB) ListUserAchievements(ctx context.Context, userID string) ([]db.UserAchievement, error) {
	rows, err := d.q.Query(ctx, `
		SELECT id, user_id, achievement_id, earned_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY earned_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user achievements: %w", err)
	}
	defer rows.Close()

	var grants []db.UserAchievement
	for rows.Next() {
		var g db.UserAchievement
		if err := rows.Scan(&g.ID, &g.UserID, &g.AchievementID, &g.EarnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user achievement: %w", err)
		}
		grants = append(grants, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user achievements: %w", err)
	}
	return grants, nil
}
