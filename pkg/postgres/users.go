package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/causeswipe/causeswipe/pkg/db"
)

const userColumns = `id, email, name, user_type, profile_picture, bio, personal_statement,
	portfolio_link, technical_skills, soft_skills, interests, hours_per_week,
	available_days, preferred_location, total_hours_volunteered, tasks_completed, created_at`

func scanUser(row pgx.Row) (*db.User, error) {
	var u db.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.UserType, &u.ProfilePicture, &u.Bio,
		&u.PersonalStatement, &u.PortfolioLink, &u.TechnicalSkills, &u.SoftSkills,
		&u.Interests, &u.HoursPerWeek, &u.AvailableDays, &u.PreferredLocation,
		&u.TotalHoursVolunteered, &u.TasksCompleted, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// InsertUser inserts a new user record
func (d *DB) InsertUser(ctx context.Context, user *db.User) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO users (id, email, name, user_type, profile_picture, bio,
			personal_statement, portfolio_link, technical_skills, soft_skills,
			interests, hours_per_week, available_days, preferred_location,
			total_hours_volunteered, tasks_completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, user.ID, user.Email, user.Name, user.UserType, user.ProfilePicture, user.Bio,
		user.PersonalStatement, user.PortfolioLink, user.TechnicalSkills, user.SoftSkills,
		user.Interests, user.HoursPerWeek, user.AvailableDays, user.PreferredLocation,
		user.TotalHoursVolunteered, user.TasksCompleted, user.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("user with email %s: %w", user.Email, db.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by id
func (d *DB) GetUser(ctx context.Context, id string) (*db.User, error) {
	user, err := scanUser(d.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	user, err := scanUser(d.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateUserProfile applies the non-nil fields of a profile edit
func (d *DB) UpdateUserProfile(ctx context.Context, id string, update db.UserProfileUpdate) error {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Bio != nil {
		add("bio", *update.Bio)
	}
	if update.PersonalStatement != nil {
		add("personal_statement", *update.PersonalStatement)
	}
	if update.PortfolioLink != nil {
		add("portfolio_link", *update.PortfolioLink)
	}
	if update.ProfilePicture != nil {
		add("profile_picture", *update.ProfilePicture)
	}
	if update.TechnicalSkills != nil {
		add("technical_skills", update.TechnicalSkills)
	}
	if update.SoftSkills != nil {
		add("soft_skills", update.SoftSkills)
	}
	if update.Interests != nil {
		add("interests", update.Interests)
	}
	if update.HoursPerWeek != nil {
		add("hours_per_week", *update.HoursPerWeek)
	}
	if update.AvailableDays != nil {
		add("available_days", update.AvailableDays)
	}
	if update.PreferredLocation != nil {
		add("preferred_location", *update.PreferredLocation)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	if _, err := d.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}

// AddUserStats increments the cached volunteer counters
func (d *DB) AddUserStats(ctx context.Context, id string, hours float64, tasks int) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE users
		SET total_hours_volunteered = total_hours_volunteered + $2,
			tasks_completed = tasks_completed + $3
		WHERE id = $1
	`, id, hours, tasks)
	if err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ListVolunteers retrieves all volunteer accounts
func (d *DB) ListVolunteers(ctx context.Context) ([]db.User, error) {
	rows, err := d.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE user_type = $1`, db.UserTypeVolunteer)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating volunteers: %w", err)
	}
	return users, nil
}
