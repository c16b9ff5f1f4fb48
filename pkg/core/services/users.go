package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// DefaultLeaderboardSize caps the leaderboard when no limit is given
const DefaultLeaderboardSize = 10

// CreateUser creates a user account, or returns the existing account id when
// the email is already registered
func CreateUser(ctx context.Context, store db.UserStore, logger *zap.Logger, email, name string, userType db.UserType) (string, error) {
	if email == "" || name == "" {
		return "", fmt.Errorf("email and name are required: %w", db.ErrValidation)
	}
	if userType != db.UserTypeVolunteer && userType != db.UserTypeNGO {
		return "", fmt.Errorf("unknown user type %q: %w", userType, db.ErrValidation)
	}

	existing, err := store.GetUserByEmail(ctx, email)
	if err == nil {
		logger.Debug("User already exists", zap.String("user_id", existing.ID), zap.String("email", email))
		return existing.ID, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return "", fmt.Errorf("failed to look up user by email: %w", err)
	}

	user := &db.User{
		ID:              uuid.New().String(),
		Email:           email,
		Name:            name,
		UserType:        userType,
		TechnicalSkills: []string{},
		SoftSkills:      []string{},
		Interests:       []string{},
		CreatedAt:       time.Now(),
	}

	err = store.InsertUser(ctx, user)
	if errors.Is(err, db.ErrDuplicate) {
		// A concurrent signup with the same email landed first
		existing, err := store.GetUserByEmail(ctx, email)
		if err != nil {
			return "", fmt.Errorf("failed to look up user by email: %w", err)
		}
		return existing.ID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	logger.Info("User created", zap.String("user_id", user.ID), zap.String("user_type", string(userType)))
	return user.ID, nil
}

// UpdateVolunteerProfile applies a partial profile edit
func UpdateVolunteerProfile(ctx context.Context, store db.UserStore, logger *zap.Logger, userID string, update db.UserProfileUpdate) error {
	if _, err := store.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("user %s: %w", userID, err)
	}

	if err := store.UpdateUserProfile(ctx, userID, update); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	logger.Info("Profile updated", zap.String("user_id", userID))
	return nil
}

// UpdateUserStats applies an explicit increment to the cached volunteer
// counters
func UpdateUserStats(ctx context.Context, store db.UserStore, logger *zap.Logger, userID string, hoursToAdd float64, tasksToAdd int) error {
	if _, err := store.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("user %s: %w", userID, err)
	}

	if err := store.AddUserStats(ctx, userID, hoursToAdd, tasksToAdd); err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}
	return nil
}

// LeaderboardEntry is one row of the volunteer leaderboard
type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	Name           string  `json:"name"`
	ProfilePicture string  `json:"profilePicture,omitempty"`
	TasksCompleted int     `json:"tasksCompleted"`
	TotalHours     float64 `json:"totalHours"`
}

// GetLeaderboard ranks volunteers by completed tasks
func GetLeaderboard(ctx context.Context, store db.UserStore, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	volunteers, err := store.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}

	sort.SliceStable(volunteers, func(i, j int) bool {
		return volunteers[i].TasksCompleted > volunteers[j].TasksCompleted
	})
	if len(volunteers) > limit {
		volunteers = volunteers[:limit]
	}

	entries := make([]LeaderboardEntry, len(volunteers))
	for i, v := range volunteers {
		entries[i] = LeaderboardEntry{
			Rank:           i + 1,
			Name:           v.Name,
			ProfilePicture: v.ProfilePicture,
			TasksCompleted: v.TasksCompleted,
			TotalHours:     v.TotalHoursVolunteered,
		}
	}
	return entries, nil
}
