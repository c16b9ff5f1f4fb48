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

// CreateAchievementParams holds the arguments for defining an achievement
// template
type CreateAchievementParams struct {
	Name          string
	Description   string
	Type          db.AchievementType
	Tier          db.Tier
	Icon          string
	Category      string
	CriteriaType  string
	CriteriaValue float64
	CriteriaSkill string
}

// CreateAchievement defines a new unlockable template
func CreateAchievement(ctx context.Context, store db.AchievementStore, logger *zap.Logger, p CreateAchievementParams) (string, error) {
	if p.Name == "" || p.CriteriaType == "" {
		return "", fmt.Errorf("name and criteria type are required: %w", db.ErrValidation)
	}

	achievement := &db.Achievement{
		ID:            uuid.New().String(),
		Name:          p.Name,
		Description:   p.Description,
		Type:          p.Type,
		Tier:          p.Tier,
		Icon:          p.Icon,
		Category:      p.Category,
		CriteriaType:  p.CriteriaType,
		CriteriaValue: p.CriteriaValue,
		CriteriaSkill: p.CriteriaSkill,
	}

	if err := store.InsertAchievement(ctx, achievement); err != nil {
		return "", fmt.Errorf("failed to insert achievement: %w", err)
	}

	logger.Info("Achievement template created",
		zap.String("achievement_id", achievement.ID),
		zap.String("name", p.Name))
	return achievement.ID, nil
}

// CheckAndAwardAchievements evaluates every template against the user's
// stats and grants the newly satisfied ones. Templates already earned are
// skipped, so one grant exists per user/achievement pair no matter how
// often the evaluator runs. Callers invoke this after stat-affecting events;
// it is not triggered automatically.
func CheckAndAwardAchievements(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, userID string) ([]db.Achievement, error) {
	type grant struct {
		achievement db.Achievement
		grantID     string
	}
	var grants []grant

	err := store.InTx(ctx, func(tx db.Store) error {
		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("user %s: %w", userID, err)
		}

		templates, err := tx.ListAchievements(ctx)
		if err != nil {
			return fmt.Errorf("failed to list achievements: %w", err)
		}

		existing, err := tx.ListUserAchievements(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list user achievements: %w", err)
		}
		earned := make(map[string]bool, len(existing))
		for _, ua := range existing {
			earned[ua.AchievementID] = true
		}

		for _, template := range templates {
			if earned[template.ID] {
				continue
			}

			var satisfied bool
			switch c := template.Criteria().(type) {
			case db.TasksCompletedCriteria:
				satisfied = user.TasksCompleted >= c.Threshold
			case db.HoursVolunteeredCriteria:
				satisfied = user.TotalHoursVolunteered >= c.Threshold
			case db.SkillTasksCriteria:
				count, err := tx.CountCompletedTasksInCategory(ctx, userID, c.Skill)
				if err != nil {
					return fmt.Errorf("failed to count skill tasks: %w", err)
				}
				satisfied = count >= c.Threshold
			case db.CustomCriteria:
				// manually granted only
			}
			if !satisfied {
				continue
			}

			ua := &db.UserAchievement{
				ID:            uuid.New().String(),
				UserID:        userID,
				AchievementID: template.ID,
				EarnedAt:      time.Now(),
			}
			err = tx.InsertUserAchievement(ctx, ua)
			if errors.Is(err, db.ErrDuplicate) {
				// A concurrent evaluation granted it first
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to insert grant: %w", err)
			}
			grants = append(grants, grant{achievement: template, grantID: ua.ID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	newlyEarned := make([]db.Achievement, 0, len(grants))
	for _, g := range grants {
		newlyEarned = append(newlyEarned, g.achievement)
		NotifyUser(ctx, store, logger, mailer, &db.Notification{
			UserID:    userID,
			Type:      db.NotifyAchievementUnlocked,
			Title:     "Achievement Unlocked!",
			Message:   fmt.Sprintf("You've earned: %s", g.achievement.Name),
			RelatedID: g.grantID,
		})
	}

	if len(newlyEarned) > 0 {
		logger.Info("Achievements awarded",
			zap.String("user_id", userID),
			zap.Int("count", len(newlyEarned)))
	}
	return newlyEarned, nil
}

// AwardCustomMedal lets an organization mint a one-off gold medal and grant
// it immediately, bypassing the evaluator
func AwardCustomMedal(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, userID, ngoID, name, description, icon string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("medal name is required: %w", db.ErrValidation)
	}

	ngo, err := store.GetNGO(ctx, ngoID)
	if err != nil {
		return "", fmt.Errorf("organization %s: %w", ngoID, err)
	}
	if _, err := store.GetUser(ctx, userID); err != nil {
		return "", fmt.Errorf("user %s: %w", userID, err)
	}

	var grantID string
	err = store.InTx(ctx, func(tx db.Store) error {
		achievement := &db.Achievement{
			ID:           uuid.New().String(),
			Name:         name,
			Description:  description,
			Type:         db.AchievementMedal,
			Tier:         db.TierGold,
			Icon:         icon,
			Category:     "NGO Special Award",
			CriteriaType: db.CriteriaCustom,
		}
		if err := tx.InsertAchievement(ctx, achievement); err != nil {
			return fmt.Errorf("failed to insert achievement: %w", err)
		}

		ua := &db.UserAchievement{
			ID:            uuid.New().String(),
			UserID:        userID,
			AchievementID: achievement.ID,
			EarnedAt:      time.Now(),
		}
		if err := tx.InsertUserAchievement(ctx, ua); err != nil {
			return fmt.Errorf("failed to insert grant: %w", err)
		}
		grantID = ua.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Custom medal awarded",
		zap.String("user_id", userID),
		zap.String("ngo_id", ngoID),
		zap.String("name", name))

	NotifyUser(ctx, store, logger, mailer, &db.Notification{
		UserID:    userID,
		Type:      db.NotifyAchievementUnlocked,
		Title:     "Special Award Received!",
		Message:   fmt.Sprintf("%s has awarded you: %s", ngo.OrganizationName, name),
		RelatedID: grantID,
	})

	return grantID, nil
}

// EarnedAchievement joins a grant with its template
type EarnedAchievement struct {
	db.UserAchievement
	Achievement *db.Achievement `json:"achievement,omitempty"`
}

// GetUserAchievements lists a user's earned achievements with templates
func GetUserAchievements(ctx context.Context, store db.AchievementStore, userID string) ([]EarnedAchievement, error) {
	grants, err := store.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user achievements: %w", err)
	}

	results := make([]EarnedAchievement, 0, len(grants))
	for _, g := range grants {
		entry := EarnedAchievement{UserAchievement: g}
		if a, err := store.GetAchievement(ctx, g.AchievementID); err == nil {
			entry.Achievement = a
		}
		results = append(results, entry)
	}
	return results, nil
}

// SeedDefaultAchievements installs the stock medal and badge templates. It
// is a no-op when any template already exists; returns the number inserted.
func SeedDefaultAchievements(ctx context.Context, store db.AchievementStore, logger *zap.Logger) (int, error) {
	existing, err := store.ListAchievements(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list achievements: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	defaults := []db.Achievement{
		{
			Name:          "First Mission Complete",
			Description:   "Complete your first volunteer task",
			Type:          db.AchievementMedal,
			Tier:          db.TierBronze,
			Icon:          "🥉",
			CriteriaType:  db.CriteriaTasksCompleted,
			CriteriaValue: 1,
		},
		{
			Name:          "Dedicated Volunteer",
			Description:   "Complete 10 volunteer tasks",
			Type:          db.AchievementMedal,
			Tier:          db.TierSilver,
			Icon:          "🥈",
			CriteriaType:  db.CriteriaTasksCompleted,
			CriteriaValue: 10,
		},
		{
			Name:          "Community Champion",
			Description:   "Complete 50 volunteer tasks",
			Type:          db.AchievementMedal,
			Tier:          db.TierGold,
			Icon:          "🥇",
			CriteriaType:  db.CriteriaTasksCompleted,
			CriteriaValue: 50,
		},
		{
			Name:          "Time Giver",
			Description:   "Volunteer for 10 hours",
			Type:          db.AchievementMedal,
			Tier:          db.TierBronze,
			Icon:          "⏰",
			CriteriaType:  db.CriteriaHoursVolunteered,
			CriteriaValue: 10,
		},
		{
			Name:          "Century Volunteer",
			Description:   "Volunteer for 100 hours",
			Type:          db.AchievementMedal,
			Tier:          db.TierGold,
			Icon:          "💯",
			CriteriaType:  db.CriteriaHoursVolunteered,
			CriteriaValue: 100,
		},
		{
			Name:          "Graphic Design Guru",
			Description:   "Complete 5 graphic design tasks",
			Type:          db.AchievementBadge,
			Icon:          "🎨",
			Category:      "Graphic Design",
			CriteriaType:  db.CriteriaSkillTasks,
			CriteriaValue: 5,
			CriteriaSkill: "Graphic Design",
		},
		{
			Name:          "Social Media Whiz",
			Description:   "Complete 5 social media tasks",
			Type:          db.AchievementBadge,
			Icon:          "📱",
			Category:      "Social Media",
			CriteriaType:  db.CriteriaSkillTasks,
			CriteriaValue: 5,
			CriteriaSkill: "Social Media",
		},
		{
			Name:          "Content Creator",
			Description:   "Complete 5 content writing tasks",
			Type:          db.AchievementBadge,
			Icon:          "✍️",
			Category:      "Content Writing",
			CriteriaType:  db.CriteriaSkillTasks,
			CriteriaValue: 5,
			CriteriaSkill: "Content Writing",
		},
	}

	for i := range defaults {
		defaults[i].ID = uuid.New().String()
		if err := store.InsertAchievement(ctx, &defaults[i]); err != nil {
			return 0, fmt.Errorf("failed to insert default achievement %q: %w", defaults[i].Name, err)
		}
	}

	logger.Info("Default achievements seeded", zap.Int("count", len(defaults)))
	return len(defaults), nil
}
