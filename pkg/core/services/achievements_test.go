package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

func TestCheckAndAwardAchievements_TasksCompleted(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.users["vol-1"] = &db.User{ID: "vol-1", UserType: db.UserTypeVolunteer, TasksCompleted: 1}
	store.achievements["ach-1"] = &db.Achievement{
		ID:            "ach-1",
		Name:          "First Mission Complete",
		CriteriaType:  db.CriteriaTasksCompleted,
		CriteriaValue: 1,
	}
	store.achievements["ach-2"] = &db.Achievement{
		ID:            "ach-2",
		Name:          "Dedicated Volunteer",
		CriteriaType:  db.CriteriaTasksCompleted,
		CriteriaValue: 10,
	}

	unlocked, err := CheckAndAwardAchievements(ctx, store, logger, nil, "vol-1")
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "First Mission Complete", unlocked[0].Name)

	notifs := store.notificationsOfType(db.NotifyAchievementUnlocked)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Achievement Unlocked!", notifs[0].Title)
	assert.Contains(t, notifs[0].Message, "First Mission Complete")
}

func TestCheckAndAwardAchievements_NoDuplicateGrants(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.users["vol-1"] = &db.User{ID: "vol-1", UserType: db.UserTypeVolunteer, TasksCompleted: 5}
	store.achievements["ach-1"] = &db.Achievement{
		ID:            "ach-1",
		Name:          "First Mission Complete",
		CriteriaType:  db.CriteriaTasksCompleted,
		CriteriaValue: 1,
	}

	first, err := CheckAndAwardAchievements(ctx, store, logger, nil, "vol-1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A second evaluation grants nothing new
	second, err := CheckAndAwardAchievements(ctx, store, logger, nil, "vol-1")
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, store.userAchievements, 1)
	assert.Len(t, store.notificationsOfType(db.NotifyAchievementUnlocked), 1)
}

func TestCheckAndAwardAchievements_ConcurrentEvaluationGrantsOnce(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.users["vol-1"] = &db.User{ID: "vol-1", UserType: db.UserTypeVolunteer, TasksCompleted: 5}
	store.achievements["ach-1"] = &db.Achievement{
		ID:            "ach-1",
		Name:          "First Mission Complete",
		CriteriaType:  db.CriteriaTasksCompleted,
		CriteriaValue: 1,
	}

	// A rival evaluation grants the achievement between the earned-list
	// read and the insert
	store.onInsertUserAchievement = func() {
		store.userAchievements = append(store.userAchievements, db.UserAchievement{
			ID:            "grant-rival",
			UserID:        "vol-1",
			AchievementID: "ach-1",
		})
		store.onInsertUserAchievement = nil
	}

	unlocked, err := CheckAndAwardAchievements(ctx, store, logger, nil, "vol-1")
	require.NoError(t, err)

	// The losing evaluation reports nothing and adds no second grant or
	// notification
	assert.Empty(t, unlocked)
	assert.Len(t, store.userAchievements, 1)
	assert.Empty(t, store.notificationsOfType(db.NotifyAchievementUnlocked))
}

func TestCheckAndAwardAchievements_HoursAndSkills(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.users["vol-1"] = &db.User{ID: "vol-1", UserType: db.UserTypeVolunteer, TotalHoursVolunteered: 12}
	store.achievements["ach-hours"] = &db.Achievement{
		ID:            "ach-hours",
		Name:          "Time Giver",
		CriteriaType:  db.CriteriaHoursVolunteered,
		CriteriaValue: 10,
	}
	store.achievements["ach-skill"] = &db.Achievement{
		ID:            "ach-skill",
		Name:          "Graphic Design Guru",
		CriteriaType:  db.CriteriaSkillTasks,
		CriteriaValue: 5,
		CriteriaSkill: "Graphic Design",
	}
	store.skillTaskCounts["vol-1/Graphic Design"] = 5

	unlocked, err := CheckAndAwardAchievements(ctx, store, logger, nil, "vol-1")
	require.NoError(t, err)
	require.Len(t, unlocked, 2)

	names := []string{unlocked[0].Name, unlocked[1].Name}
	assert.Contains(t, names, "Time Giver")
	assert.Contains(t, names, "Graphic Design Guru")
}

func TestCheckAndAwardAchievements_CustomNeverAutoGranted(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.users["vol-1"] = &db.User{ID: "vol-1", UserType: db.UserTypeVolunteer, TasksCompleted: 100}
	store.achievements["ach-custom"] = &db.Achievement{
		ID:           "ach-custom",
		Name:         "Founder's Medal",
		CriteriaType: db.CriteriaCustom,
	}

	unlocked, err := CheckAndAwardAchievements(ctx, store, logger, nil, "vol-1")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestCheckAndAwardAchievements_UserNotFound(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()

	_, err := CheckAndAwardAchievements(ctx, store, logger, nil, "missing")
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestAwardCustomMedal(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	grantID, err := AwardCustomMedal(ctx, store, logger, nil, "vol-1", "ngo-1", "Beach Hero", "For outstanding effort", "🏖️")
	require.NoError(t, err)
	require.NotEmpty(t, grantID)

	require.Len(t, store.userAchievements, 1)
	assert.Equal(t, "vol-1", store.userAchievements[0].UserID)

	template, err := store.GetAchievement(ctx, store.userAchievements[0].AchievementID)
	require.NoError(t, err)
	assert.Equal(t, db.AchievementMedal, template.Type)
	assert.Equal(t, db.TierGold, template.Tier)
	assert.Equal(t, db.CriteriaCustom, template.CriteriaType)

	notifs := store.notificationsOfType(db.NotifyAchievementUnlocked)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Special Award Received!", notifs[0].Title)
	assert.Contains(t, notifs[0].Message, "Ocean Cleanup")
	assert.Contains(t, notifs[0].Message, "Beach Hero")
}

func TestAwardCustomMedal_RequiresName(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	_, err := AwardCustomMedal(ctx, store, logger, nil, "vol-1", "ngo-1", "", "", "")
	require.ErrorIs(t, err, db.ErrValidation)
}

func TestSeedDefaultAchievements(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()

	count, err := SeedDefaultAchievements(ctx, store, logger)
	require.NoError(t, err)
	assert.Equal(t, 8, count)
	assert.Len(t, store.achievements, 8)

	// Seeding again is a no-op
	count, err = SeedDefaultAchievements(ctx, store, logger)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, store.achievements, 8)
}

func TestGetUserAchievements(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.achievements["ach-1"] = &db.Achievement{ID: "ach-1", Name: "Time Giver"}
	store.userAchievements = append(store.userAchievements, db.UserAchievement{
		ID: "grant-1", UserID: "vol-1", AchievementID: "ach-1",
	})

	earned, err := GetUserAchievements(ctx, store, "vol-1")
	require.NoError(t, err)
	require.Len(t, earned, 1)
	require.NotNil(t, earned[0].Achievement)
	assert.Equal(t, "Time Giver", earned[0].Achievement.Name)
}
