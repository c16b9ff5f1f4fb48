package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

func strPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()

	id, err := CreateUser(ctx, store, logger, "vera@example.com", "Vera", db.UserTypeVolunteer)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	user, err := store.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "vera@example.com", user.Email)
	assert.Equal(t, db.UserTypeVolunteer, user.UserType)
	assert.NotNil(t, user.TechnicalSkills)
}

func TestCreateUser_IdempotentOnEmail(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()

	first, err := CreateUser(ctx, store, logger, "vera@example.com", "Vera", db.UserTypeVolunteer)
	require.NoError(t, err)

	second, err := CreateUser(ctx, store, logger, "vera@example.com", "Vera Again", db.UserTypeVolunteer)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, store.users, 1)
}

func TestCreateUser_ConcurrentSignupReturnsExistingID(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()

	// A rival signup with the same email lands between the lookup and the
	// insert
	store.onInsertUser = func() {
		store.users["user-rival"] = &db.User{
			ID:       "user-rival",
			Email:    "vera@example.com",
			Name:     "Vera",
			UserType: db.UserTypeVolunteer,
		}
		store.onInsertUser = nil
	}

	id, err := CreateUser(ctx, store, logger, "vera@example.com", "Vera", db.UserTypeVolunteer)
	require.NoError(t, err)
	assert.Equal(t, "user-rival", id)
	assert.Len(t, store.users, 1)
}

func TestCreateUser_Validation(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()

	_, err := CreateUser(ctx, store, logger, "", "Vera", db.UserTypeVolunteer)
	require.ErrorIs(t, err, db.ErrValidation)

	_, err = CreateUser(ctx, store, logger, "vera@example.com", "Vera", db.UserTypeAdmin)
	require.ErrorIs(t, err, db.ErrValidation)
}

func TestUpdateVolunteerProfile(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.users["vol-1"] = &db.User{ID: "vol-1", Name: "Vera", Bio: "old bio"}

	err := UpdateVolunteerProfile(ctx, store, logger, "vol-1", db.UserProfileUpdate{
		Bio:             strPtr("new bio"),
		TechnicalSkills: []string{"Graphic Design"},
	})
	require.NoError(t, err)

	user, err := store.GetUser(ctx, "vol-1")
	require.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, []string{"Graphic Design"}, user.TechnicalSkills)
	// Untouched fields survive a partial update
	assert.Equal(t, "Vera", user.Name)
}

func TestUpdateVolunteerProfile_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()

	err := UpdateVolunteerProfile(ctx, store, logger, "missing", db.UserProfileUpdate{Bio: strPtr("x")})
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestGetLeaderboard(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.users["a"] = &db.User{ID: "a", Name: "Alice", UserType: db.UserTypeVolunteer, TasksCompleted: 3, TotalHoursVolunteered: 6}
	store.users["b"] = &db.User{ID: "b", Name: "Bob", UserType: db.UserTypeVolunteer, TasksCompleted: 10, TotalHoursVolunteered: 20}
	store.users["c"] = &db.User{ID: "c", Name: "Cara", UserType: db.UserTypeVolunteer, TasksCompleted: 7}
	store.users["d"] = &db.User{ID: "d", Name: "Org", UserType: db.UserTypeNGO, TasksCompleted: 99}

	entries, err := GetLeaderboard(ctx, store, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Bob", entries[0].Name)
	assert.Equal(t, 10, entries[0].TasksCompleted)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Cara", entries[1].Name)
}

func TestGetLeaderboard_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.users["a"] = &db.User{ID: "a", Name: "Alice", UserType: db.UserTypeVolunteer}

	entries, err := GetLeaderboard(ctx, store, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
