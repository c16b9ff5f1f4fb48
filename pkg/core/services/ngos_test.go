package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

func TestCreateNGO(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.users["u-1"] = &db.User{ID: "u-1", UserType: db.UserTypeNGO}

	id, err := CreateNGO(ctx, store, logger, CreateNGOParams{
		UserID:           "u-1",
		OrganizationName: "Food Bank",
		Mission:          "Feed everyone",
		Description:      "A community food bank",
	})
	require.NoError(t, err)

	ngo, err := store.GetNGO(ctx, id)
	require.NoError(t, err)
	assert.False(t, ngo.IsVerified)
	assert.Zero(t, ngo.TotalVolunteers)
	assert.Zero(t, ngo.TotalHoursReceived)
}

func TestCreateNGO_UserMustExist(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()

	_, err := CreateNGO(ctx, store, logger, CreateNGOParams{
		UserID:           "missing",
		OrganizationName: "Food Bank",
		Mission:          "Feed everyone",
		Description:      "A community food bank",
	})
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestCreateNGO_Validation(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.users["u-1"] = &db.User{ID: "u-1"}

	_, err := CreateNGO(ctx, store, logger, CreateNGOParams{UserID: "u-1", OrganizationName: "Food Bank"})
	require.ErrorIs(t, err, db.ErrValidation)
}

func TestVerifyNGO(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.ngos["ngo-1"] = &db.NGO{ID: "ngo-1", OrganizationName: "Food Bank"}

	require.NoError(t, VerifyNGO(ctx, store, logger, "ngo-1", true))

	ngo, err := store.GetNGO(ctx, "ngo-1")
	require.NoError(t, err)
	assert.True(t, ngo.IsVerified)
}

func TestGetNGOStats(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	seedOpportunity(store)
	store.ngos["ngo-1"].TotalHoursReceived = 12.5

	store.matches["m-1"] = &db.Match{ID: "m-1", NGOID: "ngo-1", Status: db.MatchActive}
	store.matches["m-2"] = &db.Match{ID: "m-2", NGOID: "ngo-1", Status: db.MatchPending}
	store.tasks["t-1"] = &db.Task{ID: "t-1", NGOID: "ngo-1", Status: db.TaskCompleted}
	store.tasks["t-2"] = &db.Task{ID: "t-2", NGOID: "ngo-1", Status: db.TaskAvailable}

	stats, err := GetNGOStats(ctx, store, "ngo-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ActiveVolunteers)
	assert.Equal(t, 1, stats.TotalOpportunities)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 12.5, stats.TotalHours)
}

func TestUpdateNGOStats(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	store.ngos["ngo-1"] = &db.NGO{ID: "ngo-1"}

	require.NoError(t, UpdateNGOStats(ctx, store, logger, "ngo-1", 3, 1))

	ngo, err := store.GetNGO(ctx, "ngo-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, ngo.TotalHoursReceived)
	assert.Equal(t, 1, ngo.TotalVolunteers)

	require.ErrorIs(t, UpdateNGOStats(ctx, store, logger, "missing", 1, 0), db.ErrNotFound)
}
