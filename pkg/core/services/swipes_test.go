package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

func seedOpportunity(store *mockStore) {
	store.users["vol-1"] = &db.User{ID: "vol-1", Email: "vol@example.com", Name: "Vera", UserType: db.UserTypeVolunteer}
	store.users["ngo-user-1"] = &db.User{ID: "ngo-user-1", Email: "org@example.com", Name: "Oscar", UserType: db.UserTypeNGO}
	store.ngos["ngo-1"] = &db.NGO{ID: "ngo-1", UserID: "ngo-user-1", OrganizationName: "Ocean Cleanup", IsVerified: true}
	store.opportunities["opp-1"] = &db.Opportunity{ID: "opp-1", NGOID: "ngo-1", Title: "Beach Cleanup", IsActive: true}
}

func TestSwipeOpportunity_RightCreatesMatch(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	result, err := SwipeOpportunity(ctx, store, logger, nil, "vol-1", "opp-1", db.SwipeRight)
	require.NoError(t, err)
	require.NotEmpty(t, result.SwipeID)
	require.NotEmpty(t, result.MatchID)

	match, err := store.GetMatch(ctx, result.MatchID)
	require.NoError(t, err)
	assert.Equal(t, "vol-1", match.UserID)
	assert.Equal(t, "opp-1", match.OpportunityID)
	assert.Equal(t, "ngo-1", match.NGOID)
	assert.Equal(t, db.MatchPending, match.Status)

	// The organization's account holder is notified
	notifs := store.notificationsOfType(db.NotifyNewApplicant)
	require.Len(t, notifs, 1)
	assert.Equal(t, "ngo-user-1", notifs[0].UserID)
	assert.Equal(t, "New Volunteer Interest!", notifs[0].Title)
	assert.Contains(t, notifs[0].Message, "Beach Cleanup")
	assert.Equal(t, result.MatchID, notifs[0].RelatedID)
}

func TestSwipeOpportunity_DuplicateRightReturnsExistingMatch(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	first, err := SwipeOpportunity(ctx, store, logger, nil, "vol-1", "opp-1", db.SwipeRight)
	require.NoError(t, err)

	second, err := SwipeOpportunity(ctx, store, logger, nil, "vol-1", "opp-1", db.SwipeRight)
	require.NoError(t, err)

	assert.Equal(t, first.MatchID, second.MatchID)
	assert.NotEqual(t, first.SwipeID, second.SwipeID)

	// Both swipes are recorded but only one match and one notification exist
	assert.Len(t, store.swipes, 2)
	assert.Len(t, store.matches, 1)
	assert.Len(t, store.notificationsOfType(db.NotifyNewApplicant), 1)
}

func TestSwipeOpportunity_ConcurrentRightSwipesKeepOneMatch(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	// A rival swipe lands between the match lookup and the insert
	store.onInsertMatch = func() {
		store.matches["match-rival"] = &db.Match{
			ID:            "match-rival",
			UserID:        "vol-1",
			OpportunityID: "opp-1",
			NGOID:         "ngo-1",
			Status:        db.MatchPending,
		}
		store.onInsertMatch = nil
	}

	result, err := SwipeOpportunity(ctx, store, logger, nil, "vol-1", "opp-1", db.SwipeRight)
	require.NoError(t, err)

	// The loser defers to the winning match and stays silent
	assert.Equal(t, "match-rival", result.MatchID)
	assert.Len(t, store.matches, 1)
	assert.Empty(t, store.notificationsOfType(db.NotifyNewApplicant))
}

func TestSwipeOpportunity_LeftCreatesNoMatch(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	result, err := SwipeOpportunity(ctx, store, logger, nil, "vol-1", "opp-1", db.SwipeLeft)
	require.NoError(t, err)
	assert.NotEmpty(t, result.SwipeID)
	assert.Empty(t, result.MatchID)
	assert.Empty(t, store.matches)
	assert.Empty(t, store.notifications)
}

func TestSwipeOpportunity_SuperIsABookmark(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	result, err := SwipeOpportunity(ctx, store, logger, nil, "vol-1", "opp-1", db.SwipeSuper)
	require.NoError(t, err)
	assert.Empty(t, result.MatchID)
	assert.Empty(t, store.matches)

	require.Len(t, store.swipes, 1)
	assert.Equal(t, db.SwipeSuper, store.swipes[0].SwipeType)
}

func TestSwipeOpportunity_MissingOpportunity(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	_, err := SwipeOpportunity(ctx, store, logger, nil, "vol-1", "opp-missing", db.SwipeRight)
	require.ErrorIs(t, err, db.ErrNotFound)

	// No swipe is recorded for a nonexistent opportunity
	assert.Empty(t, store.swipes)
}

func TestSwipeOpportunity_InvalidType(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := newMockStore()
	seedOpportunity(store)

	_, err := SwipeOpportunity(ctx, store, logger, nil, "vol-1", "opp-1", db.SwipeType("up"))
	require.ErrorIs(t, err, db.ErrValidation)
	assert.Empty(t, store.swipes)
}
