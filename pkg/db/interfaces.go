package db

import "context"

// UserStore defines user account operations
type UserStore interface {
	InsertUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUserProfile(ctx context.Context, id string, update UserProfileUpdate) error
	// AddUserStats increments the cached volunteer counters
	AddUserStats(ctx context.Context, id string, hours float64, tasks int) error
	ListVolunteers(ctx context.Context) ([]User, error)
}

// NGOStore defines organization operations
type NGOStore interface {
	InsertNGO(ctx context.Context, ngo *NGO) error
	GetNGO(ctx context.Context, id string) (*NGO, error)
	GetNGOByUserID(ctx context.Context, userID string) (*NGO, error)
	UpdateNGO(ctx context.Context, id string, update NGOUpdate) error
	// AddNGOStats increments the cached organization counters
	AddNGOStats(ctx context.Context, id string, hours float64, volunteers int) error
	SetNGOVerified(ctx context.Context, id string, verified bool) error
	ListVerifiedNGOs(ctx context.Context) ([]NGO, error)
}

// OpportunityStore defines opportunity operations
type OpportunityStore interface {
	InsertOpportunity(ctx context.Context, op *Opportunity) error
	GetOpportunity(ctx context.Context, id string) (*Opportunity, error)
	ListActiveOpportunities(ctx context.Context) ([]Opportunity, error)
	ListOpportunitiesByNGO(ctx context.Context, ngoID string) ([]Opportunity, error)
	UpdateOpportunity(ctx context.Context, id string, update OpportunityUpdate) error
	DeleteOpportunity(ctx context.Context, id string) error
	CountOpportunitiesByNGO(ctx context.Context, ngoID string) (int, error)
}

// SwipeStore defines swipe operations
type SwipeStore interface {
	InsertSwipe(ctx context.Context, swipe *Swipe) error
	ListSwipesByUser(ctx context.Context, userID string) ([]Swipe, error)
}

// MatchStore defines match operations
type MatchStore interface {
	InsertMatch(ctx context.Context, match *Match) error
	GetMatch(ctx context.Context, id string) (*Match, error)
	// GetMatchForUpdate locks the row for the remainder of the enclosing
	// transaction before a status transition
	GetMatchForUpdate(ctx context.Context, id string) (*Match, error)
	// FindMatch looks up the match for one (user, opportunity) pair
	FindMatch(ctx context.Context, userID, opportunityID string) (*Match, error)
	UpdateMatch(ctx context.Context, match *Match) error
	ListMatchesByNGO(ctx context.Context, ngoID string, statuses ...MatchStatus) ([]Match, error)
	ListMatchesByUser(ctx context.Context, userID string, statuses ...MatchStatus) ([]Match, error)
	CountMatchesByNGO(ctx context.Context, ngoID string, status MatchStatus) (int, error)
}

// TaskStore defines task operations
type TaskStore interface {
	InsertTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	// GetTaskForUpdate locks the row for the remainder of the enclosing
	// transaction before a status transition
	GetTaskForUpdate(ctx context.Context, id string) (*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	// ListAvailableTasks returns the open task board, optionally scoped to
	// one organization (empty ngoID means all)
	ListAvailableTasks(ctx context.Context, ngoID string) ([]Task, error)
	ListTasksByAssignee(ctx context.Context, userID string) ([]Task, error)
	ListTasksByNGO(ctx context.Context, ngoID string) ([]Task, error)
	CountCompletedTasksInCategory(ctx context.Context, userID, category string) (int, error)
	CountTasksByNGO(ctx context.Context, ngoID string, status TaskStatus) (int, error)
}

// AchievementStore defines achievement template and grant operations
type AchievementStore interface {
	InsertAchievement(ctx context.Context, achievement *Achievement) error
	GetAchievement(ctx context.Context, id string) (*Achievement, error)
	ListAchievements(ctx context.Context) ([]Achievement, error)
	InsertUserAchievement(ctx context.Context, grant *UserAchievement) error
	ListUserAchievements(ctx context.Context, userID string) ([]UserAchievement, error)
}

// MessageStore defines chat message operations
type MessageStore interface {
	InsertMessage(ctx context.Context, message *Message) error
	ListMessagesByMatch(ctx context.Context, matchID string) ([]Message, error)
	// MarkMatchMessagesRead marks messages in a match not sent by readerID
	MarkMatchMessagesRead(ctx context.Context, matchID, readerID string) error
	CountUnreadMessages(ctx context.Context, userID string) (int, error)
}

// NotificationStore defines notification feed operations
type NotificationStore interface {
	InsertNotification(ctx context.Context, notification *Notification) error
	ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

// Store defines the interface for all database operations. The postgres.DB
// implementation backs it with a pgx pool; InTx runs the callback against a
// transaction-scoped store so multi-step mutations execute atomically.
type Store interface {
	UserStore
	NGOStore
	OpportunityStore
	SwipeStore
	MatchStore
	TaskStore
	AchievementStore
	MessageStore
	NotificationStore

	InTx(ctx context.Context, fn func(Store) error) error
}
