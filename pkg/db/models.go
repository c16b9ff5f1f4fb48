package db

import "time"

// UserType distinguishes volunteer accounts from NGO account holders.
type UserType string

const (
	UserTypeVolunteer UserType = "volunteer"
	UserTypeNGO       UserType = "ngo"
	UserTypeAdmin     UserType = "admin"
)

// LocationType describes where an opportunity or volunteer operates
type LocationType string

const (
	LocationRemote   LocationType = "remote"
	LocationInPerson LocationType = "in-person"
	LocationHybrid   LocationType = "hybrid"
)

// User represents a user account record (volunteer or NGO account holder)
type User struct {
	ID                string
	Email             string
	Name              string
	UserType          UserType
	ProfilePicture    string
	Bio               string
	PersonalStatement string
	PortfolioLink     string

	TechnicalSkills []string
	SoftSkills      []string
	Interests       []string

	HoursPerWeek      *int
	AvailableDays     []string
	PreferredLocation LocationType

	// Cached gamification counters, maintained on task approval
	TotalHoursVolunteered float64
	TasksCompleted        int

	CreatedAt time.Time
}

// UserProfileUpdate carries the optional fields of a volunteer profile edit.
// Nil fields are left untouched.
type UserProfileUpdate struct {
	Bio               *string
	PersonalStatement *string
	PortfolioLink     *string
	ProfilePicture    *string
	TechnicalSkills   []string
	SoftSkills        []string
	Interests         []string
	HoursPerWeek      *int
	AvailableDays     []string
	PreferredLocation *LocationType
}

// SocialMedia holds an organization's social links, stored as one JSON
// document
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// NGO represents an organization record
type NGO struct {
	ID               string
	UserID           string
	OrganizationName string
	Logo             string
	CoverImage       string
	Mission          string
	Vision           string
	Description      string
	Website          string
	SocialMedia      *SocialMedia

	IsVerified bool

	// Cached counters
	TotalVolunteers    int
	TotalHoursReceived float64

	CreatedAt time.Time
}

// NGOUpdate carries the optional fields of an NGO profile edit
type NGOUpdate struct {
	OrganizationName *string
	Mission          *string
	Vision           *string
	Description      *string
	Logo             *string
	CoverImage       *string
	Website          *string
	SocialMedia      *SocialMedia
}

// Opportunity represents a volunteer opportunity record
type Opportunity struct {
	ID             string
	NGOID          string
	Title          string
	Description    string
	CoverImage     string
	RequiredSkills []string
	TimeCommitment string
	Duration       string
	Location       string
	LocationType   LocationType
	Cause          []string
	// Schedule is an optional RRULE string describing recurring sessions
	Schedule       string
	IsActive       bool
	SpotsAvailable *int
	CreatedAt      time.Time
}

// OpportunityUpdate carries the optional fields of an opportunity edit
type OpportunityUpdate struct {
	Title          *string
	Description    *string
	RequiredSkills []string
	TimeCommitment *string
	Schedule       *string
	IsActive       *bool
}

// SwipeType is a volunteer's directional decision on one opportunity card
type SwipeType string

const (
	SwipeLeft  SwipeType = "left"  // skip
	SwipeRight SwipeType = "right" // apply
	SwipeSuper SwipeType = "super" // save for later
)

// Swipe represents an immutable swipe record
type Swipe struct {
	ID            string
	UserID        string
	OpportunityID string
	NGOID         string
	SwipeType     SwipeType
	CreatedAt     time.Time
}

// MatchStatus is the application/engagement state machine
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchAccepted  MatchStatus = "accepted"
	MatchRejected  MatchStatus = "rejected"
	MatchActive    MatchStatus = "active"
	MatchCompleted MatchStatus = "completed"
)

// Match represents the engagement between one volunteer and one opportunity.
// NGOID is denormalized from the opportunity at creation time.
type Match struct {
	ID            string
	UserID        string
	OpportunityID string
	NGOID         string
	Status        MatchStatus
	CreatedAt     time.Time
	AcceptedAt    *time.Time
}

// TaskStatus is the task lifecycle state machine
type TaskStatus string

const (
	TaskAvailable         TaskStatus = "available"
	TaskClaimed           TaskStatus = "claimed"
	TaskInProgress        TaskStatus = "in_progress"
	TaskSubmitted         TaskStatus = "submitted"
	TaskCompleted         TaskStatus = "completed"
	TaskRevisionRequested TaskStatus = "revision_requested"
)

// Task represents a discrete unit of work offered by an NGO
type Task struct {
	ID          string
	NGOID       string
	MatchID     string
	AssignedTo  string
	Title       string
	Description string
	Category    string

	Deadline       *time.Time
	EstimatedHours *float64

	Status TaskStatus

	SubmissionText string
	SubmittedAt    *time.Time

	Feedback    string
	CompletedAt *time.Time

	CreatedAt time.Time
}

// AchievementType distinguishes medals from skill badges
type AchievementType string

const (
	AchievementMedal AchievementType = "medal"
	AchievementBadge AchievementType = "badge"
)

// Tier is a medal tier
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Achievement represents an unlockable medal or badge template
type Achievement struct {
	ID          string
	Name        string
	Description string
	Type        AchievementType
	Tier        Tier
	Icon        string
	Category    string

	CriteriaType  string
	CriteriaValue float64
	CriteriaSkill string
}

// UserAchievement represents one earned achievement grant
type UserAchievement struct {
	ID            string
	UserID        string
	AchievementID string
	EarnedAt      time.Time
}

// Message represents one chat message within a match
type Message struct {
	ID         string
	MatchID    string
	SenderID   string
	SenderType UserType
	Content    string
	IsRead     bool
	CreatedAt  time.Time
}

// Notification represents one entry in a user's notification feed
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	IsRead    bool
	RelatedID string
	CreatedAt time.Time
}

// Notification types written by the services
const (
	NotifyNewApplicant        = "new_applicant"
	NotifyMatchAccepted       = "match_accepted"
	NotifyTaskAssigned        = "task_assigned"
	NotifyTaskSubmitted       = "task_submitted"
	NotifyTaskCompleted       = "task_completed"
	NotifyAchievementUnlocked = "achievement_unlocked"
	NotifyNewMessage          = "new_message"
)
