package services

import (
	"context"
	"sort"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// mockStore is a hand-written in-memory db.Store for service tests. InTx
// runs the callback against the store itself, so transactional code paths
// execute directly.
type mockStore struct {
	users            map[string]*db.User
	ngos             map[string]*db.NGO
	opportunities    map[string]*db.Opportunity
	swipes           []db.Swipe
	matches          map[string]*db.Match
	tasks            map[string]*db.Task
	achievements     map[string]*db.Achievement
	userAchievements []db.UserAchievement
	messages         []db.Message
	notifications    []db.Notification

	// skillTaskCounts overrides CountCompletedTasksInCategory per
	// "userID/category" key
	skillTaskCounts map[string]int

	// hooks run just before the corresponding insert, letting a test
	// interleave a concurrent writer into the gap after the lookup
	onInsertUser            func()
	onInsertMatch           func()
	onInsertUserAchievement func()
}

func newMockStore() *mockStore {
	return &mockStore{
		users:           make(map[string]*db.User),
		ngos:            make(map[string]*db.NGO),
		opportunities:   make(map[string]*db.Opportunity),
		matches:         make(map[string]*db.Match),
		tasks:           make(map[string]*db.Task),
		achievements:    make(map[string]*db.Achievement),
		skillTaskCounts: make(map[string]int),
	}
}

func (m *mockStore) InTx(ctx context.Context, fn func(db.Store) error) error {
	return fn(m)
}

// UserStore

func (m *mockStore) InsertUser(ctx context.Context, user *db.User) error {
	if m.onInsertUser != nil {
		m.onInsertUser()
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return db.ErrDuplicate
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockStore) GetUser(ctx context.Context, id string) (*db.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) UpdateUserProfile(ctx context.Context, id string, update db.UserProfileUpdate) error {
	user, ok := m.users[id]
	if !ok {
		return db.ErrNotFound
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.PersonalStatement != nil {
		user.PersonalStatement = *update.PersonalStatement
	}
	if update.PortfolioLink != nil {
		user.PortfolioLink = *update.PortfolioLink
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.TechnicalSkills != nil {
		user.TechnicalSkills = update.TechnicalSkills
	}
	if update.SoftSkills != nil {
		user.SoftSkills = update.SoftSkills
	}
	if update.Interests != nil {
		user.Interests = update.Interests
	}
	if update.HoursPerWeek != nil {
		user.HoursPerWeek = update.HoursPerWeek
	}
	if update.AvailableDays != nil {
		user.AvailableDays = update.AvailableDays
	}
	if update.PreferredLocation != nil {
		user.PreferredLocation = *update.PreferredLocation
	}
	return nil
}

func (m *mockStore) AddUserStats(ctx context.Context, id string, hours float64, tasks int) error {
	user, ok := m.users[id]
	if !ok {
		return db.ErrNotFound
	}
	user.TotalHoursVolunteered += hours
	user.TasksCompleted += tasks
	return nil
}

func (m *mockStore) ListVolunteers(ctx context.Context) ([]db.User, error) {
	var volunteers []db.User
	for _, user := range m.users {
		if user.UserType == db.UserTypeVolunteer {
			volunteers = append(volunteers, *user)
		}
	}
	sort.Slice(volunteers, func(i, j int) bool { return volunteers[i].ID < volunteers[j].ID })
	return volunteers, nil
}

// NGOStore

func (m *mockStore) InsertNGO(ctx context.Context, ngo *db.NGO) error {
	copied := *ngo
	m.ngos[ngo.ID] = &copied
	return nil
}

func (m *mockStore) GetNGO(ctx context.Context, id string) (*db.NGO, error) {
	ngo, ok := m.ngos[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *ngo
	return &copied, nil
}

func (m *mockStore) GetNGOByUserID(ctx context.Context, userID string) (*db.NGO, error) {
	for _, ngo := range m.ngos {
		if ngo.UserID == userID {
			copied := *ngo
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) UpdateNGO(ctx context.Context, id string, update db.NGOUpdate) error {
	ngo, ok := m.ngos[id]
	if !ok {
		return db.ErrNotFound
	}
	if update.OrganizationName != nil {
		ngo.OrganizationName = *update.OrganizationName
	}
	if update.Mission != nil {
		ngo.Mission = *update.Mission
	}
	if update.Vision != nil {
		ngo.Vision = *update.Vision
	}
	if update.Description != nil {
		ngo.Description = *update.Description
	}
	if update.Logo != nil {
		ngo.Logo = *update.Logo
	}
	if update.CoverImage != nil {
		ngo.CoverImage = *update.CoverImage
	}
	if update.Website != nil {
		ngo.Website = *update.Website
	}
	if update.SocialMedia != nil {
		ngo.SocialMedia = update.SocialMedia
	}
	return nil
}

func (m *mockStore) AddNGOStats(ctx context.Context, id string, hours float64, volunteers int) error {
	ngo, ok := m.ngos[id]
	if !ok {
		return db.ErrNotFound
	}
	ngo.TotalHoursReceived += hours
	ngo.TotalVolunteers += volunteers
	return nil
}

func (m *mockStore) SetNGOVerified(ctx context.Context, id string, verified bool) error {
	ngo, ok := m.ngos[id]
	if !ok {
		return db.ErrNotFound
	}
	ngo.IsVerified = verified
	return nil
}

func (m *mockStore) ListVerifiedNGOs(ctx context.Context) ([]db.NGO, error) {
	var verified []db.NGO
	for _, ngo := range m.ngos {
		if ngo.IsVerified {
			verified = append(verified, *ngo)
		}
	}
	return verified, nil
}

// OpportunityStore

func (m *mockStore) InsertOpportunity(ctx context.Context, op *db.Opportunity) error {
	copied := *op
	m.opportunities[op.ID] = &copied
	return nil
}

func (m *mockStore) GetOpportunity(ctx context.Context, id string) (*db.Opportunity, error) {
	op, ok := m.opportunities[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *op
	return &copied, nil
}

func (m *mockStore) ListActiveOpportunities(ctx context.Context) ([]db.Opportunity, error) {
	var active []db.Opportunity
	for _, op := range m.opportunities {
		if op.IsActive {
			active = append(active, *op)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

func (m *mockStore) ListOpportunitiesByNGO(ctx context.Context, ngoID string) ([]db.Opportunity, error) {
	var results []db.Opportunity
	for _, op := range m.opportunities {
		if op.NGOID == ngoID {
			results = append(results, *op)
		}
	}
	return results, nil
}

func (m *mockStore) UpdateOpportunity(ctx context.Context, id string, update db.OpportunityUpdate) error {
	op, ok := m.opportunities[id]
	if !ok {
		return db.ErrNotFound
	}
	if update.Title != nil {
		op.Title = *update.Title
	}
	if update.Description != nil {
		op.Description = *update.Description
	}
	if update.RequiredSkills != nil {
		op.RequiredSkills = update.RequiredSkills
	}
	if update.TimeCommitment != nil {
		op.TimeCommitment = *update.TimeCommitment
	}
	if update.Schedule != nil {
		op.Schedule = *update.Schedule
	}
	if update.IsActive != nil {
		op.IsActive = *update.IsActive
	}
	return nil
}

func (m *mockStore) DeleteOpportunity(ctx context.Context, id string) error {
	if _, ok := m.opportunities[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.opportunities, id)
	return nil
}

func (m *mockStore) CountOpportunitiesByNGO(ctx context.Context, ngoID string) (int, error) {
	count := 0
	for _, op := range m.opportunities {
		if op.NGOID == ngoID {
			count++
		}
	}
	return count, nil
}

// SwipeStore

func (m *mockStore) InsertSwipe(ctx context.Context, swipe *db.Swipe) error {
	m.swipes = append(m.swipes, *swipe)
	return nil
}

func (m *mockStore) ListSwipesByUser(ctx context.Context, userID string) ([]db.Swipe, error) {
	var results []db.Swipe
	for _, s := range m.swipes {
		if s.UserID == userID {
			results = append(results, s)
		}
	}
	return results, nil
}

// MatchStore

func (m *mockStore) InsertMatch(ctx context.Context, match *db.Match) error {
	if m.onInsertMatch != nil {
		m.onInsertMatch()
	}
	for _, existing := range m.matches {
		if existing.UserID == match.UserID && existing.OpportunityID == match.OpportunityID {
			return db.ErrDuplicate
		}
	}
	copied := *match
	m.matches[match.ID] = &copied
	return nil
}

func (m *mockStore) GetMatch(ctx context.Context, id string) (*db.Match, error) {
	match, ok := m.matches[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *match
	return &copied, nil
}

func (m *mockStore) GetMatchForUpdate(ctx context.Context, id string) (*db.Match, error) {
	return m.GetMatch(ctx, id)
}

func (m *mockStore) FindMatch(ctx context.Context, userID, opportunityID string) (*db.Match, error) {
	for _, match := range m.matches {
		if match.UserID == userID && match.OpportunityID == opportunityID {
			copied := *match
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) UpdateMatch(ctx context.Context, match *db.Match) error {
	if _, ok := m.matches[match.ID]; !ok {
		return db.ErrNotFound
	}
	copied := *match
	m.matches[match.ID] = &copied
	return nil
}

func (m *mockStore) ListMatchesByNGO(ctx context.Context, ngoID string, statuses ...db.MatchStatus) ([]db.Match, error) {
	var results []db.Match
	for _, match := range m.matches {
		if match.NGOID == ngoID && matchesStatus(match.Status, statuses) {
			results = append(results, *match)
		}
	}
	return results, nil
}

func (m *mockStore) ListMatchesByUser(ctx context.Context, userID string, statuses ...db.MatchStatus) ([]db.Match, error) {
	var results []db.Match
	for _, match := range m.matches {
		if match.UserID == userID && matchesStatus(match.Status, statuses) {
			results = append(results, *match)
		}
	}
	return results, nil
}

func (m *mockStore) CountMatchesByNGO(ctx context.Context, ngoID string, status db.MatchStatus) (int, error) {
	count := 0
	for _, match := range m.matches {
		if match.NGOID == ngoID && match.Status == status {
			count++
		}
	}
	return count, nil
}

func matchesStatus(status db.MatchStatus, statuses []db.MatchStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

// TaskStore

func (m *mockStore) InsertTask(ctx context.Context, task *db.Task) error {
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockStore) GetTask(ctx context.Context, id string) (*db.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockStore) GetTaskForUpdate(ctx context.Context, id string) (*db.Task, error) {
	return m.GetTask(ctx, id)
}

func (m *mockStore) UpdateTask(ctx context.Context, task *db.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return db.ErrNotFound
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockStore) ListAvailableTasks(ctx context.Context, ngoID string) ([]db.Task, error) {
	var results []db.Task
	for _, task := range m.tasks {
		if task.Status != db.TaskAvailable {
			continue
		}
		if ngoID != "" && task.NGOID != ngoID {
			continue
		}
		results = append(results, *task)
	}
	return results, nil
}

func (m *mockStore) ListTasksByAssignee(ctx context.Context, userID string) ([]db.Task, error) {
	var results []db.Task
	for _, task := range m.tasks {
		if task.AssignedTo == userID {
			results = append(results, *task)
		}
	}
	return results, nil
}

func (m *mockStore) ListTasksByNGO(ctx context.Context, ngoID string) ([]db.Task, error) {
	var results []db.Task
	for _, task := range m.tasks {
		if task.NGOID == ngoID {
			results = append(results, *task)
		}
	}
	return results, nil
}

func (m *mockStore) CountCompletedTasksInCategory(ctx context.Context, userID, category string) (int, error) {
	if count, ok := m.skillTaskCounts[userID+"/"+category]; ok {
		return count, nil
	}
	count := 0
	for _, task := range m.tasks {
		if task.AssignedTo == userID && task.Category == category && task.Status == db.TaskCompleted {
			count++
		}
	}
	return count, nil
}

func (m *mockStore) CountTasksByNGO(ctx context.Context, ngoID string, status db.TaskStatus) (int, error) {
	count := 0
	for _, task := range m.tasks {
		if task.NGOID == ngoID && task.Status == status {
			count++
		}
	}
	return count, nil
}

// AchievementStore

func (m *mockStore) InsertAchievement(ctx context.Context, achievement *db.Achievement) error {
	copied := *achievement
	m.achievements[achievement.ID] = &copied
	return nil
}

func (m *mockStore) GetAchievement(ctx context.Context, id string) (*db.Achievement, error) {
	achievement, ok := m.achievements[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *achievement
	return &copied, nil
}

func (m *mockStore) ListAchievements(ctx context.Context) ([]db.Achievement, error) {
	var results []db.Achievement
	for _, a := range m.achievements {
		results = append(results, *a)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *mockStore) InsertUserAchievement(ctx context.Context, grant *db.UserAchievement) error {
	if m.onInsertUserAchievement != nil {
		m.onInsertUserAchievement()
	}
	for _, ua := range m.userAchievements {
		if ua.UserID == grant.UserID && ua.AchievementID == grant.AchievementID {
			return db.ErrDuplicate
		}
	}
	m.userAchievements = append(m.userAchievements, *grant)
	return nil
}

func (m *mockStore) ListUserAchievements(ctx context.Context, userID string) ([]db.UserAchievement, error) {
	var results []db.UserAchievement
	for _, ua := range m.userAchievements {
		if ua.UserID == userID {
			results = append(results, ua)
		}
	}
	return results, nil
}

// MessageStore

func (m *mockStore) InsertMessage(ctx context.Context, message *db.Message) error {
	m.messages = append(m.messages, *message)
	return nil
}

func (m *mockStore) ListMessagesByMatch(ctx context.Context, matchID string) ([]db.Message, error) {
	var results []db.Message
	for _, msg := range m.messages {
		if msg.MatchID == matchID {
			results = append(results, msg)
		}
	}
	return results, nil
}

func (m *mockStore) MarkMatchMessagesRead(ctx context.Context, matchID, readerID string) error {
	for i := range m.messages {
		if m.messages[i].MatchID == matchID && m.messages[i].SenderID != readerID {
			m.messages[i].IsRead = true
		}
	}
	return nil
}

func (m *mockStore) CountUnreadMessages(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, msg := range m.messages {
		if msg.IsRead || msg.SenderID == userID {
			continue
		}
		match, ok := m.matches[msg.MatchID]
		if !ok {
			continue
		}
		if match.UserID == userID {
			count++
			continue
		}
		if ngo, ok := m.ngos[match.NGOID]; ok && ngo.UserID == userID {
			count++
		}
	}
	return count, nil
}

// NotificationStore

func (m *mockStore) InsertNotification(ctx context.Context, notification *db.Notification) error {
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *mockStore) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]db.Notification, error) {
	var results []db.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			results = append(results, n)
		}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *mockStore) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockStore) MarkNotificationRead(ctx context.Context, id string) error {
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

// notificationsOfType filters recorded notifications for assertions
func (m *mockStore) notificationsOfType(notifType string) []db.Notification {
	var results []db.Notification
	for _, n := range m.notifications {
		if n.Type == notifType {
			results = append(results, n)
		}
	}
	return results
}
