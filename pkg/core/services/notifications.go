package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// Mailer sends a best-effort email copy of a notification. The gmail client
// implements it; a nil Mailer disables email delivery.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// DefaultNotificationLimit caps getNotifications when no limit is given
const DefaultNotificationLimit = 50

// NotifyUser appends a notification to the user's feed and, when a mailer is
// configured, emails a copy. Failures are logged and swallowed: notification
// delivery must never fail or roll back the mutation that triggered it, so
// callers invoke this after their primary transaction has committed.
func NotifyUser(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, n *db.Notification) {
	n.ID = uuid.New().String()
	n.IsRead = false
	n.CreatedAt = time.Now()

	if err := store.InsertNotification(ctx, n); err != nil {
		logger.Warn("Failed to create notification",
			zap.String("user_id", n.UserID),
			zap.String("type", n.Type),
			zap.Error(err))
		return
	}

	logger.Debug("Notification created",
		zap.String("notification_id", n.ID),
		zap.String("user_id", n.UserID),
		zap.String("type", n.Type))

	if mailer == nil {
		return
	}

	user, err := store.GetUser(ctx, n.UserID)
	if err != nil || user.Email == "" {
		return
	}

	if err := mailer.SendEmail(user.Email, n.Title, n.Message); err != nil {
		logger.Warn("Failed to send notification email",
			zap.String("user_id", n.UserID),
			zap.Error(err))
	}
}

// GetNotifications returns the user's notifications newest-first. A
// non-positive limit falls back to DefaultNotificationLimit.
func GetNotifications(ctx context.Context, store db.NotificationStore, userID string, limit int) ([]db.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}

	notifications, err := store.ListNotificationsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// GetUnreadNotificationCount returns the number of unread notifications
func GetUnreadNotificationCount(ctx context.Context, store db.NotificationStore, userID string) (int, error) {
	count, err := store.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks a single notification as read
func MarkNotificationRead(ctx context.Context, store db.NotificationStore, id string) error {
	if err := store.MarkNotificationRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification for the user
func MarkAllNotificationsRead(ctx context.Context, store db.NotificationStore, userID string) error {
	if err := store.MarkAllNotificationsRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
