package postgres

import (
	"context"
	"fmt"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// InsertNotification inserts a new notification feed entry
func (d *DB) InsertNotification(ctx context.Context, notification *db.Notification) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, is_read, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, notification.ID, notification.UserID, notification.Type, notification.Title,
		notification.Message, notification.IsRead, notification.RelatedID, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotificationsByUser retrieves a user's notifications newest first
func (d *DB) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]db.Notification, error) {
	rows, err := d.q.Query(ctx, `
		SELECT id, user_id, type, title, message, is_read, related_id, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []db.Notification
	for rows.Next() {
		var n db.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.IsRead, &n.RelatedID, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

// CountUnreadNotifications counts a user's unread notifications
func (d *DB) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks one notification as read
func (d *DB) MarkNotificationRead(ctx context.Context, id string) error {
	tag, err := d.q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification for a user as read
func (d *DB) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := d.q.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
