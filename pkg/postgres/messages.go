package postgres

import (
	"context"
	"fmt"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// InsertMessage inserts a new chat message
func (d *DB) InsertMessage(ctx context.Context, message *db.Message) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO messages (id, match_id, sender_id, sender_type, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, message.ID, message.MatchID, message.SenderID, message.SenderType,
		message.Content, message.IsRead, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListMessagesByMatch retrieves a match's messages oldest first
func (d *DB) ListMessagesByMatch(ctx context.Context, matchID string) ([]db.Message, error) {
	rows, err := d.q.Query(ctx, `
		SELECT id, match_id, sender_id, sender_type, content, is_read, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at ASC
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []db.Message
	for rows.Next() {
		var m db.Message
		err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.SenderType,
			&m.Content, &m.IsRead, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}

// MarkMatchMessagesRead marks every message in a match not sent by the
// reader as read
func (d *DB) MarkMatchMessagesRead(ctx context.Context, matchID, readerID string) error {
	_, err := d.q.Exec(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE match_id = $1 AND sender_id <> $2 AND NOT is_read
	`, matchID, readerID)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// CountUnreadMessages counts unread messages addressed to a user across all
// of their matches, on either side of the conversation
func (d *DB) CountUnreadMessages(ctx context.Context, userID string) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages m
		JOIN matches mt ON mt.id = m.match_id
		LEFT JOIN ngos n ON n.id = mt.ngo_id
		WHERE NOT m.is_read
		  AND m.sender_id <> $1
		  AND (mt.user_id = $1 OR n.user_id = $1)
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
