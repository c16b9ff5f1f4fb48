package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/pkg/db"
)

// messagePreviewLen caps the notification preview of a chat message
const messagePreviewLen = 50

// SendMessage appends a chat message to a match and notifies the
// counterparty: the organization's account holder when a volunteer writes,
// the volunteer otherwise
func SendMessage(ctx context.Context, store db.Store, logger *zap.Logger, mailer Mailer, matchID, senderID string, senderType db.UserType, content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("message content is required: %w", db.ErrValidation)
	}
	if senderType != db.UserTypeVolunteer && senderType != db.UserTypeNGO {
		return "", fmt.Errorf("unknown sender type %q: %w", senderType, db.ErrValidation)
	}

	match, err := store.GetMatch(ctx, matchID)
	if err != nil {
		return "", fmt.Errorf("match %s: %w", matchID, err)
	}

	message := &db.Message{
		ID:         uuid.New().String(),
		MatchID:    matchID,
		SenderID:   senderID,
		SenderType: senderType,
		Content:    content,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}

	if err := store.InsertMessage(ctx, message); err != nil {
		return "", fmt.Errorf("failed to insert message: %w", err)
	}

	logger.Debug("Message sent",
		zap.String("message_id", message.ID),
		zap.String("match_id", matchID))

	var recipientID string
	if senderType == db.UserTypeVolunteer {
		if ngo, err := store.GetNGO(ctx, match.NGOID); err == nil {
			recipientID = ngo.UserID
		}
	} else {
		recipientID = match.UserID
	}

	if recipientID != "" {
		NotifyUser(ctx, store, logger, mailer, &db.Notification{
			UserID:    recipientID,
			Type:      db.NotifyNewMessage,
			Title:     "New Message",
			Message:   previewOf(content),
			RelatedID: message.ID,
		})
	}

	return message.ID, nil
}

// MessageWithSender joins a message with its resolved sender display data.
// NGO senders resolve through their organization profile.
type MessageWithSender struct {
	db.Message
	SenderName    string `json:"senderName"`
	SenderPicture string `json:"senderPicture,omitempty"`
}

// GetMessagesForMatch lists the messages of one match, oldest first
func GetMessagesForMatch(ctx context.Context, store db.Store, matchID string) ([]MessageWithSender, error) {
	messages, err := store.ListMessagesByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	results := make([]MessageWithSender, 0, len(messages))
	for _, msg := range messages {
		entry := MessageWithSender{Message: msg, SenderName: "Unknown"}
		if sender, err := store.GetUser(ctx, msg.SenderID); err == nil {
			entry.SenderName = sender.Name
			entry.SenderPicture = sender.ProfilePicture
		}
		if msg.SenderType == db.UserTypeNGO {
			if ngo, err := store.GetNGOByUserID(ctx, msg.SenderID); err == nil {
				entry.SenderName = ngo.OrganizationName
				entry.SenderPicture = ngo.Logo
			}
		}
		results = append(results, entry)
	}
	return results, nil
}

// MarkMessagesAsRead marks the messages in a match that userID did not send
func MarkMessagesAsRead(ctx context.Context, store db.MessageStore, matchID, userID string) error {
	if err := store.MarkMatchMessagesRead(ctx, matchID, userID); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// GetUnreadMessageCount counts unread messages addressed to the user
func GetUnreadMessageCount(ctx context.Context, store db.MessageStore, userID string) (int, error) {
	count, err := store.CountUnreadMessages(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func previewOf(content string) string {
	runes := []rune(content)
	if len(runes) <= messagePreviewLen {
		return content
	}
	return string(runes[:messagePreviewLen]) + "..."
}
