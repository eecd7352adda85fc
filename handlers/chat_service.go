package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/sendreq/config"
	"p9e.in/sendreq/models"
)

// ChatService handles direct messages between users
type ChatService struct {
	db *gorm.DB
}

// NewChatService creates a new chat service instance
func NewChatService() *ChatService {
	return &ChatService{
		db: config.DB,
	}
}

// SendMessage records a direct message from sender to receiver
func (cs *ChatService) SendMessage(senderID, receiverID uuid.UUID, content string) (*models.ChatMessage, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	var receiver models.User
	if err := cs.db.First(&receiver, "id = ?", receiverID).Error; err != nil {
		return nil, fmt.Errorf("%w: unknown receiver", ErrValidation)
	}

	message := &models.ChatMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := cs.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return message, nil
}

// GetConversation returns the full two-way message history with a peer,
// oldest first
func (cs *ChatService) GetConversation(userID, peerID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := cs.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	return messages, nil
}

// MarkConversationRead marks every unread message from the peer to the
// user as read. Idempotent; the peer's own unread flags are untouched.
func (cs *ChatService) MarkConversationRead(userID, peerID uuid.UUID) error {
	if err := cs.db.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", peerID, userID, false).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark conversation read: %w", err)
	}
	return nil
}

// GetConversations returns a per-peer summary for the chat widget: the
// latest message either way plus the unread count from that peer.
func (cs *ChatService) GetConversations(userID uuid.UUID) ([]models.ConversationSummary, error) {
	var messages []models.ChatMessage
	if err := cs.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	seen := make(map[uuid.UUID]*models.ConversationSummary)
	var order []uuid.UUID
	for _, msg := range messages {
		peerID := msg.SenderID
		if peerID == userID {
			peerID = msg.ReceiverID
		}

		summary, ok := seen[peerID]
		if !ok {
			summary = &models.ConversationSummary{
				PeerID:      peerID,
				LastMessage: msg.Content,
				LastAt:      msg.CreatedAt,
			}
			seen[peerID] = summary
			order = append(order, peerID)
		}
		if msg.SenderID == peerID && !msg.IsRead {
			summary.UnreadCount++
		}
	}

	result := make([]models.ConversationSummary, 0, len(order))
	for _, peerID := range order {
		summary := seen[peerID]
		var peer models.User
		if err := cs.db.First(&peer, "id = ?", peerID).Error; err == nil {
			summary.PeerName = peer.Name
		}
		result = append(result, *summary)
	}
	return result, nil
}
