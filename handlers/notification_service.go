package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/sendreq/config"
	"p9e.in/sendreq/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService owns the notification log and is the sole mutator
// of the read flag.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service instance
func NewNotificationService() *NotificationService {
	return &NotificationService{
		db: config.DB,
	}
}

// Notify appends an unread notification for the user
func (ns *NotificationService) Notify(userID uuid.UUID, message string, notifType models.NotificationType) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    notifType,
	}

	if err := ns.db.Create(notification).Error; err != nil {
		log.Printf("❌ Failed to create notification for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// NotifyAll appends a notification for every draft. A failed append is
// logged and the rest still go out; appends for different users are
// independent.
func (ns *NotificationService) NotifyAll(drafts []NotificationDraft) {
	for _, draft := range drafts {
		if _, err := ns.Notify(draft.UserID, draft.Message, draft.Type); err != nil {
			log.Printf("⚠️  Skipping notification for user %s: %v", draft.UserID, err)
		}
	}
}

// GetNotificationsForUser retrieves the user's notifications, most recent first
func (ns *NotificationService) GetNotificationsForUser(userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var notifications []models.Notification
	if err := ns.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

// GetUnreadCount gets the count of unread notifications for a user
func (ns *NotificationService) GetUnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	if err := ns.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead marks a single notification as read. Marking an already-read
// notification again is a no-op, not an error. Only the owner may mark.
func (ns *NotificationService) MarkRead(userID uuid.UUID, id uuid.UUID) error {
	var notification models.Notification
	if err := ns.db.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to load notification: %w", err)
	}

	if notification.UserID != userID {
		return fmt.Errorf("%w: notification belongs to another user", ErrForbidden)
	}
	if notification.IsRead {
		return nil
	}

	notification.MarkAsRead()
	if err := ns.db.Save(&notification).Error; err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification owned by the user as read.
// Other users' notifications are untouched.
func (ns *NotificationService) MarkAllRead(userID uuid.UUID) error {
	if err := ns.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
